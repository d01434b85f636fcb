package handlers

import (
	"bytes"
	"context"
	"net/http"
	"painel/src/indicators"
)

// PanelPage returns the handler serving the HTML page of panel.
func (h *Handler) PanelPage(panel indicators.Panel) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), panelTimeout)
		defer cancel()

		var page bytes.Buffer
		if err := h.Controller.RenderPanel(ctx, panel, &page); err != nil {
			h.HandleErrors(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(page.Bytes())
	}
}

func (h *Handler) PanelPDF(panel indicators.Panel) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), panelTimeout)
		defer cancel()

		buf, err := h.Controller.PanelPDF(ctx, panel)
		if err != nil {
			h.HandleErrors(w, err)
			return
		}
		attachment(w, "application/pdf", "painel_"+string(panel)+".pdf", buf.Bytes())
	}
}

func (h *Handler) PanelXLSX(panel indicators.Panel) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), panelTimeout)
		defer cancel()

		buf, err := h.Controller.PanelXLSX(ctx, panel)
		if err != nil {
			h.HandleErrors(w, err)
			return
		}
		attachment(w, xlsxContentType, "painel_"+string(panel)+".xlsx", buf.Bytes())
	}
}

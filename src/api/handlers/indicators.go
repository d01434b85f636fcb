package handlers

import (
	"context"
	"net/http"
	"painel/src/schemas"
	"painel/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListIndicators(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	list, err := h.Controller.ListIndicators(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, list, http.StatusOK)
}

// GetSeries answers with the stored series. Failures keep the series shape
// with empty arrays so the dashboard can still draw an empty chart.
func (h *Handler) GetSeries(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	key := chi.URLParam(r, "key")
	ind, ok := h.Controller.Lookup(key)
	if !ok {
		h.HandleErrors(w, utils.NotFound("unknown indicator: "+key))
		return
	}

	series, err := h.Controller.GetSeries(ctx, key)
	if err != nil {
		utils.LoggerFromContext(ctx).WithError(err).WithField("indicator", key).Error("could not load series")
		h.respond(w, r, schemas.SeriesErrorResponse{
			Error:  err.Error(),
			Dates:  []string{},
			Values: []float64{},
			Label:  ind.Label,
			Unit:   ind.Unit,
		}, http.StatusInternalServerError)
		return
	}
	h.respond(w, r, series, http.StatusOK)
}

func chartQuery(r *http.Request) (*schemas.ChartQuery, error) {
	query, err := schemas.ParseChartQuery(r.URL.Query().Get("mode"), r.URL.Query().Get("years"))
	if err != nil {
		return nil, utils.UnprocessableEntity(err.Error())
	}
	return query, nil
}

func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	query, err := chartQuery(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	chart, err := h.Controller.GetChart(ctx, chi.URLParam(r, "key"), *query)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, chart, http.StatusOK)
}

func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	query, err := chartQuery(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	key := chi.URLParam(r, "key")
	buf, err := h.Controller.ExportXLSX(ctx, key, *query)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	attachment(w, xlsxContentType, key+".xlsx", buf.Bytes())
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	key := chi.URLParam(r, "key")
	rows, err := h.Controller.Refresh(ctx, key)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.RefreshResponse{Indicator: key, Rows: rows}, http.StatusOK)
}

package handlers

import (
	"context"
	"net/http"
	"painel/src/schemas"
	"time"

	"github.com/go-chi/chi/v5"
)

// Refreshing every indicator walks both upstream APIs.
const refreshAllTimeout = 5 * time.Minute

func (h *Handler) GetSchedules(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.Controller.GetSchedules(), http.StatusOK)
}

func (h *Handler) RefreshAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), refreshAllTimeout)
	defer cancel()

	if err := h.Controller.RefreshAll(ctx); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.RefreshAllResponse{Status: "ok"}, http.StatusOK)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	key := chi.URLParam(r, "key")
	rows, err := h.Controller.Refresh(ctx, key)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.RefreshResponse{Indicator: key, Rows: rows}, http.StatusOK)
}

package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"adpacer/internal/core/domain"
	"adpacer/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// Handler contains dependencies and routes. It is an inbound adapter for HTTP.
// It holds the campaign usecase to execute business logic and a logger for
// structured logging. Routes are registered on a chi.Router for convenient
// method handling.
type Handler struct {
	svc    port.CampaignUseCase
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured. The spend and
// campaign endpoints serve operators and integrations; the sweep endpoints
// let an external scheduler or a human trigger any sweep on demand.
func NewHandler(svc port.CampaignUseCase, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/spend", h.handleRecordSpend)

		r.Get("/campaigns", h.handleListCampaigns)
		r.Get("/campaigns/{id}", h.handleGetCampaign)
		r.Get("/campaigns/{id}/spend-log", h.handleSpendLog)

		r.Get("/reports/spend", h.handleSpendReport)

		r.Route("/sweeps", func(r chi.Router) {
			r.Post("/budget", h.handleBudgetSweep)
			r.Post("/dayparting", h.handleDaypartingSweep)
			r.Post("/daily-reset", h.handleDailyReset)
			r.Post("/monthly-reset", h.handleMonthlyReset)
			r.Post("/activation", h.handleActivationSweep)
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// respondJSON writes v with the given status. Encoding failures are logged;
// by then the status line is already on the wire.
func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// respondError maps domain errors onto HTTP statuses. Anything unrecognised
// is logged and reported as a bare 500.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCampaignNotFound):
		http.Error(w, "campaign not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidAmount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("request error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

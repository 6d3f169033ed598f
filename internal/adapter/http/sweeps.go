package httpadapter

import "net/http"

// The sweep endpoints run one pass each and return its tally. They are safe
// to call repeatedly and concurrently with the in-process scheduler; a sweep
// that finds nothing to do reports zero transitions.

func (h *Handler) handleBudgetSweep(w http.ResponseWriter, r *http.Request) {
	tally, err := h.svc.EnforceBudgets(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, tally)
}

func (h *Handler) handleDaypartingSweep(w http.ResponseWriter, r *http.Request) {
	tally, err := h.svc.EnforceDayparting(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, tally)
}

func (h *Handler) handleDailyReset(w http.ResponseWriter, r *http.Request) {
	tally, err := h.svc.ResetDailySpends(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, tally)
}

func (h *Handler) handleMonthlyReset(w http.ResponseWriter, r *http.Request) {
	tally, err := h.svc.ResetMonthlySpends(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, tally)
}

func (h *Handler) handleActivationSweep(w http.ResponseWriter, r *http.Request) {
	tally, err := h.svc.ActivateEligible(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, tally)
}

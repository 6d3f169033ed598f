package httpadapter

import (
	"net/http"
	"strconv"
)

// handleSpendReport returns campaign counts and spend totals, stamped with
// the generation time. The optional `brand_id` query parameter narrows the
// report to one brand's campaigns.
func (h *Handler) handleSpendReport(w http.ResponseWriter, r *http.Request) {
	var brandID *int64
	if b := r.URL.Query().Get("brand_id"); b != "" {
		id, err := strconv.ParseInt(b, 10, 64)
		if err != nil {
			http.Error(w, "invalid brand id", http.StatusBadRequest)
			return
		}
		brandID = &id
	}
	rep, err := h.svc.SpendReport(r.Context(), brandID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, rep)
}

package handler

import "net/http"

func (h *Handlers) StatsOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Stats.Overview(r.Context())
	if err != nil {
		h.log.InternalError("stats.overview: failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (h *Handlers) StatsBreakdown(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.Stats.Breakdown(r.Context())
	if err != nil {
		h.log.InternalError("stats.breakdown: failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

func (h *Handlers) StatsContributors(w http.ResponseWriter, r *http.Request) {
	contributors, err := h.Stats.Contributors(r.Context())
	if err != nil {
		h.log.InternalError("stats.contributors: failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, contributors)
}

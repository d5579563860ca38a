package httpapi

import (
	"net/http"

	"jobboard-engine/internal/analytics"
)

type AnalyticsHandler struct {
	Analytics *analytics.Service
}

func (h AnalyticsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Analytics.ForEmployer(r.Context(), caller(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, rep)
}

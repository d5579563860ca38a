package httpapi

import (
	"net/http"

	"jobboard-engine/internal/savedjobs"
)

type SavedJobsHandler struct {
	SavedJobs *savedjobs.Service
}

func (h SavedJobsHandler) Save(w http.ResponseWriter, r *http.Request) {
	sj, err := h.SavedJobs.Save(r.Context(), caller(r), r.PathValue("jobId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"message": "job saved successfully", "savedJob": sj})
}

func (h SavedJobsHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.SavedJobs.List(r.Context(), caller(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"count": len(list), "savedJobs": list})
}

func (h SavedJobsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.SavedJobs.Remove(r.Context(), caller(r), r.PathValue("jobId")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"message": "saved job removed"})
}

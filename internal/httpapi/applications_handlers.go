package httpapi

import (
	"net/http"

	"jobboard-engine/internal/applications"
	"jobboard-engine/internal/domain"
)

type ApplicationsHandler struct {
	Applications *applications.Service
}

func (h ApplicationsHandler) Apply(w http.ResponseWriter, r *http.Request) {
	a, err := h.Applications.Apply(r.Context(), caller(r), r.PathValue("jobId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"message": "job applied successfully", "application": a})
}

func (h ApplicationsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	list, err := h.Applications.ListMine(r.Context(), caller(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"count": len(list), "applications": list})
}

func (h ApplicationsHandler) ForJob(w http.ResponseWriter, r *http.Request) {
	list, err := h.Applications.ListForJob(r.Context(), caller(r), r.PathValue("jobId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"count": len(list), "applications": list})
}

type statusRequest struct {
	Status domain.ApplicationStatus `json:"status"`
}

func (h ApplicationsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var in statusRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeServiceError(w, r, err)
		return
	}
	st, err := h.Applications.UpdateStatus(r.Context(), caller(r), r.PathValue("id"), in.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"status": st})
}

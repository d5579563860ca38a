package httpapi

import (
	"net/http"

	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/filter"
	"jobboard-engine/internal/jobs"
)

type JobsHandler struct {
	Jobs *jobs.Service
}

func (h JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.JobInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeServiceError(w, r, err)
		return
	}
	id, err := h.Jobs.Create(r.Context(), caller(r), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"message": "job created successfully", "id": id})
}

// List is the public search: GET /api/jobs?keyword=&location=&jobType=&salaryMin=&salaryMax=&page=&pageSize=
func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	crit, err := criteriaFromQuery(q)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	p, err := pageFromQuery(q)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	page, err := h.Jobs.Search(r.Context(), crit, p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

func (h JobsHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	crit, err := criteriaFromQuery(q)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	status, err := filter.ParseStatus(q.Get("status"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	p, err := pageFromQuery(q)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	page, err := h.Jobs.ListOwn(r.Context(), caller(r), crit, status, p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

func (h JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.Jobs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

func (h JobsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.JobPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeServiceError(w, r, err)
		return
	}
	job, err := h.Jobs.Update(r.Context(), caller(r), r.PathValue("id"), patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

func (h JobsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Jobs.Delete(r.Context(), caller(r), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "id": id})
}

func (h JobsHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	closed, err := h.Jobs.ToggleStatus(r.Context(), caller(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"isClosed": closed})
}

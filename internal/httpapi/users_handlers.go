package httpapi

import (
	"net/http"

	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/users"
)

type UsersHandler struct {
	Users *users.Service
}

func (h UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p domain.ProfilePatch
	if err := decodeJSON(w, r, &p); err != nil {
		writeServiceError(w, r, err)
		return
	}
	u, err := h.Users.UpdateProfile(r.Context(), caller(r), p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"message": "profile updated successfully", "user": u})
}

func (h UsersHandler) DeleteResume(w http.ResponseWriter, r *http.Request) {
	if err := h.Users.DeleteResume(r.Context(), caller(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"message": "resume deleted successfully"})
}

func (h UsersHandler) Public(w http.ResponseWriter, r *http.Request) {
	p, err := h.Users.PublicProfile(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"user": p})
}

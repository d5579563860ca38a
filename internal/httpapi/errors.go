package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"jobboard-engine/internal/auth"
	"jobboard-engine/internal/domain"
)

type APIError struct {
	Error struct {
		Code      string   `json:"code"`
		Message   string   `json:"message"`
		Details   []string `json:"details,omitempty"`
		RequestID string   `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeErrorDetails(w, r, status, code, message, nil)
}

func writeErrorDetails(w http.ResponseWriter, r *http.Request, status int, code, message string, details []string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.Details = details
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

var kindStatus = map[domain.Kind]int{
	domain.KindValidation: http.StatusBadRequest,
	domain.KindNotFound:   http.StatusNotFound,
	domain.KindForbidden:  http.StatusForbidden,
	domain.KindConflict:   http.StatusConflict,
}

// writeServiceError maps domain failures to their status codes. Anything else
// is logged with the request id and reported as a bare internal error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, auth.ErrUnauthorized) {
		WriteError(w, r, http.StatusUnauthorized, "unauthorized", "invalid credentials")
		return
	}
	var de *domain.Error
	if errors.As(err, &de) {
		if status, ok := kindStatus[de.Kind]; ok {
			writeErrorDetails(w, r, status, de.Kind.String(), de.Error(), de.Details)
			return
		}
	}
	log.Printf("level=error msg=\"request failed\" request_id=%s method=%s path=%s err=%q",
		RequestIDFrom(r.Context()), r.Method, r.URL.Path, err.Error())
	WriteError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
}

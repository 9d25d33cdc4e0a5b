package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/prudhvinik1/boxfleet/internal/apperr"
	"github.com/prudhvinik1/boxfleet/internal/services"
)

const maxBodyBytes = 1 << 20

type envelope struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, envelope{Code: code, Message: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("body", "malformed JSON: %v", err)
	}
	return nil
}

// writeError maps error kinds onto status codes. Store errors are logged with
// their cause and answered with a generic message.
func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		writeMessage(w, http.StatusUnprocessableEntity, "UnprocessableEntity", apperr.PublicMessage(err))
	case errors.Is(err, apperr.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "NotFound", apperr.PublicMessage(err))
	case errors.Is(err, services.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidToken):
		writeMessage(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, services.ErrEmailExists):
		writeMessage(w, http.StatusConflict, "Conflict", err.Error())
	default:
		h.log.WithError(err).WithField("reqid", middleware.GetReqID(r.Context())).
			Errorf("%s %s failed", r.Method, r.URL.Path)
		writeMessage(w, http.StatusInternalServerError, "InternalServerError", apperr.PublicMessage(err))
	}
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/logger"
	"gearmarket-backend/internal/otp"
	"gearmarket-backend/internal/security"
)

type successEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successEnvelope{Success: true, Data: data})
}

// respondError maps the domain error taxonomy onto HTTP status codes.
// Unrecognized errors become a 500 with a generic message so internals
// never leak into responses.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, otp.ErrCodeMismatch):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken):
		status, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		status, message = http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrInsufficientInventory),
		errors.Is(err, domain.ErrDuplicateEmail):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, otp.ErrTooManyRequests):
		status, message = http.StatusTooManyRequests, err.Error()
	default:
		logger.Error("Unhandled request error", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Success: false, Message: message})
}

func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.ErrValidation
	}
	return nil
}

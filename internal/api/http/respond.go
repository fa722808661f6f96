package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"gamehub-backend/internal/domain"
	"gamehub-backend/internal/logger"
	"gamehub-backend/internal/security"
	"gamehub-backend/internal/service"
)

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps application errors to HTTP status codes. Persistence
// failures are logged server-side and reported without the driver detail.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrWrongTokenType):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: err.Error()})
		return
	case errors.Is(err, service.ErrAccountInactive):
		writeJSON(w, http.StatusForbidden, errorBody{Error: err.Error()})
		return
	}

	kind := domain.KindOf(err)
	switch kind {
	case domain.ErrKindValidation:
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error(), Kind: string(kind)})
	case domain.ErrKindNotFound:
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error(), Kind: string(kind)})
	case domain.ErrKindPreconditionFailed, domain.ErrKindInvalidState:
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error(), Kind: string(kind)})
	case domain.ErrKindPersistence:
		logger.Error("Store failure", "error", err)
		writeJSON(w, http.StatusBadGateway, errorBody{Error: "storage unavailable", Kind: string(kind)})
	default:
		logger.Error("Unclassified error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.ValidationError("invalid JSON body")
	}
	return nil
}

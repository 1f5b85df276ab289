package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/asterah/chaos-full-nightmare/internal/engine"
	"github.com/asterah/chaos-full-nightmare/internal/logging"
	"github.com/asterah/chaos-full-nightmare/internal/service"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// statusFor maps a service or engine error to an HTTP status. Unknown
// errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrSlotNotFound),
		errors.Is(err, service.ErrCombatantNotFound),
		errors.Is(err, engine.ErrCardNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotSessionOwner):
		return http.StatusForbidden
	case errors.Is(err, engine.ErrStateLocked):
		return http.StatusConflict
	case errors.Is(err, engine.ErrCardNotNeutral),
		errors.Is(err, engine.ErrStateNotAllowed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidTier),
		errors.Is(err, domain.ErrInvalidSlotCount),
		errors.Is(err, domain.ErrInvalidCardType),
		errors.Is(err, domain.ErrInvalidCardState),
		errors.Is(err, engine.ErrUnknownCommand),
		errors.Is(err, engine.ErrMissingCard):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeError reports err to the client. Only unexpected errors are logged.
func writeError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", logging.Op(op), zap.Error(err))
		http.Error(w, "Internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"voltrent-backend/internal/lifecycle"
	"voltrent-backend/internal/logger"
	"voltrent-backend/internal/pricing"
	"voltrent-backend/internal/service"
)

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
	Code   string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// writeError maps domain failures onto HTTP statuses: invalid rental windows
// are 422 with the machine-readable reason, rejected or raced transitions are
// 409 with the failure code, missing rows are 404.
func writeError(w http.ResponseWriter, err error) {
	var verr *pricing.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  verr.Message,
			Reason: string(verr.Reason),
		})
		return
	}

	var terr *lifecycle.TransitionError
	if errors.As(err, &terr) {
		writeJSON(w, http.StatusConflict, errorResponse{
			Error: terr.Message,
			Code:  string(terr.Code),
		})
		return
	}

	switch {
	case errors.Is(err, sql.ErrNoRows):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, service.ErrVehicleUnavailable):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

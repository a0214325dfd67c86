package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"blogmarket/internal/core/domain"
)

// envelope is the JSON response shape shared by every endpoint.
type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Error: &errorBody{Code: code, Message: message}})
}

// writeBusinessError maps domain errors onto HTTP statuses and business
// codes. Invariant violations indicate an isolation bug, so they are
// logged as faults and surfaced as opaque internal errors.
func (h *Handler) writeBusinessError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", ve.Error())
	case errors.Is(err, domain.ErrCampaignNotFound):
		writeError(w, http.StatusNotFound, "CAMPAIGN_NOT_FOUND", "campaign not found")
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "order not found")
	case errors.Is(err, domain.ErrInsufficientBudget):
		writeError(w, http.StatusBadRequest, "INSUFFICIENT_BUDGET", "insufficient campaign budget")
	case errors.Is(err, domain.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "INVALID_TRANSITION", "operation not allowed for current order status")
	case errors.Is(err, domain.ErrInvariantViolation):
		h.logger.Error("budget invariant violation", slog.String("path", r.URL.Path), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	default:
		h.logger.Error("request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}

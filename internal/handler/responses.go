package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/osse101/TriCard_Go/internal/logger"
	"github.com/osse101/TriCard_Go/internal/round"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped error response
func respondServiceError(w http.ResponseWriter, r *http.Request, action string, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(action, "error", err)
	} else {
		log.Warn(action, "error", err)
	}
	respondError(w, status, message)
}

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and messages
// users can act on. Messages are shared with the realtime channel.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrRoomSaveFailed):
		return http.StatusInternalServerError, ErrMsgRoomSaveFailedError
	case errors.Is(err, domain.ErrRoomNotFound), errors.Is(err, domain.ErrMemberNotFound):
		return http.StatusNotFound, rejection(err)
	case errors.Is(err, domain.ErrNotDealer), errors.Is(err, domain.ErrNotRoomMember):
		return http.StatusForbidden, rejection(err)
	case errors.Is(err, domain.ErrRoomClosed),
		errors.Is(err, domain.ErrBettingClosed),
		errors.Is(err, domain.ErrAlreadyRevealed),
		errors.Is(err, domain.ErrResetDuringBetting),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrRoomVersionConflict):
		return http.StatusConflict, rejection(err)
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInvalidWager),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, rejection(err)
	case errors.Is(err, domain.ErrRoomCodesExhausted):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

func rejection(err error) string {
	msg, _ := round.RejectionMessage(err)
	return msg
}

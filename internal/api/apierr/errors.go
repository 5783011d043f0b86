package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/solaropoly/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidName         = "INVALID_NAME"
	CodeInvalidRoll         = "INVALID_ROLL"
	CodePositionOutOfRange  = "POSITION_OUT_OF_RANGE"
	CodeInvalidPolicy       = "INVALID_POLICY"
	CodeNotYourTurn         = "NOT_YOUR_TURN"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodePlayerInactive      = "PLAYER_INACTIVE"
	CodeSessionNotFound     = "SESSION_NOT_FOUND"
	CodeSessionOver         = "SESSION_OVER"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodeTooManyPlayers      = "TOO_MANY_PLAYERS"
	CodeLayoutNotFound      = "LAYOUT_NOT_FOUND"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status code err maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrInvalidName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidName, err.Error()}}
	case errors.Is(err, model.ErrInvalidRoll):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRoll, err.Error()}}
	case errors.Is(err, model.ErrPositionOutOfRange):
		return &httpError{http.StatusBadRequest, APIError{CodePositionOutOfRange, err.Error()}}
	case errors.Is(err, model.ErrInvalidDecider):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPolicy, err.Error()}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrLayoutNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeLayoutNotFound, err.Error()}}
	case errors.Is(err, model.ErrNotPlayerTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrPlayerInactive):
		return &httpError{http.StatusConflict, APIError{CodePlayerInactive, "Player has already left the game"}}
	case errors.Is(err, model.ErrSessionOver):
		return &httpError{http.StatusConflict, APIError{CodeSessionOver, "Session is already finished"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusBadRequest, APIError{CodeInsufficientPlayers, err.Error()}}
	case errors.Is(err, model.ErrTooManyPlayers):
		return &httpError{http.StatusBadRequest, APIError{CodeTooManyPlayers, err.Error()}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

// Package middleware assembles the shared HTTP middleware for the JSON API.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/solaropoly/internal/api/apierr"
	"github.com/mcoot/solaropoly/internal/middleware"
)

// Logging creates request logging middleware for the API
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}

// RequestID tags each API request with an ID
func RequestID() func(http.Handler) http.Handler {
	return middleware.RequestID
}

// Recovery answers handler panics with the JSON internal error envelope
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}

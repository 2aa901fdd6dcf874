package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "geoevents/internal/delivery/http/helpers"
	"geoevents/internal/domain"
)

// clientMessage strips the sentinel prefix so that "invalid input: title is
// required" reaches the client as "title is required".
func clientMessage(err error, sentinel error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok && rest != "" {
		return rest
	}
	return msg
}

// writeServiceError maps a service error onto the HTTP error taxonomy.
// Unexpected errors are logged and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, clientMessage(err, domain.ErrInvalidInput))
	case errors.Is(err, domain.ErrUnauthorized):
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, clientMessage(err, domain.ErrUnauthorized))
	case errors.Is(err, domain.ErrForbidden):
		h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "Event not found")
	case errors.Is(err, domain.ErrUpstream):
		logger.WarnContext(r.Context(), "upstream failure", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusBadGateway, h.ErrCodeUpstream, "media service unavailable")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "internal server error")
	}
}

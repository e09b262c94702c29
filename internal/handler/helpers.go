package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"trackthething/internal/domain"
	"trackthething/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var formatErr *domain.UnsupportedFormatError
	var httpErr domain.HTTPError

	switch {
	case errors.As(err, &formatErr):
		httputil.RespondErrorWithExtras(w, http.StatusNotFound, formatErr.Error(), map[string]interface{}{
			"format": formatErr.Format,
		})
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrTooLarge):
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &httpErr):
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
	default:
		logger.Error("request failed",
			"error", err,
			"request_id", httputil.GetRequestID(r),
			"path", r.URL.Path,
		)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

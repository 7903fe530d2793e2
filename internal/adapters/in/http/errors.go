package http

import (
	"errors"
	"log/slog"
	"net/http"

	"printflow/internal/core/domain/model/tracking"
	"printflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Stage    string `json:"stage,omitempty"`
	Required string `json:"required,omitempty"`
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var transitionErr *tracking.StageTransitionError
	switch {
	case errors.As(err, &transitionErr):
		return http.StatusPreconditionFailed
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrObjectAlreadyExists), errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c echo.Context, err error) error {
	status := statusFor(err)
	body := Error{Code: status, Message: err.Error()}

	var transitionErr *tracking.StageTransitionError
	if errors.As(err, &transitionErr) {
		body.Stage = transitionErr.Stage.String()
		if transitionErr.Required != tracking.Unknown {
			body.Required = transitionErr.Required.String()
		}
	}

	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			slog.String("path", c.Path()), slog.String("error", err.Error()))
		body.Message = http.StatusText(status)
	}

	return c.JSON(status, body)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: msg})
}

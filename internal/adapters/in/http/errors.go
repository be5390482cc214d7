package http

import (
	"errors"
	"log/slog"
	"net/http"

	"dispatch/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Error codes of the response envelope.
const (
	CodeValidation         = "validation_error"
	CodeNotFound           = "not_found"
	CodeConflict           = "conflict"
	CodeStorageUnavailable = "storage_unavailable"
	CodeRateLimited        = "rate_limited"
	CodeMethodNotAllowed   = "method_not_allowed"
	CodeTimeout            = "timeout"
	CodeServerError        = "server_error"
)

// Error is the body of every non-2xx response.
type Error struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ErrorHandler maps domain and echo errors onto the response envelope.
// Storage and unexpected failures are logged and their detail is not sent
// to the client.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := classify(err)
		switch status {
		case http.StatusServiceUnavailable:
			var storageErr *errs.StorageError
			if errors.As(err, &storageErr) && storageErr.Retryable {
				c.Response().Header().Set("Retry-After", "1")
			}
			logger.WarnContext(c.Request().Context(), "storage unavailable",
				slog.String("path", c.Path()), slog.Any("error", err))
		case http.StatusInternalServerError:
			logger.ErrorContext(c.Request().Context(), "request failed",
				slog.String("path", c.Path()), slog.Any("error", err))
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Error("failed to write error response", slog.Any("error", writeErr))
		}
	}
}

func classify(err error) (int, Error) {
	var (
		httpErr        *echo.HTTPError
		validationErrs validator.ValidationErrors
	)

	switch {
	case errors.As(err, &validationErrs):
		return http.StatusBadRequest, Error{Error: CodeValidation, Message: validationMessage(validationErrs)}
	case errs.IsValidation(err):
		return http.StatusBadRequest, Error{Error: CodeValidation, Message: err.Error()}
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, Error{Error: CodeNotFound}
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, Error{Error: CodeConflict, Message: err.Error()}
	case errors.Is(err, errs.ErrStorage):
		return http.StatusServiceUnavailable, Error{
			Error:   CodeStorageUnavailable,
			Message: "storage is temporarily unavailable",
		}
	case errors.As(err, &httpErr):
		return httpErr.Code, Error{Error: codeForStatus(httpErr.Code), Message: httpMessage(httpErr)}
	default:
		return http.StatusInternalServerError, Error{Error: CodeServerError}
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		return CodeValidation
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusMethodNotAllowed:
		return CodeMethodNotAllowed
	case http.StatusConflict:
		return CodeConflict
	case http.StatusTooManyRequests:
		return CodeRateLimited
	case http.StatusServiceUnavailable:
		return CodeTimeout
	default:
		return CodeServerError
	}
}

func httpMessage(e *echo.HTTPError) string {
	if e.Code >= http.StatusInternalServerError || e.Code == http.StatusNotFound {
		return ""
	}
	if msg, ok := e.Message.(string); ok {
		return msg
	}
	return ""
}

func validationMessage(verrs validator.ValidationErrors) string {
	if len(verrs) == 0 {
		return ""
	}
	first := verrs[0]
	if first.Param() != "" {
		return first.Field() + " failed " + first.Tag() + "=" + first.Param()
	}
	return first.Field() + " failed " + first.Tag()
}

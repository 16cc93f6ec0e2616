package handlers

import (
	"log/slog"
	"net/http"

	"github.com/anonto42/dura-blog/backend/internal/models"
	"github.com/anonto42/dura-blog/backend/internal/services"
	"github.com/labstack/echo/v4"
)

const (
	msgInvalidPayload = "Invalid request payload"
	msgFieldRequired  = "Field is required"
	msgAllFields      = "All fields are required"
	msgInvalidPost    = "Invalid Blogpost"
	msgPostNotFound   = "Blogpost not found"
	msgDuplicateTitle = "A post with this title already exists"
	msgFetchFailed    = "Failed to fetch posts"
	msgCreateFailed   = "Internal Server Error"
	msgUpdateFailed   = "Update Internal Server Error"
	msgDeleteFailed   = "Delete Internal Server Error"
	msgPostCreated    = "Post created successfully"
	msgPostDeleted    = "Blogpost deleted successfully"
)

// writeError writes the failure envelope
func writeError(c echo.Context, status int, message string) error {
	return c.JSON(status, models.APIResponse{Success: false, Message: message})
}

// operationMessages holds the operation-specific wording for validation and internal failures
type operationMessages struct {
	validation string
	internal   string
}

// handleServiceError maps service errors to HTTP responses
func handleServiceError(c echo.Context, logger *slog.Logger, err error, msgs operationMessages) error {
	switch {
	case services.IsValidationError(err):
		return writeError(c, http.StatusBadRequest, msgs.validation)
	case services.IsConflict(err):
		return writeError(c, http.StatusConflict, msgDuplicateTitle)
	case services.IsNotFound(err):
		return writeError(c, http.StatusNotFound, msgPostNotFound)
	default:
		// Don't leak internal error details to clients
		logger.Error("unexpected error in post handler",
			"error", err,
			"method", c.Request().Method,
			"path", c.Path(),
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		)
		return writeError(c, http.StatusInternalServerError, msgs.internal)
	}
}

// HTTPErrorHandler renders errors raised by Echo itself (unknown routes,
// malformed bodies, recovered panics) in the same envelope as the handlers.
func HTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := http.StatusText(status)
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			message = http.StatusText(status)
			if msg, ok := he.Message.(string); ok && status < http.StatusInternalServerError {
				message = msg
			}
		}
		if status >= http.StatusInternalServerError {
			logger.Error("request failed", "error", err, "path", c.Request().URL.Path)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = writeError(c, status, message)
		}
		if writeErr != nil {
			logger.Error("failed to write error response", "error", writeErr)
		}
	}
}

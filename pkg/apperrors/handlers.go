package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON envelope for every error reply.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler writes AppErrors as JSON responses.
type GinErrorHandler struct {
	Debug bool
}

// HandleGinError converts any error into an HTTP response. Unknown errors
// become a generic 500; their detail stays server-side.
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		slog.Error("server error", "error", appErr.Error(), "path", c.Request.URL.Path)
		if !h.Debug {
			appErr = New(CodeInternalError, "system", "Internal server error", appErr.HTTPCode)
		}
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// AsAppError extracts an *AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

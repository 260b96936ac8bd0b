package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIResponse is the uniform response envelope: every error becomes
// {"success": false, "message": ...}; successes set Success true.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorHandler is a middleware that catches panics and returns structured errors.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))
				c.JSON(http.StatusInternalServerError, APIResponse{
					Success: false,
					Message: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// RespondError maps a service-layer error onto an HTTP status and writes the
// standard failure envelope.
func RespondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var (
		validationErr *ValidationError
		conflictErr   *ConflictError
		notFoundErr   *NotFoundError
		authErr       *AuthError
		otpErr        *OtpError
		depErr        *DependencyError
	)
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.As(err, &conflictErr):
		status = http.StatusConflict
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
	case errors.As(err, &authErr):
		status = http.StatusUnauthorized
	case errors.As(err, &otpErr):
		status = http.StatusBadRequest
	case errors.As(err, &depErr):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		GetLogger().Error("request failed", zap.Error(err))
	} else {
		GetLogger().Warn("request rejected", zap.Error(err))
	}
	c.JSON(status, APIResponse{Success: false, Message: err.Error()})
}

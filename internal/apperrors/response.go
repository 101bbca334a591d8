package apperrors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

var statusByCode = map[ErrorCode]int{
	ErrInternal:     http.StatusInternalServerError,
	ErrStore:        http.StatusInternalServerError,
	ErrUnauthorized: http.StatusUnauthorized,
	ErrForbidden:    http.StatusForbidden,
	ErrValidation:   http.StatusBadRequest,
	ErrNotFound:     http.StatusNotFound,
	ErrConflict:     http.StatusConflict,
	ErrRateLimited:  http.StatusTooManyRequests,
}

// StatusOf maps an error to its HTTP status.
func StatusOf(err error) int {
	if status, ok := statusByCode[CodeOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// HandleError writes err as a JSON error response. Server-side failures are
// reported with a generic message; the wrapped cause is never sent to clients.
func HandleError(c *gin.Context, err error) {
	status := StatusOf(err)

	var appErr *AppError
	if !errors.As(err, &appErr) || status >= http.StatusInternalServerError {
		c.AbortWithStatusJSON(status, ErrorResponse{
			Code:    CodeOf(err),
			Message: "Internal server error",
		})
		return
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Code: appErr.Code, Message: appErr.Message})
}

package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeOfWrappedError(t *testing.T) {
	err := fmt.Errorf("approve: %w", NotFound("Post not found"))

	assert.Equal(t, ErrNotFound, CodeOf(err))
	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrValidation))
	assert.Equal(t, ErrInternal, CodeOf(errors.New("boom")))
	assert.False(t, Is(nil, ErrInternal))
}

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"not found", NotFound("Post not found"), http.StatusNotFound, "Post not found"},
		{"validation", Validation("Comment text is required"), http.StatusBadRequest, "Comment text is required"},
		{"forbidden", Forbidden("Admin access required"), http.StatusForbidden, "Admin access required"},
		{"rate limited", New(ErrRateLimited, "Too many requests"), http.StatusTooManyRequests, "Too many requests"},
		{"store error hides cause", Store("update post", errors.New("connection reset")), http.StatusInternalServerError, "Internal server error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMessage, resp.Message)
			assert.NotContains(t, w.Body.String(), "connection reset")
		})
	}
}

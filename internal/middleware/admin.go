package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/apperrors"
)

// RequireAdmin lets only administrators through. It must run after RequireAuth.
func RequireAdmin(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := Identity(c)
		if !identity.Authenticated() {
			apperrors.HandleError(c, apperrors.Unauthorized("User not authenticated"))
			return
		}
		if !identity.IsAdmin() {
			log.Warn("non-admin access to moderation route",
				zap.String("user_id", identity.UserID),
				zap.String("path", c.Request.URL.Path))
			apperrors.HandleError(c, apperrors.Forbidden("Admin access required"))
			return
		}
		c.Next()
	}
}

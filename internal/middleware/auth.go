package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/apperrors"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/auth"
)

const (
	identityKey = "identity"
	userIDKey   = "user_id"
)

// TokenParser verifies bearer tokens.
type TokenParser interface {
	Parse(token string) (auth.Identity, error)
}

// IdentityLoader returns the stored identity of a user, so the name, image
// and role used for a request are current rather than those in the token.
type IdentityLoader interface {
	LoadIdentity(ctx context.Context, userID string) (auth.Identity, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's current identity on the context.
func RequireAuth(tokens TokenParser, identities IdentityLoader, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			apperrors.HandleError(c, apperrors.Unauthorized("Authorization header required"))
			return
		}

		identity, err := tokens.Parse(token)
		if err != nil {
			log.Debug("rejected token",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			apperrors.HandleError(c, apperrors.Wrap(apperrors.ErrUnauthorized, "Invalid or expired token", err))
			return
		}

		current, err := identities.LoadIdentity(c.Request.Context(), identity.UserID)
		if err != nil {
			if apperrors.StatusOf(err) >= 500 {
				log.Error("load identity", zap.String("user_id", identity.UserID), zap.Error(err))
			}
			apperrors.HandleError(c, err)
			return
		}

		SetIdentity(c, current)
		c.Next()
	}
}

// OptionalAuth attaches an identity when a valid token is present and lets
// anonymous requests through.
func OptionalAuth(tokens TokenParser, identities IdentityLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if identity, err := tokens.Parse(token); err == nil {
				if current, err := identities.LoadIdentity(c.Request.Context(), identity.UserID); err == nil {
					SetIdentity(c, current)
				}
			}
		}
		c.Next()
	}
}

// Identity returns the identity set by RequireAuth or OptionalAuth. The zero
// Identity means the request is anonymous.
func Identity(c *gin.Context) auth.Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(auth.Identity); ok {
			return identity
		}
	}
	return auth.Identity{}
}

// SetIdentity attaches a verified identity to the request context.
func SetIdentity(c *gin.Context, identity auth.Identity) {
	c.Set(identityKey, identity)
	c.Set(userIDKey, identity.UserID)
}

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

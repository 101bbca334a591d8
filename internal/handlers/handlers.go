package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/apperrors"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/auth"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/models"
)

// Moderation submits posts and moves them through review.
type Moderation interface {
	Submit(ctx context.Context, actor auth.Identity, req models.CreatePostRequest) (*models.Post, error)
	Approve(ctx context.Context, actor auth.Identity, id string) (*models.Post, error)
	Reject(ctx context.Context, actor auth.Identity, id string) (*models.Post, error)
	ListByStatus(ctx context.Context, status string) ([]models.Post, error)
}

type Interactions interface {
	ToggleLike(ctx context.Context, actor auth.Identity, id string) (*models.Post, error)
	AddComment(ctx context.Context, actor auth.Identity, id, text, profileImage string) (*models.Post, error)
}

type Queries interface {
	ListApproved(ctx context.Context) ([]models.Post, error)
	ListAll(ctx context.Context, filter string) ([]models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
}

type Editor interface {
	Update(ctx context.Context, actor auth.Identity, id string, req models.UpdatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, actor auth.Identity, id string) error
}

type Accounts interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Profile(ctx context.Context, actor auth.Identity) (*models.User, error)
	UpdateProfile(ctx context.Context, actor auth.Identity, req models.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, actor auth.Identity, req models.ChangePasswordRequest) error
}

// Services groups the dependencies of every handler.
type Services struct {
	Moderation   Moderation
	Interactions Interactions
	Queries      Queries
	Editor       Editor
	Accounts     Accounts
}

// Handler combines all handler types
type Handler struct {
	Auth       *AuthHandler
	Post       *PostHandler
	Comment    *CommentHandler
	Moderation *ModerationHandler
	User       *UserHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(svc Services, log *zap.Logger) *Handler {
	r := responder{log: log}
	return &Handler{
		Auth:       &AuthHandler{accounts: svc.Accounts, responder: r},
		Post:       &PostHandler{queries: svc.Queries, editor: svc.Editor, moderation: svc.Moderation, interactions: svc.Interactions, responder: r},
		Comment:    &CommentHandler{interactions: svc.Interactions, responder: r},
		Moderation: &ModerationHandler{moderation: svc.Moderation, responder: r},
		User:       &UserHandler{accounts: svc.Accounts, responder: r},
	}
}

type responder struct {
	log *zap.Logger
}

// fail writes err to the client. Server-side failures are logged with their
// cause, which never reaches the response body.
func (r responder) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	if apperrors.StatusOf(err) >= http.StatusInternalServerError {
		r.log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
	}
	apperrors.HandleError(c, err)
}

// bindJSON decodes the body into dst and reports binding errors as
// validation failures.
func (r responder) bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		r.fail(c, apperrors.Wrap(apperrors.ErrValidation, bindingMessage(err), err))
		return false
	}
	return true
}

// Package service holds the moderation, interaction and query rules for
// disaster posts. Every mutating call receives the caller's verified identity
// explicitly; nothing is read from ambient request state.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/apperrors"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/auth"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/models"
)

// PostStore is the persistence contract for posts. ToggleLike and
// AppendComment must be atomic with respect to other writers of the same post.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, status models.PostStatus) ([]models.Post, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Post, error)
	SetStatus(ctx context.Context, id string, status models.PostStatus) (*models.Post, error)
	ToggleLike(ctx context.Context, id, userID string) (*models.Post, error)
	AppendComment(ctx context.Context, id string, comment *models.Comment) (*models.Post, error)
	Delete(ctx context.Context, id string) error
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error)
}

// Notifier is told about posts that just became publicly visible.
type Notifier interface {
	PostApproved(ctx context.Context, post *models.Post) error
}

type clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

// refreshUpcoming recomputes IsUpcoming for posts about to be returned.
func refreshUpcoming(now time.Time, posts ...*models.Post) {
	for _, p := range posts {
		p.RefreshUpcoming(now)
	}
}

func refreshAll(now time.Time, posts []models.Post) {
	for i := range posts {
		posts[i].RefreshUpcoming(now)
	}
}

// checkPostID rejects ids that cannot name a post.
func checkPostID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NotFound("Post not found")
	}
	return nil
}

func requireUser(actor auth.Identity) error {
	if !actor.Authenticated() {
		return apperrors.Unauthorized("User not authenticated")
	}
	return nil
}

func requireAdmin(actor auth.Identity) error {
	if err := requireUser(actor); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return apperrors.Forbidden("Admin access required")
	}
	return nil
}

func requireOwnerOrAdmin(actor auth.Identity, post *models.Post) error {
	if err := requireUser(actor); err != nil {
		return err
	}
	if post.AuthorID != actor.UserID && !actor.IsAdmin() {
		return apperrors.Forbidden("You can only change your own posts")
	}
	return nil
}

// requiredText trims value and fails when nothing is left.
func requiredText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperrors.Validation(field + " is required")
	}
	return value, nil
}

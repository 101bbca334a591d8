package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/apperrors"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/auth"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/models"
)

// ModerationService owns the pending -> approved/rejected workflow.
type ModerationService struct {
	posts    PostStore
	notifier Notifier
	log      *zap.Logger
	now      clock
}

func NewModerationService(posts PostStore, notifier Notifier, log *zap.Logger) *ModerationService {
	return &ModerationService{posts: posts, notifier: notifier, log: log, now: utcNow}
}

// Submit creates a post in the pending state on behalf of actor.
func (s *ModerationService) Submit(ctx context.Context, actor auth.Identity, req models.CreatePostRequest) (*models.Post, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}

	var err error
	if req.Title, err = requiredText("title", req.Title); err != nil {
		return nil, err
	}
	if req.Description, err = requiredText("description", req.Description); err != nil {
		return nil, err
	}
	if req.Category, err = requiredText("category", req.Category); err != nil {
		return nil, err
	}
	if req.Location, err = requiredText("location", req.Location); err != nil {
		return nil, err
	}

	now := s.now()
	post := &models.Post{
		AuthorID:     actor.UserID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Location:     req.Location,
		ImageURL:     strings.TrimSpace(req.ImageURL),
		DisasterDate: req.DisasterDate,
		IsUpcoming:   req.IsUpcoming,
		Status:       models.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	refreshUpcoming(now, post)

	s.log.Info("post submitted",
		zap.String("post_id", post.ID),
		zap.String("author_id", actor.UserID),
		zap.String("category", post.Category))
	return post, nil
}

// Approve makes a post publicly visible. Approving twice is not an error.
func (s *ModerationService) Approve(ctx context.Context, actor auth.Identity, id string) (*models.Post, error) {
	post, err := s.transition(ctx, actor, id, models.StatusApproved)
	if err != nil {
		return nil, err
	}

	if err := s.notifier.PostApproved(ctx, post); err != nil {
		s.log.Warn("approval alert failed", zap.String("post_id", post.ID), zap.Error(err))
	}
	return post, nil
}

// Reject hides a post from the feed. Rejecting twice is not an error.
func (s *ModerationService) Reject(ctx context.Context, actor auth.Identity, id string) (*models.Post, error) {
	return s.transition(ctx, actor, id, models.StatusRejected)
}

// ListByStatus returns posts in the given state, most recent first.
func (s *ModerationService) ListByStatus(ctx context.Context, status string) ([]models.Post, error) {
	parsed, ok := models.ParseStatus(status)
	if !ok {
		return nil, apperrors.Validation("status must be one of pending, approved, rejected")
	}

	posts, err := s.posts.List(ctx, parsed)
	if err != nil {
		return nil, err
	}
	refreshAll(s.now(), posts)
	SortByRecency(posts)
	return posts, nil
}

func (s *ModerationService) transition(ctx context.Context, actor auth.Identity, id string, to models.PostStatus) (*models.Post, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := checkPostID(id); err != nil {
		return nil, err
	}

	post, err := s.posts.SetStatus(ctx, id, to)
	if err != nil {
		return nil, err
	}
	refreshUpcoming(s.now(), post)

	s.log.Info("post moderated",
		zap.String("post_id", id),
		zap.String("status", string(to)),
		zap.String("moderator_id", actor.UserID))
	return post, nil
}

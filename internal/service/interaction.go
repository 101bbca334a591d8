package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/apperrors"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/auth"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/models"
)

// InteractionService handles likes and comments.
type InteractionService struct {
	posts PostStore
	log   *zap.Logger
	now   clock
}

func NewInteractionService(posts PostStore, log *zap.Logger) *InteractionService {
	return &InteractionService{posts: posts, log: log, now: utcNow}
}

// ToggleLike adds actor to the post's likes, or removes them if already
// present. The caller cannot choose the resulting state.
func (s *InteractionService) ToggleLike(ctx context.Context, actor auth.Identity, id string) (*models.Post, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}
	if err := checkPostID(id); err != nil {
		return nil, err
	}

	post, err := s.posts.ToggleLike(ctx, id, actor.UserID)
	if err != nil {
		return nil, err
	}
	refreshUpcoming(s.now(), post)

	s.log.Debug("like toggled",
		zap.String("post_id", id),
		zap.String("user_id", actor.UserID),
		zap.Bool("liked", post.LikedBy(actor.UserID)))
	return post, nil
}

// AddComment appends a comment to the end of the post's comments. Blank text
// is rejected before anything is written.
func (s *InteractionService) AddComment(ctx context.Context, actor auth.Identity, id, text, profileImage string) (*models.Post, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.Validation("Comment text is required")
	}
	if err := checkPostID(id); err != nil {
		return nil, err
	}

	displayName := actor.Username
	if displayName == "" {
		displayName = actor.UserID
	}
	if profileImage = strings.TrimSpace(profileImage); profileImage == "" {
		profileImage = actor.ProfileImage
	}

	comment := &models.Comment{
		UserID:       actor.UserID,
		User:         displayName,
		ProfileImage: profileImage,
		Text:         text,
		CreatedAt:    s.now(),
	}

	post, err := s.posts.AppendComment(ctx, id, comment)
	if err != nil {
		return nil, err
	}
	refreshUpcoming(comment.CreatedAt, post)

	s.log.Debug("comment added", zap.String("post_id", id), zap.String("user_id", actor.UserID))
	return post, nil
}

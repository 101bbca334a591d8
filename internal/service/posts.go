package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/apperrors"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/auth"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/models"
)

// PostService edits and deletes posts on behalf of their authors or admins.
type PostService struct {
	posts PostStore
	log   *zap.Logger
	now   clock
}

func NewPostService(posts PostStore, log *zap.Logger) *PostService {
	return &PostService{posts: posts, log: log, now: utcNow}
}

// Update applies a partial edit of the descriptive fields. Status, likes and
// comments are not writable here.
func (s *PostService) Update(ctx context.Context, actor auth.Identity, id string, req models.UpdatePostRequest) (*models.Post, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}
	if req.TouchesProtectedFields() {
		return nil, apperrors.Validation("status, likes and comments cannot be changed through this endpoint")
	}
	if err := checkPostID(id); err != nil {
		return nil, err
	}

	existing, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(actor, existing); err != nil {
		return nil, err
	}

	fields, err := s.updateFields(req)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, apperrors.Validation("No fields to update")
	}

	post, err := s.posts.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	post.RefreshUpcoming(s.now())
	s.log.Info("post updated", zap.String("post_id", id), zap.String("user_id", actor.UserID))
	return post, nil
}

func (s *PostService) updateFields(req models.UpdatePostRequest) (map[string]interface{}, error) {
	fields := map[string]interface{}{}

	text := []struct {
		column string
		value  *string
	}{
		{"title", req.Title},
		{"description", req.Description},
		{"category", req.Category},
		{"location", req.Location},
	}
	for _, f := range text {
		if f.value == nil {
			continue
		}
		value, err := requiredText(f.column, *f.value)
		if err != nil {
			return nil, err
		}
		fields[f.column] = value
	}

	if req.ImageURL != nil {
		fields["image_url"] = *req.ImageURL
	}

	if req.DisasterDate.Set {
		if req.DisasterDate.Value == nil {
			fields["disaster_date"] = nil
		} else {
			fields["disaster_date"] = *req.DisasterDate.Value
		}
	}
	if req.IsUpcoming != nil {
		fields["is_upcoming"] = *req.IsUpcoming
	}

	return fields, nil
}

func (s *PostService) Delete(ctx context.Context, actor auth.Identity, id string) error {
	if err := requireUser(actor); err != nil {
		return err
	}
	if err := checkPostID(id); err != nil {
		return err
	}

	existing, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(actor, existing); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("post deleted", zap.String("post_id", id), zap.String("user_id", actor.UserID))
	return nil
}

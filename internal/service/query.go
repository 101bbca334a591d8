package service

import (
	"context"
	"sort"
	"strings"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/apperrors"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/models"
)

// FilterAll is the status filter value meaning "no restriction".
const FilterAll = "All"

// QueryService serves the public feed and the admin listing.
type QueryService struct {
	posts PostStore
	now   clock
}

func NewQueryService(posts PostStore) *QueryService {
	return &QueryService{posts: posts, now: utcNow}
}

// ListApproved returns the feed: approved posts, most recent first.
func (s *QueryService) ListApproved(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.List(ctx, models.StatusApproved)
	if err != nil {
		return nil, err
	}
	refreshAll(s.now(), posts)
	SortByRecency(posts)
	return posts, nil
}

// ListAll returns every post, optionally restricted to one status. An empty
// filter or "All" means no restriction.
func (s *QueryService) ListAll(ctx context.Context, filter string) ([]models.Post, error) {
	var status models.PostStatus
	if filter != "" && !strings.EqualFold(filter, FilterAll) {
		parsed, ok := models.ParseStatus(filter)
		if !ok {
			return nil, apperrors.Validation("status must be one of All, pending, approved, rejected")
		}
		status = parsed
	}

	posts, err := s.posts.List(ctx, status)
	if err != nil {
		return nil, err
	}
	refreshAll(s.now(), posts)
	SortByRecency(posts)
	return posts, nil
}

func (s *QueryService) Get(ctx context.Context, id string) (*models.Post, error) {
	if err := checkPostID(id); err != nil {
		return nil, err
	}
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	refreshUpcoming(s.now(), post)
	return post, nil
}

// SortByRecency orders posts by CreatedAt descending. Posts created at the
// same instant keep their relative (insertion) order.
func SortByRecency(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

// Search keeps posts whose title, description, category or location contains
// query, ignoring case. An empty query keeps everything.
func Search(posts []models.Post, query string) []models.Post {
	term := strings.ToLower(query)
	if term == "" {
		return posts
	}

	matched := make([]models.Post, 0, len(posts))
	for _, post := range posts {
		if strings.Contains(strings.ToLower(post.Title), term) ||
			strings.Contains(strings.ToLower(post.Description), term) ||
			strings.Contains(strings.ToLower(post.Category), term) ||
			strings.Contains(strings.ToLower(post.Location), term) {
			matched = append(matched, post)
		}
	}
	return matched
}

package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/apperrors"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/models"
)

// memPostStore is an in-memory PostStore. Every method holds the lock for the
// whole read-modify-write, mirroring the single-statement updates of the
// Postgres store.
type memPostStore struct {
	mu      sync.Mutex
	posts   map[string]*models.Post
	order   []string
	comment uint
	failing error
}

func newMemPostStore() *memPostStore {
	return &memPostStore{posts: map[string]*models.Post{}}
}

func clonePost(p *models.Post) *models.Post {
	cp := *p
	cp.Likes = append(pq.StringArray{}, p.Likes...)
	cp.Comments = append([]models.Comment{}, p.Comments...)
	return &cp
}

func (s *memPostStore) get(id string) (*models.Post, error) {
	if s.failing != nil {
		return nil, apperrors.Store("mem", s.failing)
	}
	post, ok := s.posts[id]
	if !ok {
		return nil, apperrors.NotFound("Post not found")
	}
	return post, nil
}

func (s *memPostStore) Create(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing != nil {
		return apperrors.Store("mem", s.failing)
	}
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	post.Normalize()
	s.posts[post.ID] = clonePost(post)
	s.order = append(s.order, post.ID)
	return nil
}

func (s *memPostStore) FindByID(_ context.Context, id string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return clonePost(post), nil
}

func (s *memPostStore) List(_ context.Context, status models.PostStatus) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing != nil {
		return nil, apperrors.Store("mem", s.failing)
	}
	posts := []models.Post{}
	for _, id := range s.order {
		if p, ok := s.posts[id]; ok && (status == "" || p.Status == status) {
			posts = append(posts, *clonePost(p))
		}
	}
	return posts, nil
}

func (s *memPostStore) Update(_ context.Context, id string, fields map[string]interface{}) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, err := s.get(id)
	if err != nil {
		return nil, err
	}
	for column, value := range fields {
		switch column {
		case "title":
			post.Title = value.(string)
		case "description":
			post.Description = value.(string)
		case "category":
			post.Category = value.(string)
		case "location":
			post.Location = value.(string)
		case "image_url":
			post.ImageURL = value.(string)
		case "disaster_date":
			if value == nil {
				post.DisasterDate = nil
				continue
			}
			date := value.(time.Time)
			post.DisasterDate = &date
		case "is_upcoming":
			post.IsUpcoming = value.(bool)
		default:
			panic("unexpected column " + column)
		}
	}
	return clonePost(post), nil
}

func (s *memPostStore) SetStatus(_ context.Context, id string, status models.PostStatus) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, err := s.get(id)
	if err != nil {
		return nil, err
	}
	post.Status = status
	return clonePost(post), nil
}

func (s *memPostStore) ToggleLike(_ context.Context, id, userID string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, err := s.get(id)
	if err != nil {
		return nil, err
	}
	likes := pq.StringArray{}
	found := false
	for _, uid := range post.Likes {
		if uid == userID {
			found = true
			continue
		}
		likes = append(likes, uid)
	}
	if !found {
		likes = append(likes, userID)
	}
	post.Likes = likes
	return clonePost(post), nil
}

func (s *memPostStore) AppendComment(_ context.Context, id string, comment *models.Comment) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, err := s.get(id)
	if err != nil {
		return nil, err
	}
	s.comment++
	comment.ID = s.comment
	comment.PostID = id
	post.Comments = append(post.Comments, *comment)
	return clonePost(post), nil
}

func (s *memPostStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.get(id); err != nil {
		return err
	}
	delete(s.posts, id)
	return nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	approved []string
	err      error
}

func (n *recordingNotifier) PostApproved(_ context.Context, post *models.Post) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.approved = append(n.approved, post.ID)
	return n.err
}

package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/models"
)

const postNotFound = "Post not found"

// toggleLikeExpr flips membership of a user id inside the likes array in one
// statement, so the row lock taken by UPDATE serializes concurrent toggles.
const toggleLikeExpr = `CASE WHEN ?::text = ANY(likes)
	THEN array_remove(likes, ?::text)
	ELSE array_append(likes, ?::text) END`

// PostStore persists posts and their comments in Postgres.
type PostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

func withComments(db *gorm.DB) *gorm.DB {
	return db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("post_comments.id ASC")
	})
}

func (s *PostStore) Create(ctx context.Context, post *models.Post) error {
	if err := s.db.WithContext(ctx).Omit("Comments").Create(post).Error; err != nil {
		return translate(err, "create post", postNotFound)
	}
	post.Normalize()
	return nil
}

func (s *PostStore) FindByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := withComments(s.db.WithContext(ctx)).First(&post, "id = ?", id).Error; err != nil {
		return nil, translate(err, "find post", postNotFound)
	}
	return &post, nil
}

// List returns posts in insertion order. An empty status returns every post.
func (s *PostStore) List(ctx context.Context, status models.PostStatus) ([]models.Post, error) {
	query := withComments(s.db.WithContext(ctx)).Order("seq ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	posts := []models.Post{}
	if err := query.Find(&posts).Error; err != nil {
		return nil, translate(err, "list posts", postNotFound)
	}
	return posts, nil
}

// Update writes the given columns and returns the reloaded post.
func (s *PostStore) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Post, error) {
	return s.mutate(ctx, id, "update post", func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&models.Post{}).Where("id = ?", id).Updates(fields)
	})
}

func (s *PostStore) SetStatus(ctx context.Context, id string, status models.PostStatus) (*models.Post, error) {
	return s.mutate(ctx, id, "set post status", func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&models.Post{}).Where("id = ?", id).Update("status", status)
	})
}

func (s *PostStore) ToggleLike(ctx context.Context, id, userID string) (*models.Post, error) {
	return s.mutate(ctx, id, "toggle like", func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&models.Post{}).Where("id = ?", id).
			Update("likes", gorm.Expr(toggleLikeExpr, userID, userID, userID))
	})
}

// AppendComment inserts comment for post id. A missing post surfaces as a
// foreign key violation, which is reported as not found.
func (s *PostStore) AppendComment(ctx context.Context, id string, comment *models.Comment) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comment.PostID = id
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return withComments(tx).First(&post, "id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err, "append comment", postNotFound)
	}
	return &post, nil
}

func (s *PostStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{})
	if res.Error != nil {
		return translate(res.Error, "delete post", postNotFound)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "delete post", postNotFound)
	}
	return nil
}

// mutate runs a single-row update and reloads the post in the same transaction.
func (s *PostStore) mutate(ctx context.Context, id, op string, update func(tx *gorm.DB) *gorm.DB) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := update(tx)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return withComments(tx).First(&post, "id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err, op, postNotFound)
	}
	return &post, nil
}

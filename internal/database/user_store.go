package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/models"
)

const userNotFound = "User not found"

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return translate(err, "create user", userNotFound)
	}
	return nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.findBy(ctx, "id = ?", id)
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findBy(ctx, "email = ?", email)
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findBy(ctx, "username = ?", username)
}

func (s *UserStore) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&user, "id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err, "update user", userNotFound)
	}
	return &user, nil
}

func (s *UserStore) findBy(ctx context.Context, cond string, arg string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where(cond, arg).First(&user).Error; err != nil {
		return nil, translate(err, "find user", userNotFound)
	}
	return &user, nil
}

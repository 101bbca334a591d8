package models

import "time"

// Comment belongs to a post; comments are ordered by ID, which follows insertion.
type Comment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PostID       string    `gorm:"type:uuid;not null;index" json:"postId"`
	UserID       string    `gorm:"type:uuid" json:"userId"`
	User         string    `gorm:"not null" json:"user"`
	ProfileImage string    `json:"profile_img,omitempty"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Comment) TableName() string {
	return "post_comments"
}

type CreateCommentRequest struct {
	UserID       string `json:"userId"`
	Text         string `json:"text"`
	ProfileImage string `json:"profileImage"`
}

type LikeRequest struct {
	UserID string `json:"userId"`
}

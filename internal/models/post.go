package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type PostStatus string

const (
	StatusPending  PostStatus = "pending"
	StatusApproved PostStatus = "approved"
	StatusRejected PostStatus = "rejected"
)

// ParseStatus accepts pending, approved or rejected in any letter case.
func ParseStatus(s string) (PostStatus, bool) {
	switch PostStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, true
	case StatusApproved:
		return StatusApproved, true
	case StatusRejected:
		return StatusRejected, true
	}
	return "", false
}

// Post is a disaster report. Status, Likes and Comments are only changed
// through moderation and interaction operations.
type Post struct {
	ID           string         `gorm:"type:uuid;primaryKey" json:"id"`
	Seq          int64          `gorm:"autoIncrement;not null;uniqueIndex" json:"-"`
	AuthorID     string         `gorm:"type:uuid;index" json:"authorId"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `gorm:"type:text;not null" json:"description"`
	Category     string         `gorm:"not null;index" json:"category"`
	Location     string         `gorm:"not null" json:"location"`
	ImageURL     string         `json:"imageUrl"`
	DisasterDate *time.Time     `json:"disasterDate,omitempty"`
	IsUpcoming   bool           `gorm:"not null;default:false" json:"isUpcoming"`
	Status       PostStatus     `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	Likes        pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"likes"`
	Comments     []Comment      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Likes == nil {
		p.Likes = pq.StringArray{}
	}
	return nil
}

// AfterFind keeps likes and comments serialized as arrays rather than null
// and recomputes IsUpcoming against the current time.
func (p *Post) AfterFind(tx *gorm.DB) error {
	p.Normalize()
	p.RefreshUpcoming(time.Now())
	return nil
}

func (p *Post) Normalize() {
	if p.Likes == nil {
		p.Likes = pq.StringArray{}
	}
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
}

// LikedBy reports whether userID is in the like set.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// UpcomingAt reports whether the disaster date lies after now.
func (p *Post) UpcomingAt(now time.Time) bool {
	return p.DisasterDate != nil && p.DisasterDate.After(now)
}

// RefreshUpcoming derives IsUpcoming from the disaster date as of now. Posts
// without a date keep the flag their author sent.
func (p *Post) RefreshUpcoming(now time.Time) {
	if p.DisasterDate != nil {
		p.IsUpcoming = p.UpcomingAt(now)
	}
}

type CreatePostRequest struct {
	Title        string     `json:"title" binding:"required,notblank,max=200"`
	Description  string     `json:"description" binding:"required,notblank"`
	Category     string     `json:"category" binding:"required,notblank,max=100"`
	Location     string     `json:"location" binding:"required,notblank,max=200"`
	ImageURL     string     `json:"imageUrl" binding:"omitempty,url"`
	DisasterDate *time.Time `json:"disasterDate"`
	IsUpcoming   bool       `json:"isUpcoming"`
}

// UpdatePostRequest is a partial update. Nil fields are left untouched; a
// null disasterDate clears the date.
type UpdatePostRequest struct {
	Title        *string      `json:"title" binding:"omitnil,notblank,max=200"`
	Description  *string      `json:"description" binding:"omitnil,notblank"`
	Category     *string      `json:"category" binding:"omitnil,notblank,max=100"`
	Location     *string      `json:"location" binding:"omitnil,notblank,max=200"`
	ImageURL     *string      `json:"imageUrl" binding:"omitnil,url"`
	DisasterDate OptionalTime `json:"disasterDate"`
	IsUpcoming   *bool        `json:"isUpcoming"`

	// Present only to detect attempts to bypass moderation or interactions.
	Status   json.RawMessage `json:"status,omitempty"`
	Likes    json.RawMessage `json:"likes,omitempty"`
	Comments json.RawMessage `json:"comments,omitempty"`
}

// TouchesProtectedFields reports whether the body tried to set status, likes
// or comments.
func (r UpdatePostRequest) TouchesProtectedFields() bool {
	return r.Status != nil || r.Likes != nil || r.Comments != nil
}

// OptionalTime tells an absent JSON field apart from an explicit null. Set is
// true whenever the field appeared in the body; Value is nil for null.
type OptionalTime struct {
	Set   bool
	Value *time.Time
}

func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	o.Value = &t
	return nil
}

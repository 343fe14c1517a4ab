package models

import (
	"time"

	"gorm.io/gorm"
)

type Story struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	User        User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Title       string `gorm:"not null" json:"title"`
	Body        string `gorm:"type:text;not null" json:"body"`
	// No gorm default tag here: gorm drops zero-valued fields carrying a
	// default on INSERT, which would silently publish every draft. The
	// create handler supplies the true default instead.
	IsPublished bool `gorm:"index" json:"is_published"`

	// Denormalized counters, adjusted in the same transaction as the
	// underlying like/comment row change.
	LikesCount    int `gorm:"default:0" json:"likes_count"`
	CommentsCount int `gorm:"default:0" json:"comments_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

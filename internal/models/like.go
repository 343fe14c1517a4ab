package models

import (
	"time"
)

// Like is a (user, story) pair. The composite unique index is what keeps
// concurrent toggles from creating duplicates; the handler's existence
// check is a convenience on top of it.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StoryID   uint      `gorm:"not null;index;uniqueIndex:idx_story_user_like" json:"story_id"`
	Story     Story     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_story_user_like" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

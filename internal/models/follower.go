package models

import (
	"time"
)

// Follower is a directed edge: FollowerID follows UserID. Self-edges are
// rejected at the application layer, duplicates by the unique pair index.
type Follower struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_user_follower" json:"user_id"`
	FollowerID uint      `gorm:"not null;index;uniqueIndex:idx_user_follower" json:"follower_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Follower) TableName() string { return "followers" }

package models

import (
	"time"
)

type Comment struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	StoryID  uint     `gorm:"not null;index" json:"story_id"`
	Story    Story    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID   uint     `gorm:"not null;index" json:"user_id"`
	User     User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ParentID *uint    `gorm:"index" json:"parent_id"` // nil for root comments
	Parent   *Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Body     string   `gorm:"type:text;not null" json:"body"`
	// Depth of the reply chain (0 = root). Written as parent depth + 1 at
	// create time; display metadata only, never re-derived on read.
	Depth     int       `gorm:"default:0" json:"depth"`
	CreatedAt time.Time `json:"created_at"`
}

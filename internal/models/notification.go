package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeStoryLiked     NotificationType = "story_liked"
	NotificationTypeCommentCreated NotificationType = "comment_created"
	NotificationTypeCommentReplied NotificationType = "comment_replied"
)

type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"` // receiver
	User      User             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ActorID   *uint            `gorm:"index" json:"actor_id"` // who triggered it
	Actor     User             `gorm:"foreignKey:ActorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"actor"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Message   string           `gorm:"type:text" json:"message"`
	StoryID   *uint            `gorm:"index" json:"story_id"`
	ReadAt    *time.Time       `gorm:"index" json:"read_at"`
	CreatedAt time.Time        `json:"created_at"`
}

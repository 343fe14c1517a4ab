package services

import (
	"fmt"

	"gorm.io/gorm"

	"storyhive/internal/models"
)

// NotifyStoryLiked records a notification for the story owner. Actors do
// not notify themselves. Callers dispatch this off the request path, so
// the db handle is passed in rather than read from the global.
func NotifyStoryLiked(gdb *gorm.DB, story *models.Story, actor *models.User) error {
	if story.UserID == actor.ID {
		return nil
	}
	notification := models.Notification{
		UserID:  story.UserID,
		ActorID: &actor.ID,
		StoryID: &story.ID,
		Type:    models.NotificationTypeStoryLiked,
		Message: fmt.Sprintf("%s liked your story \"%s\"", actor.Name, story.Title),
	}
	return gdb.Create(&notification).Error
}

// NotifyCommentCreated records a notification for either the parent
// comment's author (reply) or the story owner (top-level comment).
func NotifyCommentCreated(gdb *gorm.DB, comment *models.Comment, story *models.Story, actor *models.User) error {
	if comment.ParentID != nil {
		var parent models.Comment
		if err := gdb.First(&parent, *comment.ParentID).Error; err != nil {
			return err
		}
		if parent.UserID == actor.ID {
			return nil
		}
		notification := models.Notification{
			UserID:  parent.UserID,
			ActorID: &actor.ID,
			StoryID: &story.ID,
			Type:    models.NotificationTypeCommentReplied,
			Message: fmt.Sprintf("%s replied to your comment on \"%s\"", actor.Name, story.Title),
		}
		return gdb.Create(&notification).Error
	}

	if story.UserID == actor.ID {
		return nil
	}
	notification := models.Notification{
		UserID:  story.UserID,
		ActorID: &actor.ID,
		StoryID: &story.ID,
		Type:    models.NotificationTypeCommentCreated,
		Message: fmt.Sprintf("%s commented on your story \"%s\"", actor.Name, story.Title),
	}
	return gdb.Create(&notification).Error
}

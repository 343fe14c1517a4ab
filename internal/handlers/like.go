package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storyhive/internal/db"
	"storyhive/internal/models"
	"storyhive/internal/services"
)

type LikeHandler struct{}

func NewLikeHandler() *LikeHandler {
	return &LikeHandler{}
}

// Toggle adds or removes the current user's like on a story. The denormalized
// likes_count moves in the same transaction as the like row, and the response
// carries a fresh COUNT so clients never see a stale total.
func (h *LikeHandler) Toggle(c *gin.Context) {
	user := CurrentUser(c)
	id, ok := ParamID(c, "id")
	if !ok {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return
	}

	var story models.Story
	if err := db.DB.First(&story, id).Error; err != nil {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return
	}

	if !canViewStory(&story, user) {
		RespondError(c, http.StatusForbidden, "Unauthorized")
		return
	}

	var existing models.Like
	findErr := db.DB.Where("story_id = ? AND user_id = ?", story.ID, user.ID).
		First(&existing).Error

	var liked bool
	var txErr error
	if findErr == nil {
		liked = false
		txErr = db.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			return tx.Model(&models.Story{}).
				Where("id = ?", story.ID).
				UpdateColumn("likes_count", gorm.Expr("likes_count - ?", 1)).
				Error
		})
	} else {
		liked = true
		txErr = db.DB.Transaction(func(tx *gorm.DB) error {
			like := models.Like{StoryID: story.ID, UserID: user.ID}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			return tx.Model(&models.Story{}).
				Where("id = ?", story.ID).
				UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1)).
				Error
		})
	}
	if txErr != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to toggle like")
		return
	}

	if liked {
		go func(gdb *gorm.DB, story models.Story, actor models.User) {
			if err := services.NotifyStoryLiked(gdb, &story, &actor); err != nil {
				log.Printf("like notification failed (story=%d): %v", story.ID, err)
			}
		}(db.DB, story, *user)
	}

	var likesCount int64
	db.DB.Model(&models.Like{}).Where("story_id = ?", story.ID).Count(&likesCount)

	message := "Like added"
	if !liked {
		message = "Like removed"
	}

	RespondSuccess(c, http.StatusOK, message, gin.H{
		"story_id":    story.ID,
		"liked":       liked,
		"likes_count": likesCount,
	})
}

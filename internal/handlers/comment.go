package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storyhive/internal/db"
	"storyhive/internal/models"
	"storyhive/internal/services"
	"storyhive/internal/utils"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

type createCommentRequest struct {
	Body     string `json:"body" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}

func commentTreeCacheKey(storyID uint) string {
	return fmt.Sprintf("story:comments:%d", storyID)
}

// List returns the story's comments as a nested tree.
func (h *CommentHandler) List(c *gin.Context) {
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

	if !canViewStory(&story, CurrentUser(c)) {
		RespondError(c, http.StatusForbidden, "Unauthorized")
		return
	}

	cacheKey := commentTreeCacheKey(story.ID)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if tree, ok := cached.([]*services.CommentNode); ok {
			RespondSuccess(c, http.StatusOK, "Comments retrieved", tree)
			return
		}
	}

	// Insertion order is load-bearing for display; the id tiebreaker keeps
	// it stable when timestamps collide.
	var comments []models.Comment
	db.DB.Preload("User").
		Where("story_id = ?", story.ID).
		Order("created_at ASC, id ASC").
		Find(&comments)

	tree := services.BuildCommentTree(comments)
	utils.GetCache().Set(cacheKey, tree, 1*time.Minute)

	RespondSuccess(c, http.StatusOK, "Comments retrieved", tree)
}

func (h *CommentHandler) Create(c *gin.Context) {
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

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "Validation failed")
		return
	}

	h.create(c, &story, req.Body, req.ParentID)
}

// Reply creates a child comment under an existing comment of the story.
func (h *CommentHandler) Reply(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return
	}
	commentID, ok := ParamID(c, "commentID")
	if !ok {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return
	}

	var story models.Story
	if err := db.DB.First(&story, id).Error; err != nil {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return
	}

	var parent models.Comment
	if err := db.DB.Where("story_id = ?", story.ID).First(&parent, commentID).Error; err != nil {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "Validation failed")
		return
	}

	h.create(c, &story, req.Body, &parent.ID)
}

func (h *CommentHandler) create(c *gin.Context, story *models.Story, body string, parentID *uint) {
	user := CurrentUser(c)

	if !canViewStory(story, user) {
		RespondError(c, http.StatusForbidden, "Unauthorized")
		return
	}

	depth := 0
	if parentID != nil {
		// The parent must belong to the same story; a foreign parent id is
		// treated as not found, never silently reparented.
		var parent models.Comment
		if err := db.DB.Where("story_id = ?", story.ID).First(&parent, *parentID).Error; err != nil {
			RespondError(c, http.StatusNotFound, "Resource not found")
			return
		}
		depth = parent.Depth + 1
	}

	comment := models.Comment{
		StoryID:  story.ID,
		UserID:   user.ID,
		ParentID: parentID,
		Body:     body,
		Depth:    depth,
	}

	// Row insert and counter bump share one transaction so the counter
	// cannot drift if either write fails.
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Story{}).
			Where("id = ?", story.ID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + ?", 1)).
			Error
	})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to create comment")
		return
	}

	utils.GetCache().Delete(commentTreeCacheKey(story.ID))

	go func(gdb *gorm.DB, comment models.Comment, story models.Story, actor models.User) {
		if err := services.NotifyCommentCreated(gdb, &comment, &story, &actor); err != nil {
			log.Printf("comment notification failed (comment=%d): %v", comment.ID, err)
		}
	}(db.DB, comment, *story, *user)

	comment.User = *user

	RespondSuccess(c, http.StatusCreated, "Comment created", gin.H{
		"id":         comment.ID,
		"story_id":   comment.StoryID,
		"parent_id":  comment.ParentID,
		"body":       comment.Body,
		"depth":      comment.Depth,
		"user":       user.Brief(),
		"created_at": comment.CreatedAt,
	})
}

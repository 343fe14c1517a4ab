package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storyhive/internal/db"
	"storyhive/internal/models"
)

// AdminHandler covers user administration and story moderation. Routing
// decides who gets in: user management is admin only, story moderation is
// open to moderators as well.
type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type updateStoryStatusRequest struct {
	IsPublished *bool `json:"is_published" binding:"required"`
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, perPage := PageParams(c)

	query := db.DB.Model(&models.User{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	switch c.DefaultQuery("sort", "latest") {
	case "oldest":
		query = query.Order("created_at ASC")
	case "name":
		query = query.Order("name ASC")
	default:
		query = query.Order("created_at DESC")
	}

	var total int64
	query.Count(&total)

	var users []models.User
	query.Limit(perPage).Offset((page - 1) * perPage).Find(&users)

	RespondPaginated(c, "Users retrieved", users, NewMeta(total, len(users), page, perPage))
}

func (h *AdminHandler) ShowUser(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return
	}

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return
	}

	var stories, followers, following int64
	db.DB.Model(&models.Story{}).Where("user_id = ?", user.ID).Count(&stories)
	db.DB.Model(&models.Follower{}).Where("user_id = ?", user.ID).Count(&followers)
	db.DB.Model(&models.Follower{}).Where("follower_id = ?", user.ID).Count(&following)

	RespondSuccess(c, http.StatusOK, "User retrieved", gin.H{
		"user":            user,
		"stories_count":   stories,
		"followers_count": followers,
		"following_count": following,
	})
}

func (h *AdminHandler) UpdateRole(c *gin.Context) {
	admin := CurrentUser(c)
	id, ok := ParamID(c, "id")
	if !ok {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return
	}

	if id == admin.ID {
		RespondError(c, http.StatusBadRequest, "Cannot change your own role")
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil || !models.ValidRole(req.Role) {
		RespondError(c, http.StatusUnprocessableEntity, "Validation failed")
		return
	}

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return
	}

	oldRole := user.Role
	if err := db.DB.Model(&user).Update("role", req.Role).Error; err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to update role")
		return
	}

	RespondSuccess(c, http.StatusOK, "User role updated successfully", gin.H{
		"user_id":  user.ID,
		"old_role": oldRole,
		"new_role": req.Role,
	})
}

func (h *AdminHandler) ToggleSuspend(c *gin.Context) {
	admin := CurrentUser(c)
	id, ok := ParamID(c, "id")
	if !ok {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return
	}

	if id == admin.ID {
		RespondError(c, http.StatusBadRequest, "Cannot suspend your own account")
		return
	}

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return
	}

	user.IsSuspended = !user.IsSuspended
	if err := db.DB.Model(&user).Update("is_suspended", user.IsSuspended).Error; err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}

	message := "User suspended"
	if !user.IsSuspended {
		message = "User unsuspended"
	}

	RespondSuccess(c, http.StatusOK, message, gin.H{
		"user_id":      user.ID,
		"is_suspended": user.IsSuspended,
	})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	admin := CurrentUser(c)
	id, ok := ParamID(c, "id")
	if !ok {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return
	}

	if id == admin.ID {
		RespondError(c, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return
	}

	if err := db.DB.Delete(&user).Error; err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	RespondSuccess(c, http.StatusOK, "User deleted", gin.H{
		"deleted_user_id": user.ID,
	})
}

// ListStories shows all stories including drafts; moderators see everything.
func (h *AdminHandler) ListStories(c *gin.Context) {
	page, perPage := PageParams(c)

	query := db.DB.Model(&models.Story{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR body LIKE ?", pattern, pattern)
	}
	if status := c.Query("status"); status == "published" {
		query = query.Where("is_published = ?", true)
	} else if status == "draft" {
		query = query.Where("is_published = ?", false)
	}

	query = query.Order("created_at DESC")

	var total int64
	query.Count(&total)

	var stories []models.Story
	query.Preload("User").Limit(perPage).Offset((page - 1) * perPage).Find(&stories)

	RespondPaginated(c, "Stories retrieved", toStoryResponses(stories),
		NewMeta(total, len(stories), page, perPage))
}

func (h *AdminHandler) ShowStory(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return
	}

	var story models.Story
	if err := db.DB.Preload("User").First(&story, id).Error; err != nil {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return
	}

	RespondSuccess(c, http.StatusOK, "Story retrieved",
		storyResponse{Story: story, User: story.User.Brief()})
}

func (h *AdminHandler) UpdateStoryStatus(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return
	}

	var req updateStoryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "Validation failed")
		return
	}

	var story models.Story
	if err := db.DB.First(&story, id).Error; err != nil {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return
	}

	oldStatus := story.IsPublished
	if err := db.DB.Model(&story).Update("is_published", *req.IsPublished).Error; err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to update story")
		return
	}

	invalidateStoryCaches(story.ID)

	RespondSuccess(c, http.StatusOK, "Story status updated", gin.H{
		"story_id":   story.ID,
		"old_status": oldStatus,
		"new_status": *req.IsPublished,
	})
}

func (h *AdminHandler) DeleteStory(c *gin.Context) {
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

	if err := db.DB.Delete(&story).Error; err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to delete story")
		return
	}

	invalidateStoryCaches(story.ID)

	RespondSuccess(c, http.StatusOK, "Story deleted", nil)
}

// TrashedStories lists soft-deleted stories, most recently deleted first.
func (h *AdminHandler) TrashedStories(c *gin.Context) {
	page, perPage := PageParams(c)

	query := db.DB.Unscoped().Model(&models.Story{}).
		Where("deleted_at IS NOT NULL")

	var total int64
	query.Count(&total)

	var stories []models.Story
	query.Preload("User").
		Order("deleted_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&stories)

	RespondPaginated(c, "Trashed stories retrieved", toStoryResponses(stories),
		NewMeta(total, len(stories), page, perPage))
}

func (h *AdminHandler) RestoreStory(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return
	}

	var story models.Story
	if err := db.DB.Unscoped().First(&story, id).Error; err != nil {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return
	}

	if !story.DeletedAt.Valid {
		RespondError(c, http.StatusBadRequest, "Story is not deleted")
		return
	}

	if err := db.DB.Unscoped().Model(&story).Update("deleted_at", nil).Error; err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to restore story")
		return
	}

	invalidateStoryCaches(story.ID)
	story.DeletedAt.Valid = false

	RespondSuccess(c, http.StatusOK, "Story restored", gin.H{
		"story_id": story.ID,
	})
}

// ForceDeleteStory permanently removes a trashed story.
func (h *AdminHandler) ForceDeleteStory(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return
	}

	var story models.Story
	if err := db.DB.Unscoped().First(&story, id).Error; err != nil {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return
	}

	if err := db.DB.Unscoped().Delete(&story).Error; err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to delete story")
		return
	}

	invalidateStoryCaches(story.ID)

	RespondSuccess(c, http.StatusOK, "Story permanently deleted", gin.H{
		"deleted_story_id": story.ID,
	})
}

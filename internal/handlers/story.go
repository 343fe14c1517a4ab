package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storyhive/internal/db"
	"storyhive/internal/models"
	"storyhive/internal/utils"
)

type StoryHandler struct{}

func NewStoryHandler() *StoryHandler {
	return &StoryHandler{}
}

// storyResponse shadows the preloaded User association with its public shape.
type storyResponse struct {
	models.Story
	User models.UserBrief `json:"user"`
}

func toStoryResponses(stories []models.Story) []storyResponse {
	out := make([]storyResponse, len(stories))
	for i, s := range stories {
		out[i] = storyResponse{Story: s, User: s.User.Brief()}
	}
	return out
}

type cachedStoryList struct {
	Data []storyResponse
	Meta Meta
}

type createStoryRequest struct {
	Title       string `json:"title" binding:"required"`
	Body        string `json:"body" binding:"required"`
	IsPublished *bool  `json:"is_published"`
}

type updateStoryRequest struct {
	Title       *string `json:"title"`
	Body        *string `json:"body"`
	IsPublished *bool   `json:"is_published"`
}

// canViewStory: published stories are public; drafts are visible to their
// owner and to moderators.
func canViewStory(story *models.Story, user *models.User) bool {
	if story.IsPublished {
		return true
	}
	return user != nil && (user.ID == story.UserID || user.CanModerate())
}

func canEditStory(story *models.Story, user *models.User) bool {
	return user.ID == story.UserID || user.CanModerate()
}

func storyListCacheKey(page, perPage int) string {
	return fmt.Sprintf("story:list:%d:%d", page, perPage)
}

func invalidateStoryCaches(storyID uint) {
	// Only the default first page is cached; see List.
	utils.GetCache().Delete(storyListCacheKey(1, 15))
	utils.GetCache().Delete(fmt.Sprintf("story:comments:%d", storyID))
}

func (h *StoryHandler) List(c *gin.Context) {
	user := CurrentUser(c)
	page, perPage := PageParams(c)

	search := c.Query("search")
	author := c.Query("author")
	role := c.Query("role")
	sort := c.DefaultQuery("sort", "latest")

	// Cache the default anonymous listing only; filtered views are cheap
	// enough to serve fresh.
	cacheable := user == nil && search == "" && author == "" && role == "" &&
		sort == "latest" && c.Query("only_published") == ""
	cacheKey := storyListCacheKey(page, perPage)
	if cacheable {
		if cached := utils.GetCache().Get(cacheKey); cached != nil {
			if list, ok := cached.(cachedStoryList); ok {
				RespondPaginated(c, "Stories retrieved successfully", list.Data, list.Meta)
				return
			}
		}
	}

	query := db.DB.Model(&models.Story{})

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR body LIKE ?", pattern, pattern)
	}

	if author != "" || role != "" {
		query = query.Joins("JOIN users ON users.id = stories.user_id")
		if author != "" {
			query = query.Where("users.name LIKE ?", "%"+author+"%")
		}
		if role != "" {
			query = query.Where("users.role = ?", role)
		}
	}

	if user == nil || c.Query("only_published") == "true" {
		query = query.Where("stories.is_published = ?", true)
	}

	switch sort {
	case "oldest":
		query = query.Order("stories.created_at ASC")
	case "most_liked":
		query = query.Order("stories.likes_count DESC")
	case "most_commented":
		query = query.Order("stories.comments_count DESC")
	default: // latest
		query = query.Order("stories.created_at DESC")
	}

	var total int64
	query.Count(&total)

	var stories []models.Story
	query.Preload("User").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&stories)

	data := toStoryResponses(stories)
	meta := NewMeta(total, len(data), page, perPage)

	if cacheable {
		utils.GetCache().Set(cacheKey, cachedStoryList{Data: data, Meta: meta}, 1*time.Minute)
	}

	RespondPaginated(c, "Stories retrieved successfully", data, meta)
}

func (h *StoryHandler) Detail(c *gin.Context) {
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

	if !canViewStory(&story, CurrentUser(c)) {
		RespondError(c, http.StatusForbidden, "Unauthorized")
		return
	}

	// The detail view trusts fresh counts over the denormalized columns.
	var likesTotal, commentsTotal int64
	db.DB.Model(&models.Like{}).Where("story_id = ?", story.ID).Count(&likesTotal)
	db.DB.Model(&models.Comment{}).Where("story_id = ?", story.ID).Count(&commentsTotal)

	RespondSuccess(c, http.StatusOK, "Story retrieved", gin.H{
		"story":          storyResponse{Story: story, User: story.User.Brief()},
		"body_html":      utils.RenderMarkdown(story.Body),
		"likes_total":    likesTotal,
		"comments_total": commentsTotal,
	})
}

func (h *StoryHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req createStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "Validation failed")
		return
	}

	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}

	story := models.Story{
		UserID:      user.ID,
		Title:       req.Title,
		Body:        req.Body,
		IsPublished: published,
	}
	if err := db.DB.Create(&story).Error; err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to create story")
		return
	}

	invalidateStoryCaches(story.ID)
	story.User = *user

	RespondSuccess(c, http.StatusCreated, "Story created",
		storyResponse{Story: story, User: user.Brief()})
}

func (h *StoryHandler) Update(c *gin.Context) {
	user := CurrentUser(c)
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

	if !canEditStory(&story, user) {
		RespondError(c, http.StatusForbidden, "Unauthorized")
		return
	}

	var req updateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "Validation failed")
		return
	}

	if req.Title != nil {
		story.Title = *req.Title
	}
	if req.Body != nil {
		story.Body = *req.Body
	}
	if req.IsPublished != nil {
		story.IsPublished = *req.IsPublished
	}

	if err := db.DB.Save(&story).Error; err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to update story")
		return
	}

	invalidateStoryCaches(story.ID)

	RespondSuccess(c, http.StatusOK, "Story updated",
		storyResponse{Story: story, User: story.User.Brief()})
}

// Delete soft-deletes a story; admins can restore it from the trash.
func (h *StoryHandler) Delete(c *gin.Context) {
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

	if !canEditStory(&story, user) {
		RespondError(c, http.StatusForbidden, "Unauthorized")
		return
	}

	if err := db.DB.Delete(&story).Error; err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to delete story")
		return
	}

	invalidateStoryCaches(story.ID)

	RespondSuccess(c, http.StatusOK, "Story deleted", nil)
}

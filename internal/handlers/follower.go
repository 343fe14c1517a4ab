package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storyhive/internal/db"
	"storyhive/internal/models"
)

type FollowerHandler struct{}

func NewFollowerHandler() *FollowerHandler {
	return &FollowerHandler{}
}

func (h *FollowerHandler) targetUser(c *gin.Context) (*models.User, bool) {
	id, ok := ParamID(c, "id")
	if !ok {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return nil, false
	}
	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return nil, false
	}
	return &user, true
}

func (h *FollowerHandler) Follow(c *gin.Context) {
	actor := CurrentUser(c)
	target, ok := h.targetUser(c)
	if !ok {
		return
	}

	if target.ID == actor.ID {
		RespondError(c, http.StatusBadRequest, "You cannot follow yourself")
		return
	}

	var count int64
	db.DB.Model(&models.Follower{}).
		Where("user_id = ? AND follower_id = ?", target.ID, actor.ID).
		Count(&count)
	if count > 0 {
		RespondError(c, http.StatusBadRequest, "Already following this user")
		return
	}

	edge := models.Follower{UserID: target.ID, FollowerID: actor.ID}
	if err := db.DB.Create(&edge).Error; err != nil {
		// Unique index races resolve as a duplicate follow.
		RespondError(c, http.StatusBadRequest, "Already following this user")
		return
	}

	RespondSuccess(c, http.StatusCreated, "Successfully followed user", gin.H{
		"user":         target.Brief(),
		"is_following": true,
	})
}

func (h *FollowerHandler) Unfollow(c *gin.Context) {
	actor := CurrentUser(c)
	target, ok := h.targetUser(c)
	if !ok {
		return
	}

	result := db.DB.Where("user_id = ? AND follower_id = ?", target.ID, actor.ID).
		Delete(&models.Follower{})
	if result.Error != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to unfollow user")
		return
	}
	if result.RowsAffected == 0 {
		RespondError(c, http.StatusBadRequest, "Not following this user")
		return
	}

	RespondSuccess(c, http.StatusOK, "Successfully unfollowed user", gin.H{
		"user":         target.Brief(),
		"is_following": false,
	})
}

// Followers lists the users following the target user.
func (h *FollowerHandler) Followers(c *gin.Context) {
	target, ok := h.targetUser(c)
	if !ok {
		return
	}
	page, perPage := PageParams(c)

	var total int64
	db.DB.Model(&models.Follower{}).Where("user_id = ?", target.ID).Count(&total)

	var users []models.User
	db.DB.Model(&models.User{}).
		Joins("JOIN followers ON followers.follower_id = users.id").
		Where("followers.user_id = ?", target.ID).
		Order("followers.created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&users)

	briefs := make([]models.UserBrief, len(users))
	for i, u := range users {
		briefs[i] = u.Brief()
	}

	RespondPaginated(c, "Followers retrieved", briefs, NewMeta(total, len(briefs), page, perPage))
}

// Following lists the users the target user follows.
func (h *FollowerHandler) Following(c *gin.Context) {
	target, ok := h.targetUser(c)
	if !ok {
		return
	}
	page, perPage := PageParams(c)

	var total int64
	db.DB.Model(&models.Follower{}).Where("follower_id = ?", target.ID).Count(&total)

	var users []models.User
	db.DB.Model(&models.User{}).
		Joins("JOIN followers ON followers.user_id = users.id").
		Where("followers.follower_id = ?", target.ID).
		Order("followers.created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&users)

	briefs := make([]models.UserBrief, len(users))
	for i, u := range users {
		briefs[i] = u.Brief()
	}

	RespondPaginated(c, "Following retrieved", briefs, NewMeta(total, len(briefs), page, perPage))
}

func (h *FollowerHandler) Counts(c *gin.Context) {
	target, ok := h.targetUser(c)
	if !ok {
		return
	}

	var followers, following int64
	db.DB.Model(&models.Follower{}).Where("user_id = ?", target.ID).Count(&followers)
	db.DB.Model(&models.Follower{}).Where("follower_id = ?", target.ID).Count(&following)

	RespondSuccess(c, http.StatusOK, "Follow counts retrieved", gin.H{
		"user_id":         target.ID,
		"followers_count": followers,
		"following_count": following,
	})
}

// Status reports the relationship between the current user and the target.
// Anonymous callers get a valid response with both flags false.
func (h *FollowerHandler) Status(c *gin.Context) {
	target, ok := h.targetUser(c)
	if !ok {
		return
	}

	var isFollowing, isFollowedBy int64
	if actor := CurrentUser(c); actor != nil {
		db.DB.Model(&models.Follower{}).
			Where("user_id = ? AND follower_id = ?", target.ID, actor.ID).
			Count(&isFollowing)
		db.DB.Model(&models.Follower{}).
			Where("user_id = ? AND follower_id = ?", actor.ID, target.ID).
			Count(&isFollowedBy)
	}

	RespondSuccess(c, http.StatusOK, "Follow status retrieved", gin.H{
		"user_id":        target.ID,
		"is_following":   isFollowing > 0,
		"is_followed_by": isFollowedBy > 0,
	})
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storyhive/internal/db"
	"storyhive/internal/models"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

// find scopes the lookup to the current user so nobody can touch another
// user's notifications by guessing ids.
func (h *NotificationHandler) find(c *gin.Context) (*models.Notification, bool) {
	user := CurrentUser(c)
	id, ok := ParamID(c, "id")
	if !ok {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return nil, false
	}
	var notification models.Notification
	err := db.DB.Preload("Actor").
		Where("user_id = ?", user.ID).
		First(&notification, id).Error
	if err != nil {
		RespondError(c, http.StatusNotFound, "Resource not found")
		return nil, false
	}
	return &notification, true
}

func (h *NotificationHandler) List(c *gin.Context) {
	user := CurrentUser(c)
	page, perPage := PageParams(c)
	if c.Query("per_page") == "" {
		perPage = 20
	}

	query := db.DB.Model(&models.Notification{}).Where("user_id = ?", user.ID)
	if c.Query("unread") == "true" {
		query = query.Where("read_at IS NULL")
	}

	var total int64
	query.Count(&total)

	var notifications []models.Notification
	query.Preload("Actor").
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&notifications)

	RespondPaginated(c, "Notifications retrieved", notifications,
		NewMeta(total, len(notifications), page, perPage))
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	user := CurrentUser(c)

	var count int64
	db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", user.ID).
		Count(&count)

	RespondSuccess(c, http.StatusOK, "Unread count retrieved", gin.H{
		"unread_count": count,
	})
}

func (h *NotificationHandler) Read(c *gin.Context) {
	notification, ok := h.find(c)
	if !ok {
		return
	}

	if notification.ReadAt == nil {
		now := time.Now()
		notification.ReadAt = &now
		if err := db.DB.Model(notification).Update("read_at", now).Error; err != nil {
			RespondError(c, http.StatusInternalServerError, "Failed to mark notification as read")
			return
		}
	}

	RespondSuccess(c, http.StatusOK, "Notification marked as read", notification)
}

func (h *NotificationHandler) ReadAll(c *gin.Context) {
	user := CurrentUser(c)

	result := db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", user.ID).
		Update("read_at", time.Now())
	if result.Error != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to mark notifications as read")
		return
	}

	RespondSuccess(c, http.StatusOK, "All notifications marked as read", gin.H{
		"marked_count": result.RowsAffected,
	})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	notification, ok := h.find(c)
	if !ok {
		return
	}

	if err := db.DB.Delete(notification).Error; err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to delete notification")
		return
	}

	RespondSuccess(c, http.StatusOK, "Notification deleted", nil)
}

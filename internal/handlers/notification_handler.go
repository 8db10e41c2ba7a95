package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"teamtask-api/internal/database"
	"teamtask-api/internal/models"
)

// GetNotifications handles GET /api/notifications
// Returns the requester's notifications, newest first. Optional query param
// unread=true filters to unread only. Clients poll this endpoint between
// websocket pushes.
func (a *API) GetNotifications(c *gin.Context) {
	staff, ok := a.currentStaff(c)
	if !ok {
		return
	}

	query := database.GetDB().Where("staff_id = ?", staff.ID)
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("created_at desc").Limit(100).Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// MarkNotificationRead handles PATCH /api/notifications/:id/read
func (a *API) MarkNotificationRead(c *gin.Context) {
	staff, ok := a.currentStaff(c)
	if !ok {
		return
	}

	notification, ok := a.ownNotification(c, staff)
	if !ok {
		return
	}

	if err := database.GetDB().Model(notification).Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	notification.IsRead = true

	c.JSON(http.StatusOK, notification)
}

// MarkAllNotificationsRead handles POST /api/notifications/read-all
func (a *API) MarkAllNotificationsRead(c *gin.Context) {
	staff, ok := a.currentStaff(c)
	if !ok {
		return
	}

	result := database.GetDB().Model(&models.Notification{}).
		Where("staff_id = ? AND is_read = ?", staff.ID, false).
		Update("is_read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "All notifications marked as read",
		"updated": result.RowsAffected,
	})
}

// DeleteNotification handles DELETE /api/notifications/:id (soft delete).
func (a *API) DeleteNotification(c *gin.Context) {
	staff, ok := a.currentStaff(c)
	if !ok {
		return
	}

	notification, ok := a.ownNotification(c, staff)
	if !ok {
		return
	}

	if err := database.GetDB().Delete(notification).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Notification deleted successfully",
		"id":      notification.ID,
	})
}

// DeadlineSweep handles POST /api/notifications/deadline-sweep (admin only,
// enforced at the route). Intended to be called by an external scheduler.
func (a *API) DeadlineSweep(c *gin.Context) {
	if _, ok := a.currentStaff(c); !ok {
		return
	}

	created, err := a.notify.DeadlineSweep(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run deadline sweep"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Deadline sweep completed",
		"created": created,
	})
}

// ownNotification loads a notification owned by the requester, answering
// 404 when missing or not theirs.
func (a *API) ownNotification(c *gin.Context, staff *models.Staff) (*models.Notification, bool) {
	id := c.Param("id")
	var notification models.Notification
	err := database.GetDB().Where("id = ? AND staff_id = ?", id, staff.ID).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notification"})
		}
		return nil, false
	}
	return &notification, true
}

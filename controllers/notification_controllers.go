package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/frotaweb/fleet-app/models"
	"github.com/frotaweb/fleet-app/realtime"
	"github.com/frotaweb/fleet-app/utils"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetAllNotifications -> newest first
func (nc *NotificationController) GetAllNotifications(c *gin.Context) {
	var notifs []models.Notification
	if err := nc.DB.Preload("ReadBy").Order("created_at DESC").Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All notifications", notifs)
}

// GetUnread -> only unread, newest first
func (nc *NotificationController) GetUnread(c *gin.Context) {
	var notifs []models.Notification
	if err := nc.DB.Where("is_read = ?", false).Order("created_at DESC").Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Unread notifications", notifs)
}

// GetUnreadCount -> badge counter for the dashboard
func (nc *NotificationController) GetUnreadCount(c *gin.Context) {
	var count int64
	if err := nc.DB.Model(&models.Notification{}).Where("is_read = ?", false).Count(&count).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Unread count", gin.H{"unread_count": count})
}

// MarkRead marks one notification as read. Idempotent: re-marking an
// already-read notification just returns it unchanged.
func (nc *NotificationController) MarkRead(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("notif_id"))

	reviewer, ok := currentReviewer(c, nc.DB)
	if !ok {
		return
	}

	var notif models.Notification
	if err := nc.DB.First(&notif, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !notif.IsRead {
		now := time.Now()
		updates := map[string]interface{}{
			"is_read":    true,
			"read_by_id": reviewer.ID,
			"read_at":    now,
		}
		if err := nc.DB.Model(&notif).Updates(updates).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		notif.IsRead = true
		notif.ReadByID = &reviewer.ID
		notif.ReadAt = &now

		// Other dashboards clear their badge without polling
		realtime.BroadcastMessage(realtime.Message{
			Type: realtime.EventNotificationRead,
			Data: gin.H{"id": notif.ID, "read_by": reviewer.Name},
		})
	}

	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", notif)
}

// MarkAllRead -> bulk update over every unread notification
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	reviewer, ok := currentReviewer(c, nc.DB)
	if !ok {
		return
	}

	res := nc.DB.Model(&models.Notification{}).
		Where("is_read = ?", false).
		Updates(map[string]interface{}{
			"is_read":    true,
			"read_by_id": reviewer.ID,
			"read_at":    time.Now(),
		})
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}

	if res.RowsAffected > 0 {
		realtime.BroadcastMessage(realtime.Message{
			Type: realtime.EventNotificationRead,
			Data: gin.H{"all": true, "read_by": reviewer.Name},
		})
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications marked as read", gin.H{
		"updated_count": res.RowsAffected,
	})
}

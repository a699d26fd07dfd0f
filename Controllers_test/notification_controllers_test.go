package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/frotaweb/fleet-app/controllers"
	"github.com/frotaweb/fleet-app/models"
	"github.com/frotaweb/fleet-app/utils"
)

func setupNotificationRouter(db *gorm.DB, staff models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	notifCtrl := controllers.NewNotificationController(db)
	authed := router.Group("/staff/notifications", asUser(staff))
	authed.GET("", notifCtrl.GetAllNotifications)
	authed.GET("/unread", notifCtrl.GetUnread)
	authed.GET("/unread-count", notifCtrl.GetUnreadCount)
	authed.PATCH("/:notif_id/mark-read", notifCtrl.MarkRead)
	authed.POST("/mark-all-read", notifCtrl.MarkAllRead)

	return router
}

func patch(router *gin.Engine, url string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("PATCH", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedNotifications(db *gorm.DB) []models.Notification {
	notifs := []models.Notification{
		{NotificationType: models.NotificationDriverRequest, RequestID: 1,
			Title: "Nova Solicitação de Motorista DRV-20250001", Message: "Aguardando análise."},
		{NotificationType: models.NotificationVehicleRequest, RequestID: 1,
			Title: "Nova Solicitação de Veículo VHC-20250001", Message: "Aguardando análise."},
	}
	for i := range notifs {
		db.Create(&notifs[i])
	}
	return notifs
}

func TestNotificationUnreadCount(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("ctrl_notif_count")
	staff := seedStaff(db)
	router := setupNotificationRouter(db, staff)
	seedNotifications(db)

	w := getJSON(router, "/staff/notifications/unread-count")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["unread_count"])
}

func TestNotificationMarkReadIsIdempotent(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("ctrl_notif_mark")
	staff := seedStaff(db)
	router := setupNotificationRouter(db, staff)
	notifs := seedNotifications(db)

	url := fmt.Sprintf("/staff/notifications/%d/mark-read", notifs[0].ID)
	w := patch(router, url)
	assert.Equal(t, http.StatusOK, w.Code)

	var first models.Notification
	db.First(&first, notifs[0].ID)
	assert.True(t, first.IsRead)
	assert.Equal(t, staff.ID, *first.ReadByID)
	firstReadAt := *first.ReadAt

	// Marking again changes nothing
	w = patch(router, url)
	assert.Equal(t, http.StatusOK, w.Code)

	var again models.Notification
	db.First(&again, notifs[0].ID)
	assert.Equal(t, firstReadAt.Unix(), again.ReadAt.Unix())
}

func TestNotificationMarkAllRead(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("ctrl_notif_mark_all")
	staff := seedStaff(db)
	router := setupNotificationRouter(db, staff)
	seedNotifications(db)

	w := postJSON(router, "/staff/notifications/mark-all-read", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["updated_count"])

	var unread int64
	db.Model(&models.Notification{}).Where("is_read = ?", false).Count(&unread)
	assert.Equal(t, int64(0), unread)

	// Second pass finds nothing left to update
	w = postJSON(router, "/staff/notifications/mark-all-read", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	err = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["updated_count"])
}

func TestNotificationMarkReadNotFound(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("ctrl_notif_404")
	staff := seedStaff(db)
	router := setupNotificationRouter(db, staff)

	w := patch(router, "/staff/notifications/9999/mark-read")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/frotaweb/fleet-app/models"
	"github.com/frotaweb/fleet-app/realtime"
	"github.com/frotaweb/fleet-app/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats -> triage counters for the staff dashboard
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	var stats struct {
		DriverRequests struct {
			Pending  int64 `json:"pending"`
			Approved int64 `json:"approved"`
			Rejected int64 `json:"rejected"`
			Today    int64 `json:"today"`
		} `json:"driver_requests"`
		VehicleRequests struct {
			Pending  int64 `json:"pending"`
			Approved int64 `json:"approved"`
			Rejected int64 `json:"rejected"`
			Today    int64 `json:"today"`
		} `json:"vehicle_requests"`
		TotalConductors     int64 `json:"total_conductors"`
		ActiveConductors    int64 `json:"active_conductors"`
		TotalVehicles       int64 `json:"total_vehicles"`
		ActiveVehicles      int64 `json:"active_vehicles"`
		UnreadNotifications int64 `json:"unread_notifications"`
		ConnectedClients    int   `json:"connected_clients"`
	}

	todayStart := time.Now().Truncate(24 * time.Hour)

	drivers := ac.DB.Model(&models.DriverRequest{})
	drivers.Session(&gorm.Session{}).Where("status = ?", models.RequestStatusPending).Count(&stats.DriverRequests.Pending)
	drivers.Session(&gorm.Session{}).Where("status = ?", models.RequestStatusApproved).Count(&stats.DriverRequests.Approved)
	drivers.Session(&gorm.Session{}).Where("status = ?", models.RequestStatusRejected).Count(&stats.DriverRequests.Rejected)
	drivers.Session(&gorm.Session{}).Where("created_at >= ?", todayStart).Count(&stats.DriverRequests.Today)

	vehicles := ac.DB.Model(&models.VehicleRequest{})
	vehicles.Session(&gorm.Session{}).Where("status = ?", models.RequestStatusPending).Count(&stats.VehicleRequests.Pending)
	vehicles.Session(&gorm.Session{}).Where("status = ?", models.RequestStatusApproved).Count(&stats.VehicleRequests.Approved)
	vehicles.Session(&gorm.Session{}).Where("status = ?", models.RequestStatusRejected).Count(&stats.VehicleRequests.Rejected)
	vehicles.Session(&gorm.Session{}).Where("created_at >= ?", todayStart).Count(&stats.VehicleRequests.Today)

	ac.DB.Model(&models.Conductor{}).Count(&stats.TotalConductors)
	ac.DB.Model(&models.Conductor{}).Where("is_active = ?", true).Count(&stats.ActiveConductors)
	ac.DB.Model(&models.Vehicle{}).Count(&stats.TotalVehicles)
	ac.DB.Model(&models.Vehicle{}).Where("is_active = ?", true).Count(&stats.ActiveVehicles)
	ac.DB.Model(&models.Notification{}).Where("is_read = ?", false).Count(&stats.UnreadNotifications)

	stats.ConnectedClients = realtime.ClientCount()

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}

package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/frotaweb/fleet-app/models"
	"github.com/frotaweb/fleet-app/realtime"
	"github.com/frotaweb/fleet-app/utils"
)

// NotificationService creates the persisted notification row and the
// live broadcast when a request enters review. It is called explicitly
// from the submission flow, never as a storage hook, so ordering and
// failure handling stay visible. Every error here is logged and
// swallowed: notification trouble must not fail a submission.
type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// NotifyNewDriverRequest records and broadcasts a new driver request.
func (ns *NotificationService) NotifyNewDriverRequest(req *models.DriverRequest) {
	title := fmt.Sprintf("Nova Solicitação de Motorista %s", req.Protocol)
	message := fmt.Sprintf("Solicitação de %s (CPF: %s) aguardando análise.", req.Name, req.CPF)

	notif := models.Notification{
		NotificationType: models.NotificationDriverRequest,
		RequestID:        req.ID,
		Title:            title,
		Message:          message,
	}
	if err := ns.DB.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("Error persisting driver request notification: %v", err)
	}

	realtime.BroadcastNewRequest("driver", req.ID, req.Protocol, title, message, map[string]interface{}{
		"id":               req.ID,
		"protocol":         req.Protocol,
		"name":             req.Name,
		"cpf":              req.CPF,
		"email":            req.Email,
		"phone":            req.Phone,
		"license_number":   req.LicenseNumber,
		"license_category": req.LicenseCategory,
		"status":           req.Status,
		"created_at":       req.CreatedAt,
	})
}

// NotifyNewVehicleRequest records and broadcasts a new vehicle request.
func (ns *NotificationService) NotifyNewVehicleRequest(req *models.VehicleRequest) {
	title := fmt.Sprintf("Nova Solicitação de Veículo %s", req.Protocol)
	message := fmt.Sprintf("Solicitação de %s %s (Placa: %s) aguardando análise.", req.Brand, req.Model, req.Plate)

	notif := models.Notification{
		NotificationType: models.NotificationVehicleRequest,
		RequestID:        req.ID,
		Title:            title,
		Message:          message,
	}
	if err := ns.DB.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("Error persisting vehicle request notification: %v", err)
	}

	realtime.BroadcastNewRequest("vehicle", req.ID, req.Protocol, title, message, map[string]interface{}{
		"id":         req.ID,
		"protocol":   req.Protocol,
		"plate":      req.Plate,
		"brand":      req.Brand,
		"model":      req.Model,
		"year":       req.Year,
		"color":      req.Color,
		"fuel_type":  req.FuelType,
		"status":     req.Status,
		"created_at": req.CreatedAt,
	})
}

package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/frotaweb/fleet-app/models"
	"github.com/frotaweb/fleet-app/realtime"
	"github.com/frotaweb/fleet-app/utils"
)

// VehicleRequestService owns the vehicle-request lifecycle, mirroring
// the driver flow with plate as the natural key.
type VehicleRequestService struct {
	DB            *gorm.DB
	Notifications *NotificationService
}

func NewVehicleRequestService(db *gorm.DB) *VehicleRequestService {
	return &VehicleRequestService{
		DB:            db,
		Notifications: NewNotificationService(db),
	}
}

// VehicleSubmission is the public payload for a new vehicle request.
type VehicleSubmission struct {
	Plate    string
	Brand    string
	Model    string
	Year     int
	Color    string
	FuelType string
	Category string
	Message  string
}

func (s *VehicleRequestService) validateSubmission(sub *VehicleSubmission) utils.FieldErrors {
	fe := utils.FieldErrors{}

	sub.Plate = utils.NormalizePlate(sub.Plate)
	if !utils.ValidatePlate(sub.Plate) {
		fe.Add("plate", "Formato de placa inválido. Use o formato brasileiro (AAA1234) ou Mercosul (AAA1A23).")
	}

	if strings.TrimSpace(sub.Brand) == "" {
		fe.Add("brand", "A marca é obrigatória.")
	}
	if strings.TrimSpace(sub.Model) == "" {
		fe.Add("model", "O modelo é obrigatório.")
	}
	if strings.TrimSpace(sub.Color) == "" {
		fe.Add("color", "A cor é obrigatória.")
	}

	currentYear := time.Now().Year()
	if sub.Year < 1900 || sub.Year > currentYear+1 {
		fe.Add("year", fmt.Sprintf("O ano deve estar entre 1900 e %d.", currentYear+1))
	}

	if !contains(models.VehicleFuelTypes, sub.FuelType) {
		fe.Add("fuel_type", "Tipo de combustível inválido.")
	}

	if sub.Category == "" {
		sub.Category = "Van"
	}
	if !contains(models.VehicleCategories, sub.Category) {
		fe.Add("category", "Categoria de veículo inválida.")
	}

	return fe
}

// Submit validates and persists a new pending request, assigns its
// protocol and fans out the staff notification.
func (s *VehicleRequestService) Submit(sub VehicleSubmission) (*models.VehicleRequest, error) {
	if fe := s.validateSubmission(&sub); len(fe) > 0 {
		return nil, fe
	}

	var pending int64
	if err := s.DB.Model(&models.VehicleRequest{}).
		Where("plate = ? AND status = ?", sub.Plate, models.RequestStatusPending).
		Count(&pending).Error; err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, utils.ErrDuplicatePendingRequest
	}

	req := &models.VehicleRequest{
		Plate:    sub.Plate,
		Brand:    strings.TrimSpace(sub.Brand),
		Model:    strings.TrimSpace(sub.Model),
		Year:     sub.Year,
		Color:    strings.TrimSpace(sub.Color),
		FuelType: sub.FuelType,
		Category: sub.Category,
		Message:  sub.Message,
		Status:   models.RequestStatusPending,
	}

	err := createWithProtocol(s.DB, req, models.VehicleProtocolPrefix, func(protocol string) interface{} {
		req.Protocol = protocol
		return req
	})
	if err != nil {
		if isPendingUniqueViolation(err) {
			return nil, utils.ErrDuplicatePendingRequest
		}
		return nil, err
	}

	s.Notifications.NotifyNewVehicleRequest(req)

	return req, nil
}

// Approve promotes a pending request into a Vehicle atomically.
func (s *VehicleRequestService) Approve(requestID uint, reviewer *models.User) (*models.VehicleRequest, error) {
	var req models.VehicleRequest
	if err := s.DB.First(&req, requestID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.ErrRequestNotFound
		}
		return nil, err
	}

	if req.Status != models.RequestStatusPending {
		return nil, utils.ErrInvalidStateTransition
	}

	var existing int64
	if err := s.DB.Model(&models.Vehicle{}).Where("plate = ?", req.Plate).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, utils.ErrDuplicateEntity
	}

	now := time.Now()
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		vehicle := models.Vehicle{
			Plate:       req.Plate,
			Brand:       req.Brand,
			Model:       req.Model,
			Year:        req.Year,
			Color:       req.Color,
			FuelType:    req.FuelType,
			Category:    req.Category,
			IsActive:    true,
			CreatedByID: &reviewer.ID,
			// Placeholders to be corrected by staff afterwards
			ChassisNumber: "TEMP_" + req.Plate,
			Renavam:       "TEMP_" + req.Plate,
		}
		if err := tx.Create(&vehicle).Error; err != nil {
			return err
		}

		res := tx.Model(&models.VehicleRequest{}).
			Where("id = ? AND status = ?", req.ID, models.RequestStatusPending).
			Updates(map[string]interface{}{
				"status":         models.RequestStatusApproved,
				"reviewed_at":    now,
				"reviewed_by_id": reviewer.ID,
				"vehicle_id":     vehicle.ID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrInvalidStateTransition
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Vehicle request approved: ID %d, protocol %s, reviewer %s", req.ID, req.Protocol, reviewer.Email)

	realtime.BroadcastRequestReviewed("vehicle", req.ID, req.Protocol, models.RequestStatusApproved)

	return s.reload(req.ID)
}

// Reject closes a pending request with a mandatory reason.
func (s *VehicleRequestService) Reject(requestID uint, reviewer *models.User, reason string) (*models.VehicleRequest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, utils.FieldErrors{
			"rejection_reason": "O motivo da reprovação é obrigatório.",
		}
	}

	var req models.VehicleRequest
	if err := s.DB.First(&req, requestID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.ErrRequestNotFound
		}
		return nil, err
	}

	if req.Status != models.RequestStatusPending {
		return nil, utils.ErrInvalidStateTransition
	}

	res := s.DB.Model(&models.VehicleRequest{}).
		Where("id = ? AND status = ?", req.ID, models.RequestStatusPending).
		Updates(map[string]interface{}{
			"status":           models.RequestStatusRejected,
			"rejection_reason": reason,
			"reviewed_at":      time.Now(),
			"reviewed_by_id":   reviewer.ID,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, utils.ErrInvalidStateTransition
	}

	utils.InfoLogger.Printf("Vehicle request rejected: ID %d, protocol %s, reviewer %s", req.ID, req.Protocol, reviewer.Email)

	realtime.BroadcastRequestReviewed("vehicle", req.ID, req.Protocol, models.RequestStatusRejected)

	return s.reload(req.ID)
}

// MarkViewed stamps viewed_at the first time staff opens the request.
func (s *VehicleRequestService) MarkViewed(req *models.VehicleRequest) {
	if req.ViewedAt != nil {
		return
	}
	now := time.Now()
	if err := s.DB.Model(req).Update("viewed_at", now).Error; err != nil {
		utils.ErrorLogger.Printf("Error marking vehicle request %d as viewed: %v", req.ID, err)
		return
	}
	req.ViewedAt = &now
}

func (s *VehicleRequestService) reload(id uint) (*models.VehicleRequest, error) {
	var req models.VehicleRequest
	if err := s.DB.Preload("ReviewedBy").Preload("Vehicle").First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

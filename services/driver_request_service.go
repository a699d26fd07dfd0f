package services

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/frotaweb/fleet-app/models"
	"github.com/frotaweb/fleet-app/realtime"
	"github.com/frotaweb/fleet-app/utils"
)

// DriverRequestService owns the driver-request lifecycle: public
// submission, staff approval and rejection.
type DriverRequestService struct {
	DB            *gorm.DB
	Notifications *NotificationService
}

func NewDriverRequestService(db *gorm.DB) *DriverRequestService {
	return &DriverRequestService{
		DB:            db,
		Notifications: NewNotificationService(db),
	}
}

// DriverSubmission is the public payload for a new driver request.
// Dates arrive already parsed by the controller.
type DriverSubmission struct {
	Name            string
	CPF             string
	BirthDate       *time.Time
	Email           string
	Phone           string
	Whatsapp        string
	LicenseNumber   string
	LicenseCategory string
	LicenseExpiry   *time.Time
	Message         string
}

func (s *DriverRequestService) validateSubmission(sub *DriverSubmission) utils.FieldErrors {
	fe := utils.FieldErrors{}

	if strings.TrimSpace(sub.Name) == "" {
		fe.Add("name", "O nome completo é obrigatório.")
	}
	if strings.TrimSpace(sub.Email) == "" {
		fe.Add("email", "O e-mail é obrigatório.")
	}
	if strings.TrimSpace(sub.Phone) == "" {
		fe.Add("phone", "O telefone é obrigatório.")
	}
	if strings.TrimSpace(sub.LicenseNumber) == "" {
		fe.Add("license_number", "O número da CNH é obrigatório.")
	}

	sub.CPF = utils.NormalizeCPF(sub.CPF)
	if !utils.ValidateCPF(sub.CPF) {
		fe.Add("cpf", "O CPF informado não é válido.")
	}

	if !contains(models.DriverLicenseCategories, sub.LicenseCategory) {
		fe.Add("license_category", "Categoria de CNH inválida.")
	}

	now := time.Now()
	if sub.BirthDate != nil {
		if sub.BirthDate.After(now) {
			fe.Add("birth_date", "A data de nascimento não pode estar no futuro.")
		} else if utils.AgeAt(*sub.BirthDate, now) < 18 {
			fe.Add("birth_date", "O condutor deve ter pelo menos 18 anos.")
		}
	}
	if sub.LicenseExpiry != nil && sub.LicenseExpiry.Before(now.Truncate(24*time.Hour)) {
		fe.Add("license_expiry_date", "A data de validade da CNH não pode estar no passado.")
	}

	return fe
}

// Submit validates and persists a new pending request, assigns its
// protocol and fans out the staff notification. The notification step
// is best effort and never fails the submission.
func (s *DriverRequestService) Submit(sub DriverSubmission) (*models.DriverRequest, error) {
	if fe := s.validateSubmission(&sub); len(fe) > 0 {
		return nil, fe
	}

	// Pre-check for an existing pending request. The conditional unique
	// index is what actually holds under concurrent submissions; this
	// check only gives the common case a friendlier path.
	var pending int64
	if err := s.DB.Model(&models.DriverRequest{}).
		Where("cpf = ? AND status = ?", sub.CPF, models.RequestStatusPending).
		Count(&pending).Error; err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, utils.ErrDuplicatePendingRequest
	}

	req := &models.DriverRequest{
		Name:            strings.TrimSpace(sub.Name),
		CPF:             sub.CPF,
		BirthDate:       sub.BirthDate,
		Email:           strings.ToLower(strings.TrimSpace(sub.Email)),
		Phone:           strings.TrimSpace(sub.Phone),
		Whatsapp:        strings.TrimSpace(sub.Whatsapp),
		LicenseNumber:   strings.TrimSpace(sub.LicenseNumber),
		LicenseCategory: sub.LicenseCategory,
		LicenseExpiry:   sub.LicenseExpiry,
		Message:         sub.Message,
		Status:          models.RequestStatusPending,
	}

	err := createWithProtocol(s.DB, req, models.DriverProtocolPrefix, func(protocol string) interface{} {
		req.Protocol = protocol
		return req
	})
	if err != nil {
		if isPendingUniqueViolation(err) {
			// Lost the race against a concurrent submission with the same CPF
			return nil, utils.ErrDuplicatePendingRequest
		}
		return nil, err
	}

	s.Notifications.NotifyNewDriverRequest(req)

	return req, nil
}

// Approve promotes a pending request into a Conductor. Entity creation
// and the status flip are one transaction; failure leaves the request
// pending with no conductor behind.
func (s *DriverRequestService) Approve(requestID uint, reviewer *models.User) (*models.DriverRequest, error) {
	var req models.DriverRequest
	if err := s.DB.First(&req, requestID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.ErrRequestNotFound
		}
		return nil, err
	}

	if req.Status != models.RequestStatusPending {
		return nil, utils.ErrInvalidStateTransition
	}

	// One person, one conductor record
	var existing int64
	if err := s.DB.Model(&models.Conductor{}).Where("cpf = ?", req.CPF).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, utils.ErrDuplicateEntity
	}

	now := time.Now()
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		conductor := models.Conductor{
			Name:            req.Name,
			CPF:             req.CPF,
			Email:           req.Email,
			Phone:           req.Phone,
			LicenseNumber:   req.LicenseNumber,
			LicenseCategory: req.LicenseCategory,
			IsActive:        true,
			CreatedByID:     &reviewer.ID,
			// Placeholders when the request lacks the field; must be
			// corrected by staff afterwards
			BirthDate:     valueOrToday(req.BirthDate, now),
			LicenseExpiry: valueOrToday(req.LicenseExpiry, now),
		}
		if err := tx.Create(&conductor).Error; err != nil {
			return err
		}

		// Conditional update guards against a concurrent review; zero
		// rows means someone else already resolved this request.
		res := tx.Model(&models.DriverRequest{}).
			Where("id = ? AND status = ?", req.ID, models.RequestStatusPending).
			Updates(map[string]interface{}{
				"status":         models.RequestStatusApproved,
				"reviewed_at":    now,
				"reviewed_by_id": reviewer.ID,
				"conductor_id":   conductor.ID,
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

	utils.InfoLogger.Printf("Driver request approved: ID %d, protocol %s, reviewer %s", req.ID, req.Protocol, reviewer.Email)

	realtime.BroadcastRequestReviewed("driver", req.ID, req.Protocol, models.RequestStatusApproved)

	return s.reload(req.ID)
}

// Reject closes a pending request with a mandatory reason.
func (s *DriverRequestService) Reject(requestID uint, reviewer *models.User, reason string) (*models.DriverRequest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, utils.FieldErrors{
			"rejection_reason": "O motivo da reprovação é obrigatório.",
		}
	}

	var req models.DriverRequest
	if err := s.DB.First(&req, requestID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.ErrRequestNotFound
		}
		return nil, err
	}

	if req.Status != models.RequestStatusPending {
		return nil, utils.ErrInvalidStateTransition
	}

	res := s.DB.Model(&models.DriverRequest{}).
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

	utils.InfoLogger.Printf("Driver request rejected: ID %d, protocol %s, reviewer %s", req.ID, req.Protocol, reviewer.Email)

	realtime.BroadcastRequestReviewed("driver", req.ID, req.Protocol, models.RequestStatusRejected)

	return s.reload(req.ID)
}

// MarkViewed stamps viewed_at the first time staff opens the request.
func (s *DriverRequestService) MarkViewed(req *models.DriverRequest) {
	if req.ViewedAt != nil {
		return
	}
	now := time.Now()
	if err := s.DB.Model(req).Update("viewed_at", now).Error; err != nil {
		utils.ErrorLogger.Printf("Error marking driver request %d as viewed: %v", req.ID, err)
		return
	}
	req.ViewedAt = &now
}

func (s *DriverRequestService) reload(id uint) (*models.DriverRequest, error) {
	var req models.DriverRequest
	if err := s.DB.Preload("ReviewedBy").Preload("Conductor").First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

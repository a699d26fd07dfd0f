package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/frotaweb/fleet-app/models"
	"github.com/frotaweb/fleet-app/services"
	"github.com/frotaweb/fleet-app/utils"
)

type DriverRequestController struct {
	DB      *gorm.DB
	Service *services.DriverRequestService
}

func NewDriverRequestController(db *gorm.DB) *DriverRequestController {
	return &DriverRequestController{
		DB:      db,
		Service: services.NewDriverRequestService(db),
	}
}

// Create -> public submission endpoint
func (rc *DriverRequestController) Create(c *gin.Context) {
	type reqBody struct {
		Name            string `json:"name" binding:"required"`
		CPF             string `json:"cpf" binding:"required"`
		BirthDate       string `json:"birth_date"`
		Email           string `json:"email" binding:"required,email"`
		Phone           string `json:"phone" binding:"required"`
		Whatsapp        string `json:"whatsapp"`
		LicenseNumber   string `json:"license_number" binding:"required"`
		LicenseCategory string `json:"license_category" binding:"required"`
		LicenseExpiry   string `json:"license_expiry_date"`
		Message         string `json:"message"`
	}

	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	fe := utils.FieldErrors{}
	birthDate, err := parseDate(body.BirthDate)
	if err != nil {
		fe.Add("birth_date", "Data de nascimento inválida, use o formato AAAA-MM-DD.")
	}
	licenseExpiry, err := parseDate(body.LicenseExpiry)
	if err != nil {
		fe.Add("license_expiry_date", "Data de validade inválida, use o formato AAAA-MM-DD.")
	}
	if len(fe) > 0 {
		utils.RespondFieldErrors(c, http.StatusBadRequest, fe)
		return
	}

	req, err := rc.Service.Submit(services.DriverSubmission{
		Name:            body.Name,
		CPF:             body.CPF,
		BirthDate:       birthDate,
		Email:           body.Email,
		Phone:           body.Phone,
		Whatsapp:        body.Whatsapp,
		LicenseNumber:   body.LicenseNumber,
		LicenseCategory: body.LicenseCategory,
		LicenseExpiry:   licenseExpiry,
		Message:         body.Message,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Driver request created: ID %d, protocol %s", req.ID, req.Protocol)

	utils.RespondJSON(c, http.StatusCreated, "Solicitação enviada com sucesso! Aguarde a análise.", gin.H{
		"protocol": req.Protocol,
		"status":   req.Status,
	})
}

// List -> staff triage listing with filters and pagination
func (rc *DriverRequestController) List(c *gin.Context) {
	query, err := requestListFilters(c, rc.DB.Model(&models.DriverRequest{}))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR cpf LIKE ? OR email LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	page, pageSize := pagination(c)
	var requests []models.DriverRequest
	if err := query.
		Preload("ReviewedBy").Preload("Conductor").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&requests).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of driver requests", gin.H{
		"results":   requests,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Get -> staff detail view, stamps viewed_at on first open
func (rc *DriverRequestController) Get(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req models.DriverRequest
	if err := rc.DB.Preload("ReviewedBy").Preload("Conductor").First(&req, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrRequestNotFound)
		return
	}

	rc.Service.MarkViewed(&req)

	utils.RespondJSON(c, http.StatusOK, "Driver request detail", req)
}

// Approve -> creates the conductor and closes the request
func (rc *DriverRequestController) Approve(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	reviewer, ok := currentReviewer(c, rc.DB)
	if !ok {
		return
	}

	req, err := rc.Service.Approve(uint(id), reviewer)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Solicitação aprovada com sucesso! Condutor criado.", req)
}

// Reject -> closes the request with a mandatory reason
func (rc *DriverRequestController) Reject(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	reviewer, ok := currentReviewer(c, rc.DB)
	if !ok {
		return
	}

	var body struct {
		RejectionReason string `json:"rejection_reason"`
	}
	if err := c.ShouldBindJSON(&body); err != nil && err.Error() != "EOF" {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	req, err := rc.Service.Reject(uint(id), reviewer, body.RejectionReason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Solicitação reprovada com sucesso.", req)
}

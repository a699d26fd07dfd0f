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

type VehicleRequestController struct {
	DB      *gorm.DB
	Service *services.VehicleRequestService
}

func NewVehicleRequestController(db *gorm.DB) *VehicleRequestController {
	return &VehicleRequestController{
		DB:      db,
		Service: services.NewVehicleRequestService(db),
	}
}

// Create -> public submission endpoint
func (rc *VehicleRequestController) Create(c *gin.Context) {
	type reqBody struct {
		Plate    string `json:"plate" binding:"required"`
		Brand    string `json:"brand" binding:"required"`
		Model    string `json:"model" binding:"required"`
		Year     int    `json:"year" binding:"required"`
		Color    string `json:"color" binding:"required"`
		FuelType string `json:"fuel_type" binding:"required"`
		Category string `json:"category"`
		Message  string `json:"message"`
	}

	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	req, err := rc.Service.Submit(services.VehicleSubmission{
		Plate:    body.Plate,
		Brand:    body.Brand,
		Model:    body.Model,
		Year:     body.Year,
		Color:    body.Color,
		FuelType: body.FuelType,
		Category: body.Category,
		Message:  body.Message,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Vehicle request created: ID %d, protocol %s", req.ID, req.Protocol)

	utils.RespondJSON(c, http.StatusCreated, "Solicitação enviada com sucesso! Aguarde a análise.", gin.H{
		"protocol": req.Protocol,
		"status":   req.Status,
	})
}

// List -> staff triage listing with filters and pagination
func (rc *VehicleRequestController) List(c *gin.Context) {
	query, err := requestListFilters(c, rc.DB.Model(&models.VehicleRequest{}))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("plate LIKE ? OR brand LIKE ? OR model LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	page, pageSize := pagination(c)
	var requests []models.VehicleRequest
	if err := query.
		Preload("ReviewedBy").Preload("Vehicle").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&requests).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of vehicle requests", gin.H{
		"results":   requests,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Get -> staff detail view, stamps viewed_at on first open
func (rc *VehicleRequestController) Get(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req models.VehicleRequest
	if err := rc.DB.Preload("ReviewedBy").Preload("Vehicle").First(&req, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrRequestNotFound)
		return
	}

	rc.Service.MarkViewed(&req)

	utils.RespondJSON(c, http.StatusOK, "Vehicle request detail", req)
}

// Approve -> creates the vehicle and closes the request
func (rc *VehicleRequestController) Approve(c *gin.Context) {
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

	utils.RespondJSON(c, http.StatusOK, "Solicitação aprovada com sucesso! Veículo criado.", req)
}

// Reject -> closes the request with a mandatory reason
func (rc *VehicleRequestController) Reject(c *gin.Context) {
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

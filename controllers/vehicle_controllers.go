package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/frotaweb/fleet-app/models"
	"github.com/frotaweb/fleet-app/utils"
)

type VehicleController struct {
	DB *gorm.DB
}

func NewVehicleController(db *gorm.DB) *VehicleController {
	return &VehicleController{DB: db}
}

// GetAllVehicles -> staff listing with optional search
func (vc *VehicleController) GetAllVehicles(c *gin.Context) {
	query := vc.DB.Model(&models.Vehicle{})

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("plate LIKE ? OR brand LIKE ? OR model LIKE ?", like, like, like)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if active := c.Query("is_active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	page, pageSize := pagination(c)
	var vehicles []models.Vehicle
	if err := query.Order("plate").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&vehicles).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of vehicles", gin.H{
		"results":   vehicles,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetVehicleByID
func (vc *VehicleController) GetVehicleByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var vehicle models.Vehicle
	if err := vc.DB.First(&vehicle, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Vehicle detail", vehicle)
}

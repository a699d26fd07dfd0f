package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/frotaweb/fleet-app/models"
	"github.com/frotaweb/fleet-app/utils"
)

type ConductorController struct {
	DB *gorm.DB
}

func NewConductorController(db *gorm.DB) *ConductorController {
	return &ConductorController{DB: db}
}

// GetAllConductors -> staff listing with optional search
func (cc *ConductorController) GetAllConductors(c *gin.Context) {
	query := cc.DB.Model(&models.Conductor{})

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR cpf LIKE ?", like, like)
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
	var conductors []models.Conductor
	if err := query.Order("name").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&conductors).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of conductors", gin.H{
		"results":   conductors,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetConductorByID
func (cc *ConductorController) GetConductorByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var conductor models.Conductor
	if err := cc.DB.First(&conductor, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Conductor detail", conductor)
}

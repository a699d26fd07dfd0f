package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frotaweb/fleet-app/config"
	"github.com/frotaweb/fleet-app/utils"
)

type SiteController struct{}

func NewSiteController() *SiteController {
	return &SiteController{}
}

// GetConfiguration -> public site settings
func (sc *SiteController) GetConfiguration(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Site configuration", config.GetSiteConfiguration())
}

// UpdateConfiguration -> admin replaces the in-process configuration
func (sc *SiteController) UpdateConfiguration(c *gin.Context) {
	var cfg config.SiteConfiguration
	if err := c.ShouldBindJSON(&cfg); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	config.UpdateSiteConfiguration(cfg)
	utils.InfoLogger.Printf("Site configuration updated")

	utils.RespondJSON(c, http.StatusOK, "Site configuration updated", cfg)
}

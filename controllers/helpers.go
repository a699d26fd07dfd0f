package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/frotaweb/fleet-app/models"
	"github.com/frotaweb/fleet-app/utils"
)

var errGeneric = errors.New("Erro ao processar solicitação. Tente novamente mais tarde.")

// respondServiceError translates core errors into structured responses.
// Internals are logged, never returned to the caller.
func respondServiceError(c *gin.Context, err error) {
	if fe, ok := utils.AsFieldErrors(err); ok {
		utils.RespondFieldErrors(c, http.StatusBadRequest, fe)
		return
	}

	switch {
	case errors.Is(err, utils.ErrDuplicatePendingRequest):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, utils.ErrInvalidStateTransition):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, utils.ErrDuplicateEntity):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, utils.ErrRequestNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, utils.ErrProtocolExhausted):
		utils.RespondError(c, http.StatusServiceUnavailable, errGeneric)
		utils.ErrorLogger.Printf("Protocol space exhausted: %v", err)
	default:
		utils.ErrorLogger.Printf("Unhandled service error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errGeneric)
	}
}

// currentReviewer loads the authenticated staff user from the context.
func currentReviewer(c *gin.Context, db *gorm.DB) (*models.User, bool) {
	userIDInterface, exists := c.Get("user_id")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return nil, false
	}
	userID, ok := userIDInterface.(uint)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid user id in context"))
		return nil, false
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("reviewer not found"))
		return nil, false
	}
	return &user, true
}

// parseDate accepts the public YYYY-MM-DD format.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// pagination reads page/page_size query params with sane bounds.
func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// requestListFilters applies the staff triage filters shared by both
// request listings: status, creation window, pagination.
func requestListFilters(c *gin.Context, query *gorm.DB) (*gorm.DB, error) {
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	from, err := parseDate(c.Query("created_from"))
	if err != nil {
		return nil, errors.New("created_from inválido, use o formato AAAA-MM-DD")
	}
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}

	to, err := parseDate(c.Query("created_to"))
	if err != nil {
		return nil, errors.New("created_to inválido, use o formato AAAA-MM-DD")
	}
	if to != nil {
		query = query.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	return query, nil
}

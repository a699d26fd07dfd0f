package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/frotaweb/fleet-app/models"
	"github.com/frotaweb/fleet-app/utils"
)

type RequestStatusController struct {
	DB *gorm.DB
}

func NewRequestStatusController(db *gorm.DB) *RequestStatusController {
	return &RequestStatusController{DB: db}
}

// publicStatus is the only view the unauthenticated lookup returns.
// Contact details are withheld on purpose.
type publicStatus struct {
	Protocol        string     `json:"protocol"`
	RequestType     string     `json:"request_type"`
	Status          string     `json:"status"`
	NaturalKey      string     `json:"natural_key"`
	CreatedAt       time.Time  `json:"created_at"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
}

// CheckByProtocol -> public status lookup. The response for an unknown
// protocol is a generic 404 regardless of why it is unknown.
func (sc *RequestStatusController) CheckByProtocol(c *gin.Context) {
	protocol := strings.ToUpper(strings.TrimSpace(c.Query("protocol")))
	if protocol == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("informe o protocolo da solicitação"))
		return
	}

	if strings.HasPrefix(protocol, models.DriverProtocolPrefix) {
		var req models.DriverRequest
		if err := sc.DB.Where("protocol = ?", protocol).First(&req).Error; err == nil {
			utils.RespondJSON(c, http.StatusOK, "Request status", publicStatus{
				Protocol:        req.Protocol,
				RequestType:     "driver",
				Status:          req.Status,
				NaturalKey:      req.CPF,
				CreatedAt:       req.CreatedAt,
				ReviewedAt:      req.ReviewedAt,
				RejectionReason: req.RejectionReason,
			})
			return
		}
	}

	if strings.HasPrefix(protocol, models.VehicleProtocolPrefix) {
		var req models.VehicleRequest
		if err := sc.DB.Where("protocol = ?", protocol).First(&req).Error; err == nil {
			utils.RespondJSON(c, http.StatusOK, "Request status", publicStatus{
				Protocol:        req.Protocol,
				RequestType:     "vehicle",
				Status:          req.Status,
				NaturalKey:      req.Plate,
				CreatedAt:       req.CreatedAt,
				ReviewedAt:      req.ReviewedAt,
				RejectionReason: req.RejectionReason,
			})
			return
		}
	}

	utils.RespondError(c, http.StatusNotFound, utils.ErrRequestNotFound)
}

package Controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/frotaweb/fleet-app/controllers"
	"github.com/frotaweb/fleet-app/models"
	"github.com/frotaweb/fleet-app/utils"
)

func setupStatusRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	statusCtrl := controllers.NewRequestStatusController(db)
	router.GET("/requests/status", statusCtrl.CheckByProtocol)

	return router
}

func TestCheckStatusByProtocol(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("ctrl_status_lookup")
	router := setupStatusRouter(db)

	now := time.Now()
	reason := "Documentação ilegível"
	db.Create(&models.DriverRequest{
		Protocol: "DRV-20250042", Name: "João", CPF: "52998224725",
		Email: "joao@example.com", Phone: "1", LicenseNumber: "1", LicenseCategory: "B",
		Status: models.RequestStatusRejected, ReviewedAt: &now, RejectionReason: reason,
	})
	db.Create(&models.VehicleRequest{
		Protocol: "VHC-20250007", Plate: "ABC1234", Brand: "VW", Model: "Kombi",
		Year: 2018, Color: "Branca", FuelType: "flex", Category: "Van",
		Status: models.RequestStatusPending,
	})

	// Driver protocol, case-insensitive input
	w := getJSON(router, "/requests/status?protocol=drv-20250042")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "DRV-20250042", data["protocol"])
	assert.Equal(t, "driver", data["request_type"])
	assert.Equal(t, "rejected", data["status"])
	assert.Equal(t, reason, data["rejection_reason"])
	// Contact data never appears in the public view
	assert.NotContains(t, data, "email")
	assert.NotContains(t, data, "phone")

	// Vehicle protocol
	w = getJSON(router, "/requests/status?protocol=VHC-20250007")
	assert.Equal(t, http.StatusOK, w.Code)
	err = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, "vehicle", data["request_type"])
	assert.Equal(t, "pending", data["status"])
	assert.Nil(t, data["reviewed_at"])
}

func TestCheckStatusUnknownProtocol(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("ctrl_status_unknown")
	router := setupStatusRouter(db)

	// Unknown and malformed protocols get the same generic 404
	for _, protocol := range []string{"DRV-20259999", "XYZ-123", "DRV"} {
		w := getJSON(router, "/requests/status?protocol="+protocol)
		assert.Equal(t, http.StatusNotFound, w.Code, "protocol %s", protocol)
	}
}

func TestCheckStatusMissingProtocol(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("ctrl_status_missing")
	router := setupStatusRouter(db)

	w := getJSON(router, "/requests/status")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/frotaweb/fleet-app/controllers"
	"github.com/frotaweb/fleet-app/database"
	"github.com/frotaweb/fleet-app/models"
	"github.com/frotaweb/fleet-app/utils"
)

// setupTestDB opens a named in-memory SQLite database so every test
// file gets its own isolated schema and protocol sequence.
func setupTestDB(name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Conductor{},
		&models.Vehicle{},
		&models.DriverRequest{},
		&models.VehicleRequest{},
		&models.Notification{},
	)
	if err != nil {
		panic(err)
	}

	if err := database.EnsureConstraints(db); err != nil {
		panic(err)
	}

	return db
}

// seedStaff creates the reviewer every staff endpoint acts as.
func seedStaff(db *gorm.DB) models.User {
	user := models.User{
		Name:     "Staff User",
		Email:    "staff@example.com",
		Password: "hashed",
		Role:     "staff",
	}
	db.Create(&user)
	return user
}

// asUser stands in for the auth middleware during tests.
func asUser(user models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", user.ID)
		c.Set("role", user.Role)
		c.Next()
	}
}

func setupDriverRequestRouter(db *gorm.DB, staff models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	reqCtrl := controllers.NewDriverRequestController(db)
	router.POST("/requests/drivers", reqCtrl.Create)

	authed := router.Group("/", asUser(staff))
	authed.GET("/staff/requests/drivers", reqCtrl.List)
	authed.GET("/staff/requests/drivers/:id", reqCtrl.Get)
	authed.POST("/staff/requests/drivers/:id/approve", reqCtrl.Approve)
	authed.POST("/staff/requests/drivers/:id/reject", reqCtrl.Reject)

	return router
}

func driverPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":                "João da Silva",
		"cpf":                 "529.982.247-25",
		"birth_date":          "1990-03-10",
		"email":               "joao@example.com",
		"phone":               "(11) 98888-7777",
		"license_number":      "12345678900",
		"license_category":    "D",
		"license_expiry_date": time.Now().AddDate(2, 0, 0).Format("2006-01-02"),
	}
}

func postJSON(router *gin.Engine, url string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", url, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getJSON(router *gin.Engine, url string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateDriverRequest(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("ctrl_driver_create")
	staff := seedStaff(db)
	router := setupDriverRequestRouter(db, staff)

	w := postJSON(router, "/requests/drivers", driverPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, true, resp["status"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, fmt.Sprintf("DRV-%d0001", time.Now().Year()), data["protocol"])
	assert.Equal(t, "pending", data["status"])
}

func TestCreateDriverRequestInvalidCPF(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("ctrl_driver_bad_cpf")
	staff := seedStaff(db)
	router := setupDriverRequestRouter(db, staff)

	payload := driverPayload()
	payload["cpf"] = "11111111111"

	w := postJSON(router, "/requests/drivers", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, false, resp["status"])
	fields := resp["errors"].(map[string]interface{})
	assert.Contains(t, fields, "cpf")
}

func TestCreateDriverRequestBadDateFormat(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("ctrl_driver_bad_date")
	staff := seedStaff(db)
	router := setupDriverRequestRouter(db, staff)

	payload := driverPayload()
	payload["birth_date"] = "10/03/1990"

	w := postJSON(router, "/requests/drivers", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	fields := resp["errors"].(map[string]interface{})
	assert.Contains(t, fields, "birth_date")
}

func TestCreateDriverRequestDuplicatePending(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("ctrl_driver_dup")
	staff := seedStaff(db)
	router := setupDriverRequestRouter(db, staff)

	w := postJSON(router, "/requests/drivers", driverPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/requests/drivers", driverPayload())
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, false, resp["status"])
}

func TestDriverRequestApproveFlow(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("ctrl_driver_approve")
	staff := seedStaff(db)
	router := setupDriverRequestRouter(db, staff)

	w := postJSON(router, "/requests/drivers", driverPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.DriverRequest
	assert.NoError(t, db.First(&created).Error)

	url := fmt.Sprintf("/staff/requests/drivers/%d/approve", created.ID)
	w = postJSON(router, url, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var conductor models.Conductor
	assert.NoError(t, db.Where("cpf = ?", "52998224725").First(&conductor).Error)

	// Approval is terminal; a second review attempt is refused
	w = postJSON(router, url, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDriverRequestRejectRequiresReason(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("ctrl_driver_reject")
	staff := seedStaff(db)
	router := setupDriverRequestRouter(db, staff)

	w := postJSON(router, "/requests/drivers", driverPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.DriverRequest
	assert.NoError(t, db.First(&created).Error)

	url := fmt.Sprintf("/staff/requests/drivers/%d/reject", created.ID)
	w = postJSON(router, url, map[string]string{"rejection_reason": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(router, url, map[string]string{"rejection_reason": "Documentação ilegível"})
	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.DriverRequest
	db.First(&reloaded, created.ID)
	assert.Equal(t, "rejected", reloaded.Status)
	assert.Equal(t, "Documentação ilegível", reloaded.RejectionReason)
}

func TestDriverRequestListAndDetail(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("ctrl_driver_list")
	staff := seedStaff(db)
	router := setupDriverRequestRouter(db, staff)

	w := postJSON(router, "/requests/drivers", driverPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	w = getJSON(router, "/staff/requests/drivers?status=pending&search=Silva")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])

	// Opening the detail stamps viewed_at
	var created models.DriverRequest
	db.First(&created)
	assert.Nil(t, created.ViewedAt)

	w = getJSON(router, fmt.Sprintf("/staff/requests/drivers/%d", created.ID))
	assert.Equal(t, http.StatusOK, w.Code)

	db.First(&created, created.ID)
	assert.NotNil(t, created.ViewedAt)
}

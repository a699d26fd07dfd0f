package services

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/frotaweb/fleet-app/database"
	"github.com/frotaweb/fleet-app/models"
	"github.com/frotaweb/fleet-app/utils"
)

// setupTestDB gives each test its own named in-memory database so
// protocol numbering starts from a clean year partition.
func setupTestDB(name string) *gorm.DB {
	utils.InitLogger()

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

func seedReviewer(db *gorm.DB) *models.User {
	user := models.User{
		Name:     "Staff One",
		Email:    "staff1@example.com",
		Password: "secret",
		Role:     "staff",
	}
	db.Create(&user)
	return &user
}

func validDriverSubmission() DriverSubmission {
	birth := time.Date(1990, 3, 10, 0, 0, 0, 0, time.UTC)
	expiry := time.Now().AddDate(2, 0, 0)
	return DriverSubmission{
		Name:            "João da Silva",
		CPF:             "529.982.247-25",
		BirthDate:       &birth,
		Email:           "Joao.Silva@Example.com",
		Phone:           "(11) 98888-7777",
		LicenseNumber:   "12345678900",
		LicenseCategory: "D",
		LicenseExpiry:   &expiry,
	}
}

func validVehicleSubmission() VehicleSubmission {
	return VehicleSubmission{
		Plate:    "abc-1234",
		Brand:    "Volkswagen",
		Model:    "Kombi",
		Year:     2018,
		Color:    "Branca",
		FuelType: "flex",
		Category: "Van",
	}
}

package models

import "time"

type Vehicle struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Plate stored normalized, uppercase without separators
	Plate             string    `gorm:"type:varchar(7);uniqueIndex;not null" json:"plate"`
	Brand             string    `gorm:"type:varchar(50);not null" json:"brand"`
	Model             string    `gorm:"type:varchar(100);not null" json:"model"`
	Year              int       `gorm:"not null" json:"year"`
	Color             string    `gorm:"type:varchar(30);not null" json:"color"`
	FuelType          string    `gorm:"type:varchar(20);not null" json:"fuel_type"`
	Category          string    `gorm:"type:varchar(50);not null;default:'Van'" json:"category"`
	PassengerCapacity uint      `gorm:"not null;default:5" json:"passenger_capacity"`
	ChassisNumber     string    `gorm:"type:varchar(50)" json:"chassis_number"`
	Renavam           string    `gorm:"type:varchar(20)" json:"renavam"`
	IsActive          bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedByID       *uint     `gorm:"index" json:"created_by,omitempty"`
	CreatedBy         *User     `gorm:"foreignKey:CreatedByID" json:"-"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null" json:"updated_at"`
}

var VehicleFuelTypes = []string{"gasoline", "ethanol", "flex", "diesel", "electric", "hybrid"}

var VehicleCategories = []string{"Van", "Caminhão", "Ônibus", "Carreta", "Carro"}

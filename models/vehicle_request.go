package models

import "time"

// VehicleRequest is a public vehicle-registration submission awaiting review.
type VehicleRequest struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Protocol string `gorm:"type:varchar(12);uniqueIndex;not null" json:"protocol"`

	Plate    string `gorm:"type:varchar(7);index;not null" json:"plate"`
	Brand    string `gorm:"type:varchar(50);not null" json:"brand"`
	Model    string `gorm:"type:varchar(100);not null" json:"model"`
	Year     int    `gorm:"not null" json:"year"`
	Color    string `gorm:"type:varchar(30);not null" json:"color"`
	FuelType string `gorm:"type:varchar(20);not null" json:"fuel_type"`
	Category string `gorm:"type:varchar(50);not null;default:'Van'" json:"category"`
	Message  string `gorm:"type:text" json:"message,omitempty"`

	Status          string     `gorm:"type:varchar(20);not null;default:'pending';index:idx_vehicle_requests_status_created" json:"status"`
	CreatedAt       time.Time  `gorm:"not null;index:idx_vehicle_requests_status_created" json:"created_at"`
	ViewedAt        *time.Time `json:"viewed_at,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	ReviewedByID    *uint      `gorm:"index" json:"reviewed_by_id,omitempty"`
	ReviewedBy      *User      `gorm:"foreignKey:ReviewedByID" json:"reviewed_by,omitempty"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason,omitempty"`

	// Vehicle created by approval. Set exactly once, never cleared.
	VehicleID *uint    `gorm:"uniqueIndex" json:"vehicle_id,omitempty"`
	Vehicle   *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}

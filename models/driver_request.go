package models

import "time"

// Request status values. Both approved and rejected are terminal.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// Protocol prefixes, one numbering partition per prefix and year.
const (
	DriverProtocolPrefix  = "DRV"
	VehicleProtocolPrefix = "VHC"
)

// DriverRequest is a public driver-registration submission awaiting review.
// Field layout mirrors Conductor so approval can promote it directly.
type DriverRequest struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Protocol string `gorm:"type:varchar(12);uniqueIndex;not null" json:"protocol"`

	Name            string     `gorm:"type:varchar(150);not null" json:"name"`
	CPF             string     `gorm:"type:varchar(11);index;not null" json:"cpf"`
	BirthDate       *time.Time `json:"birth_date,omitempty"`
	Email           string     `gorm:"type:varchar(255);not null" json:"email"`
	Phone           string     `gorm:"type:varchar(20);not null" json:"phone"`
	Whatsapp        string     `gorm:"type:varchar(20)" json:"whatsapp,omitempty"`
	LicenseNumber   string     `gorm:"type:varchar(20);not null" json:"license_number"`
	LicenseCategory string     `gorm:"type:varchar(5);not null" json:"license_category"`
	LicenseExpiry   *time.Time `json:"license_expiry_date,omitempty"`
	Message         string     `gorm:"type:text" json:"message,omitempty"`

	Status          string     `gorm:"type:varchar(20);not null;default:'pending';index:idx_driver_requests_status_created" json:"status"`
	CreatedAt       time.Time  `gorm:"not null;index:idx_driver_requests_status_created" json:"created_at"`
	ViewedAt        *time.Time `json:"viewed_at,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	ReviewedByID    *uint      `gorm:"index" json:"reviewed_by_id,omitempty"`
	ReviewedBy      *User      `gorm:"foreignKey:ReviewedByID" json:"reviewed_by,omitempty"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason,omitempty"`

	// Conductor created by approval. Set exactly once, never cleared.
	ConductorID *uint      `gorm:"uniqueIndex" json:"conductor_id,omitempty"`
	Conductor   *Conductor `gorm:"foreignKey:ConductorID" json:"conductor,omitempty"`
}

var DriverLicenseCategories = []string{"A", "B", "AB", "AC", "AD", "AE", "C", "D", "E"}

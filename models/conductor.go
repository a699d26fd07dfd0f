package models

import "time"

type Conductor struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(150);not null" json:"name"`
	// CPF stored normalized, digits only
	CPF             string     `gorm:"type:varchar(11);uniqueIndex;not null" json:"cpf"`
	Email           string     `gorm:"type:varchar(255);not null" json:"email"`
	Phone           string     `gorm:"type:varchar(20);not null" json:"phone"`
	BirthDate       time.Time  `gorm:"not null" json:"birth_date"`
	LicenseNumber   string     `gorm:"type:varchar(20);not null" json:"license_number"`
	LicenseCategory string     `gorm:"type:varchar(5);not null" json:"license_category"`
	LicenseExpiry   time.Time  `gorm:"not null" json:"license_expiry_date"`
	Street          string     `gorm:"type:varchar(200)" json:"street"`
	Number          string     `gorm:"type:varchar(20)" json:"number"`
	Neighborhood    string     `gorm:"type:varchar(100)" json:"neighborhood"`
	City            string     `gorm:"type:varchar(100)" json:"city"`
	IsActive        bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedByID     *uint      `gorm:"index" json:"created_by,omitempty"`
	CreatedBy       *User      `gorm:"foreignKey:CreatedByID" json:"-"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updated_at"`
}

// IsLicenseExpired reports whether the license expiry is already past.
func (c *Conductor) IsLicenseExpired() bool {
	return c.LicenseExpiry.Before(time.Now())
}

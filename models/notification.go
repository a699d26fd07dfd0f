package models

import "time"

// Notification types
const (
	NotificationDriverRequest  = "driver_request"
	NotificationVehicleRequest = "vehicle_request"
)

// Notification is an alert row created when a new request enters review.
// It references the request by id only; marking it read never touches
// the request itself.
type Notification struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	NotificationType string     `gorm:"type:varchar(20);not null;index:idx_notifications_type_request" json:"notification_type"`
	RequestID        uint       `gorm:"not null;index:idx_notifications_type_request" json:"request_id"`
	Title            string     `gorm:"type:varchar(200);not null" json:"title"`
	Message          string     `gorm:"type:text;not null" json:"message"`
	IsRead           bool       `gorm:"not null;default:false;index:idx_notifications_read_created" json:"is_read"`
	ReadByID         *uint      `json:"read_by_id,omitempty"`
	ReadBy           *User      `gorm:"foreignKey:ReadByID" json:"read_by,omitempty"`
	ReadAt           *time.Time `json:"read_at,omitempty"`
	CreatedAt        time.Time  `gorm:"not null;index:idx_notifications_read_created" json:"created_at"`
}

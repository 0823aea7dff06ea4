package models

import "time"

// Notification is the stored record of a status-change notification sent to
// the owner of a travel order.
type Notification struct {
	ID             string            `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uint              `gorm:"not null;index" json:"user_id"`
	TravelOrderID  uint              `gorm:"not null" json:"travel_order_id"`
	OrderID        string            `gorm:"type:varchar(255);not null" json:"order_id"`
	PreviousStatus TravelOrderStatus `gorm:"type:varchar(20);not null" json:"previous_status"`
	NewStatus      TravelOrderStatus `gorm:"type:varchar(20);not null" json:"new_status"`
	UpdatedByID    uint              `gorm:"not null" json:"updated_by_id"`
	UpdatedByName  string            `gorm:"type:varchar(255);not null" json:"updated_by_name"`
	Message        string            `gorm:"type:text;not null" json:"message"`
	ActionURL      string            `gorm:"type:varchar(255)" json:"action_url"`
	ReadAt         *time.Time        `json:"read_at,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

package models

import "time"

type TravelOrderStatus string

const (
	StatusRequested TravelOrderStatus = "requested"
	StatusApproved  TravelOrderStatus = "approved"
	StatusCancelled TravelOrderStatus = "cancelled"
)

type TravelOrder struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	UserID        uint              `gorm:"not null;index" json:"user_id"`
	OrderID       string            `gorm:"type:varchar(255);not null" json:"order_id"`
	ApplicantName string            `gorm:"type:varchar(255);not null" json:"applicant_name"`
	Destination   string            `gorm:"type:varchar(255);not null" json:"destination"`
	DepartureDate time.Time         `gorm:"type:date;not null" json:"departure_date"`
	ReturnDate    time.Time         `gorm:"type:date;not null" json:"return_date"`
	Status        TravelOrderStatus `gorm:"type:varchar(20);not null;default:'requested'" json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// CanBeUpdated reports whether field edits are still permitted.
// Approved and cancelled orders are frozen.
func (o *TravelOrder) CanBeUpdated() bool {
	return o.Status == StatusRequested
}

// CanBeCancelled reports whether the order may go through the cancel path.
// Approved orders cannot be cancelled this way.
func (o *TravelOrder) CanBeCancelled() bool {
	return o.Status != StatusApproved
}

// ValidStatus reports whether s is one of the three known states.
func ValidStatus(s string) bool {
	switch TravelOrderStatus(s) {
	case StatusRequested, StatusApproved, StatusCancelled:
		return true
	}
	return false
}

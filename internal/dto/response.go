package dto

import (
	"time"

	"github.com/corptravel/travel-order-service/internal/models"
)

const dateLayout = "2006-01-02"

type TravelOrderResponse struct {
	ID            uint                     `json:"id"`
	UserID        uint                     `json:"user_id"`
	OrderID       string                   `json:"order_id"`
	ApplicantName string                   `json:"applicant_name"`
	Destination   string                   `json:"destination"`
	DepartureDate string                   `json:"departure_date"`
	ReturnDate    string                   `json:"return_date"`
	Status        models.TravelOrderStatus `json:"status"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

type TravelOrderDataResponse struct {
	Message string              `json:"message,omitempty"`
	Data    TravelOrderResponse `json:"data"`
}

type TravelOrderListResponse struct {
	Data  []TravelOrderResponse `json:"data"`
	Count int                   `json:"count"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	Message     string       `json:"message,omitempty"`
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type MeResponse struct {
	User UserResponse `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type NotificationListResponse struct {
	Data  []models.Notification `json:"data"`
	Count int                   `json:"count"`
}

// NotificationMessage is the payload published to the notification queue.
type NotificationMessage struct {
	NotificationID string                   `json:"notification_id"`
	TravelOrderID  uint                     `json:"travel_order_id"`
	OrderID        string                   `json:"order_id"`
	RecipientID    uint                     `json:"recipient_id"`
	RecipientName  string                   `json:"recipient_name"`
	RecipientEmail string                   `json:"recipient_email"`
	PreviousStatus models.TravelOrderStatus `json:"previous_status"`
	NewStatus      models.TravelOrderStatus `json:"new_status"`
	UpdatedByName  string                   `json:"updated_by_name"`
	Message        string                   `json:"message"`
	ActionURL      string                   `json:"action_url"`
}

func ToTravelOrderResponse(o *models.TravelOrder) TravelOrderResponse {
	return TravelOrderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		OrderID:       o.OrderID,
		ApplicantName: o.ApplicantName,
		Destination:   o.Destination,
		DepartureDate: o.DepartureDate.Format(dateLayout),
		ReturnDate:    o.ReturnDate.Format(dateLayout),
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

package dto

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateTravelOrderRequest struct {
	OrderID       string `json:"order_id" validate:"required,max=255"`
	ApplicantName string `json:"applicant_name" validate:"required,max=255"`
	Destination   string `json:"destination" validate:"required,max=255"`
	DepartureDate string `json:"departure_date" validate:"required,dateonly,todayorlater"`
	ReturnDate    string `json:"return_date" validate:"required,dateonly"`
	Status        string `json:"status" validate:"omitempty,oneof=requested approved cancelled"`
}

// UpdateTravelOrderRequest carries a partial field merge; absent fields keep
// their current values.
type UpdateTravelOrderRequest struct {
	OrderID       *string `json:"order_id" validate:"omitempty,max=255"`
	ApplicantName *string `json:"applicant_name" validate:"omitempty,max=255"`
	Destination   *string `json:"destination" validate:"omitempty,max=255"`
	DepartureDate *string `json:"departure_date" validate:"omitempty,dateonly,todayorlater"`
	ReturnDate    *string `json:"return_date" validate:"omitempty,dateonly"`
}

type UpdateTravelOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved cancelled"`
}

package validation

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/corptravel/travel-order-service/internal/dto"
	"github.com/corptravel/travel-order-service/internal/models"
	"github.com/corptravel/travel-order-service/internal/repository"
)

const dateLayout = "2006-01-02"

// Errors maps field names to human-readable validation messages.
type Errors struct {
	Fields map[string]string
}

func (e *Errors) Error() string {
	return "invalid input data"
}

func NewErrors() *Errors {
	return &Errors{Fields: make(map[string]string)}
}

func (e *Errors) Add(field, message string) {
	e.Fields[field] = message
}

// OrderInput is a fully validated create payload with parsed dates.
type OrderInput struct {
	OrderID       string
	ApplicantName string
	Destination   string
	DepartureDate time.Time
	ReturnDate    time.Time
	Status        models.TravelOrderStatus
}

// OrderUpdate is a validated partial update; nil fields are left untouched.
type OrderUpdate struct {
	OrderID       *string
	ApplicantName *string
	Destination   *string
	DepartureDate *time.Time
	ReturnDate    *time.Time
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Report fields by their json names so error maps match the payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(dateLayout, fl.Field().String())
		return err == nil
	})

	_ = v.RegisterValidation("todayorlater", func(fl validator.FieldLevel) bool {
		d, err := time.Parse(dateLayout, fl.Field().String())
		if err != nil {
			// dateonly reports the parse failure
			return true
		}
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return !d.Before(today)
	})

	return &Validator{v: v}
}

// Struct validates any tagged struct and returns field-keyed messages.
func (va *Validator) Struct(s any) *Errors {
	err := va.v.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		e := NewErrors()
		e.Add("payload", "invalid request payload")
		return e
	}

	e := NewErrors()
	for _, fe := range verrs {
		if _, seen := e.Fields[fe.Field()]; !seen {
			e.Add(fe.Field(), messageFor(fe))
		}
	}
	return e
}

// CreateTravelOrder validates a create payload and parses its dates. The
// status defaults to requested when absent.
func (va *Validator) CreateTravelOrder(req dto.CreateTravelOrderRequest) (*OrderInput, *Errors) {
	if errs := va.Struct(req); errs != nil {
		return nil, errs
	}

	departure, _ := time.Parse(dateLayout, req.DepartureDate)
	ret, _ := time.Parse(dateLayout, req.ReturnDate)

	if !ret.After(departure) {
		e := NewErrors()
		e.Add("return_date", "The return date must be later than the departure date.")
		return nil, e
	}

	status := models.StatusRequested
	if req.Status != "" {
		status = models.TravelOrderStatus(req.Status)
	}

	return &OrderInput{
		OrderID:       req.OrderID,
		ApplicantName: req.ApplicantName,
		Destination:   req.Destination,
		DepartureDate: departure,
		ReturnDate:    ret,
		Status:        status,
	}, nil
}

// UpdateTravelOrder validates a partial update against the current record.
// Date ordering is checked on the merged result so that updating only one of
// the two dates cannot break return_date > departure_date.
func (va *Validator) UpdateTravelOrder(req dto.UpdateTravelOrderRequest, current *models.TravelOrder) (*OrderUpdate, *Errors) {
	if errs := va.Struct(req); errs != nil {
		return nil, errs
	}

	upd := &OrderUpdate{
		OrderID:       req.OrderID,
		ApplicantName: req.ApplicantName,
		Destination:   req.Destination,
	}

	departure := current.DepartureDate
	if req.DepartureDate != nil {
		d, _ := time.Parse(dateLayout, *req.DepartureDate)
		departure = d
		upd.DepartureDate = &d
	}

	ret := current.ReturnDate
	if req.ReturnDate != nil {
		r, _ := time.Parse(dateLayout, *req.ReturnDate)
		ret = r
		upd.ReturnDate = &r
	}

	if !ret.After(departure) {
		e := NewErrors()
		e.Add("return_date", "The return date must be later than the departure date.")
		return nil, e
	}

	return upd, nil
}

// StatusChange validates an explicit transition payload. The requested state
// is not a valid target.
func (va *Validator) StatusChange(req dto.UpdateTravelOrderStatusRequest) (models.TravelOrderStatus, *Errors) {
	if errs := va.Struct(req); errs != nil {
		return "", errs
	}
	return models.TravelOrderStatus(req.Status), nil
}

// ListQuery parses list filter query parameters. start_date and end_date are
// only accepted together.
func (va *Validator) ListQuery(status, destination, startDate, endDate string) (repository.ListFilter, *Errors) {
	var f repository.ListFilter
	e := NewErrors()

	if status != "" {
		if !models.ValidStatus(status) {
			e.Add("status", "The status must be requested, approved or cancelled.")
		} else {
			s := models.TravelOrderStatus(status)
			f.Status = &s
		}
	}

	f.Destination = destination

	if (startDate == "") != (endDate == "") {
		e.Add("start_date", "The start date and end date must be provided together.")
	} else if startDate != "" {
		start, err := time.Parse(dateLayout, startDate)
		if err != nil {
			e.Add("start_date", "The start date must be a valid date (YYYY-MM-DD).")
		}
		end, err := time.Parse(dateLayout, endDate)
		if err != nil {
			e.Add("end_date", "The end date must be a valid date (YYYY-MM-DD).")
		}
		if len(e.Fields) == 0 {
			f.StartDate = &start
			f.EndDate = &end
		}
	}

	if len(e.Fields) > 0 {
		return repository.ListFilter{}, e
	}
	return f, nil
}

var fieldLabels = map[string]string{
	"order_id":       "order ID",
	"applicant_name": "applicant name",
	"destination":    "destination",
	"departure_date": "departure date",
	"return_date":    "return date",
	"status":         "status",
	"name":           "name",
	"email":          "email",
	"password":       "password",
}

func messageFor(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", label)
	case "max":
		return fmt.Sprintf("The %s may not exceed %s characters.", label, fe.Param())
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", label, fe.Param())
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", label)
	case "dateonly":
		return fmt.Sprintf("The %s must be a valid date (YYYY-MM-DD).", label)
	case "todayorlater":
		return fmt.Sprintf("The %s cannot be earlier than today.", label)
	case "oneof":
		choices := strings.Fields(fe.Param())
		last := choices[len(choices)-1]
		if len(choices) == 1 {
			return fmt.Sprintf("The %s must be %s.", label, last)
		}
		return fmt.Sprintf("The %s must be %s or %s.", label, strings.Join(choices[:len(choices)-1], ", "), last)
	default:
		return fmt.Sprintf("The %s is invalid.", label)
	}
}

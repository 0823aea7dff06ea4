package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/corptravel/travel-order-service/internal/dto"
	"github.com/corptravel/travel-order-service/internal/models"
	"github.com/corptravel/travel-order-service/internal/repository"
	"github.com/corptravel/travel-order-service/internal/validation"
)

var (
	ErrOrderNotFound    = errors.New("travel order not found")
	ErrNotOwner         = errors.New("you do not have access to this travel order")
	ErrSelfStatusChange = errors.New("you cannot change the status of your own travel order")
)

// BusinessRuleError marks a request that is well-formed and authorized but
// forbidden by the order's current state.
type BusinessRuleError struct {
	Message string
}

func (e *BusinessRuleError) Error() string {
	return e.Message
}

func duplicateOrderIDError() *validation.Errors {
	e := validation.NewErrors()
	e.Add("order_id", "This order ID is already in use.")
	return e
}

// StatusNotifier is called after a status transition commits. Implementations
// must be best-effort: they never return an error and must not block the
// transition's outcome.
type StatusNotifier interface {
	NotifyStatusChanged(ctx context.Context, order *models.TravelOrder, previousStatus models.TravelOrderStatus, updatedByID uint)
}

type TravelOrderService interface {
	List(ctx context.Context, userID uint, filter repository.ListFilter) ([]models.TravelOrder, error)
	Create(ctx context.Context, userID uint, req dto.CreateTravelOrderRequest) (*models.TravelOrder, error)
	Get(ctx context.Context, userID, orderID uint) (*models.TravelOrder, error)
	Update(ctx context.Context, userID, orderID uint, req dto.UpdateTravelOrderRequest) (*models.TravelOrder, error)
	Cancel(ctx context.Context, userID, orderID uint) error
	UpdateStatus(ctx context.Context, actorID, orderID uint, req dto.UpdateTravelOrderStatusRequest) (*models.TravelOrder, error)
}

type travelOrderService struct {
	orders   repository.TravelOrderRepository
	validate *validation.Validator
	notifier StatusNotifier
}

func NewTravelOrderService(orders repository.TravelOrderRepository, validate *validation.Validator, notifier StatusNotifier) TravelOrderService {
	return &travelOrderService{
		orders:   orders,
		validate: validate,
		notifier: notifier,
	}
}

func (s *travelOrderService) List(ctx context.Context, userID uint, filter repository.ListFilter) ([]models.TravelOrder, error) {
	return s.orders.FindByUser(ctx, userID, filter)
}

func (s *travelOrderService) Create(ctx context.Context, userID uint, req dto.CreateTravelOrderRequest) (*models.TravelOrder, error) {
	input, verrs := s.validate.CreateTravelOrder(req)
	if verrs != nil {
		return nil, verrs
	}

	taken, err := s.orders.OrderIDExists(ctx, input.OrderID, 0)
	if err != nil {
		return nil, fmt.Errorf("check order id: %w", err)
	}
	if taken {
		return nil, duplicateOrderIDError()
	}

	order := &models.TravelOrder{
		UserID:        userID,
		OrderID:       input.OrderID,
		ApplicantName: input.ApplicantName,
		Destination:   input.Destination,
		DepartureDate: input.DepartureDate,
		ReturnDate:    input.ReturnDate,
		Status:        input.Status,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		// a concurrent create can slip past OrderIDExists and land on the
		// unique index instead
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateOrderIDError()
		}
		return nil, fmt.Errorf("create travel order: %w", err)
	}
	return order, nil
}

// Get checks existence before ownership so a foreign order yields 403, not 404.
func (s *travelOrderService) Get(ctx context.Context, userID, orderID uint) (*models.TravelOrder, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("find travel order: %w", err)
	}
	if order.UserID != userID {
		return nil, ErrNotOwner
	}
	return order, nil
}

func (s *travelOrderService) Update(ctx context.Context, userID, orderID uint, req dto.UpdateTravelOrderRequest) (*models.TravelOrder, error) {
	var result *models.TravelOrder

	err := s.orders.Transaction(ctx, func(tx *gorm.DB) error {
		order, err := s.orders.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("find travel order: %w", err)
		}

		if order.UserID != userID {
			return ErrNotOwner
		}
		if !order.CanBeUpdated() {
			return &BusinessRuleError{
				Message: fmt.Sprintf("Cannot update a travel order with status %s.", order.Status),
			}
		}

		upd, verrs := s.validate.UpdateTravelOrder(req, order)
		if verrs != nil {
			return verrs
		}

		if upd.OrderID != nil && *upd.OrderID != order.OrderID {
			taken, err := s.orders.OrderIDExists(ctx, *upd.OrderID, order.ID)
			if err != nil {
				return fmt.Errorf("check order id: %w", err)
			}
			if taken {
				return duplicateOrderIDError()
			}
		}

		fields := make(map[string]any)
		if upd.OrderID != nil {
			fields["order_id"] = *upd.OrderID
			order.OrderID = *upd.OrderID
		}
		if upd.ApplicantName != nil {
			fields["applicant_name"] = *upd.ApplicantName
			order.ApplicantName = *upd.ApplicantName
		}
		if upd.Destination != nil {
			fields["destination"] = *upd.Destination
			order.Destination = *upd.Destination
		}
		if upd.DepartureDate != nil {
			fields["departure_date"] = *upd.DepartureDate
			order.DepartureDate = *upd.DepartureDate
		}
		if upd.ReturnDate != nil {
			fields["return_date"] = *upd.ReturnDate
			order.ReturnDate = *upd.ReturnDate
		}

		if len(fields) > 0 {
			if err := s.orders.Updates(ctx, tx, order.ID, fields); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return duplicateOrderIDError()
				}
				return fmt.Errorf("update travel order: %w", err)
			}
		}

		result = order
		return nil
	})

	return result, err
}

// Cancel removes the order. The guard only blocks approved orders; requested
// and cancelled orders can be removed.
func (s *travelOrderService) Cancel(ctx context.Context, userID, orderID uint) error {
	return s.orders.Transaction(ctx, func(tx *gorm.DB) error {
		order, err := s.orders.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("find travel order: %w", err)
		}

		if order.UserID != userID {
			return ErrNotOwner
		}
		if !order.CanBeCancelled() {
			return &BusinessRuleError{Message: "Cannot cancel an approved travel order."}
		}

		if err := s.orders.Delete(ctx, tx, order.ID); err != nil {
			return fmt.Errorf("delete travel order: %w", err)
		}
		return nil
	})
}

// UpdateStatus applies an approve/cancel transition on behalf of a non-owner.
// The row is locked while the previous status is captured so a concurrent
// writer cannot make the notified previous status stale. Notification dispatch
// happens after commit and never affects the transition's outcome.
func (s *travelOrderService) UpdateStatus(ctx context.Context, actorID, orderID uint, req dto.UpdateTravelOrderStatusRequest) (*models.TravelOrder, error) {
	var (
		result   *models.TravelOrder
		previous models.TravelOrderStatus
	)

	err := s.orders.Transaction(ctx, func(tx *gorm.DB) error {
		order, err := s.orders.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("find travel order: %w", err)
		}

		if order.UserID == actorID {
			return ErrSelfStatusChange
		}

		newStatus, verrs := s.validate.StatusChange(req)
		if verrs != nil {
			return verrs
		}

		previous = order.Status
		if err := s.orders.UpdateStatus(ctx, tx, order.ID, newStatus); err != nil {
			return fmt.Errorf("update status: %w", err)
		}

		order.Status = newStatus
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyStatusChanged(ctx, result, previous, actorID)
	}
	return result, nil
}

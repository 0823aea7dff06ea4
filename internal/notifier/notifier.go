package notifier

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/corptravel/travel-order-service/internal/dto"
	"github.com/corptravel/travel-order-service/internal/models"
	"github.com/corptravel/travel-order-service/internal/repository"
)

const routingKey = "travel-order.status_changed"

// Publisher is the outbound queue edge. *rabbitmq.Publisher satisfies it.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

// Notifier reacts to status changes: it resolves the two involved users,
// stores a notification record for the owner and hands the payload to the
// delivery queue. Every failure is logged and swallowed; the triggering
// transition already committed.
type Notifier struct {
	users         repository.UserRepository
	notifications repository.NotificationRepository
	publisher     Publisher
	appURL        string
}

func New(users repository.UserRepository, notifications repository.NotificationRepository, publisher Publisher, appURL string) *Notifier {
	return &Notifier{
		users:         users,
		notifications: notifications,
		publisher:     publisher,
		appURL:        appURL,
	}
}

func (n *Notifier) NotifyStatusChanged(ctx context.Context, order *models.TravelOrder, previousStatus models.TravelOrderStatus, updatedByID uint) {
	owner, err := n.users.FindByID(ctx, order.UserID)
	if err != nil {
		log.WithFields(log.Fields{
			"travel_order_id": order.ID,
			"user_id":         order.UserID,
		}).Warn("travel order owner not found, notification skipped")
		return
	}

	actor, err := n.users.FindByID(ctx, updatedByID)
	if err != nil {
		log.WithFields(log.Fields{
			"travel_order_id": order.ID,
			"user_id":         updatedByID,
		}).Warn("status updater not found, notification skipped")
		return
	}

	notification := &models.Notification{
		ID:             uuid.NewString(),
		UserID:         owner.ID,
		TravelOrderID:  order.ID,
		OrderID:        order.OrderID,
		PreviousStatus: previousStatus,
		NewStatus:      order.Status,
		UpdatedByID:    actor.ID,
		UpdatedByName:  actor.Name,
		Message:        fmt.Sprintf("Your travel order %s has been %s.", order.OrderID, order.Status),
		ActionURL:      fmt.Sprintf("%s/travel-orders/%d", n.appURL, order.ID),
	}

	if err := n.notifications.Create(ctx, notification); err != nil {
		log.WithFields(log.Fields{
			"travel_order_id": order.ID,
			"recipient_id":    owner.ID,
		}).WithError(err).Error("failed to store travel order notification")
	}

	if n.publisher == nil {
		return
	}

	msg := dto.NotificationMessage{
		NotificationID: notification.ID,
		TravelOrderID:  order.ID,
		OrderID:        order.OrderID,
		RecipientID:    owner.ID,
		RecipientName:  owner.Name,
		RecipientEmail: owner.Email,
		PreviousStatus: previousStatus,
		NewStatus:      order.Status,
		UpdatedByName:  actor.Name,
		Message:        notification.Message,
		ActionURL:      notification.ActionURL,
	}

	if err := n.publisher.Publish(routingKey, msg); err != nil {
		log.WithFields(log.Fields{
			"travel_order_id": order.ID,
			"recipient_id":    owner.ID,
		}).WithError(err).Error("failed to publish travel order notification")
		return
	}

	log.WithFields(log.Fields{
		"travel_order_id": order.ID,
		"recipient_id":    owner.ID,
		"previous_status": previousStatus,
		"new_status":      order.Status,
	}).Info("travel order status notification dispatched")
}

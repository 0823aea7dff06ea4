package consumer

import (
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"

	"github.com/corptravel/travel-order-service/internal/dto"
)

// Mailer is the outbound mail edge. Actual SMTP delivery belongs to an
// external subsystem; LogMailer records the send.
type Mailer interface {
	Send(to, subject, body string) error
}

type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	log.WithFields(log.Fields{
		"to":      to,
		"subject": subject,
	}).Info("[Mailer] notification email sent")
	return nil
}

// NotificationConsumer drains queued status-change messages and delivers the
// notification email off the request path.
type NotificationConsumer struct {
	mailer Mailer
}

func NewNotificationConsumer(mailer Mailer) *NotificationConsumer {
	return &NotificationConsumer{mailer: mailer}
}

func (nc *NotificationConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			nc.handleMessage(msg)
		}
		log.Info("[NotificationConsumer] channel closed, stopping consumer")
	}()
}

func (nc *NotificationConsumer) handleMessage(msg amqp.Delivery) {
	var m dto.NotificationMessage
	if err := json.Unmarshal(msg.Body, &m); err != nil {
		log.WithError(err).Error("[NotificationConsumer] failed to unmarshal message")
		_ = msg.Nack(false, false)
		return
	}

	subject := fmt.Sprintf("Travel Order Status Updated - %s", m.OrderID)
	body := fmt.Sprintf(
		"Hello, %s!\n\n%s\nPrevious status: %s\nNew status: %s\nUpdated by: %s\n\nView your order: %s\n",
		m.RecipientName, m.Message, m.PreviousStatus, m.NewStatus, m.UpdatedByName, m.ActionURL,
	)

	if err := nc.mailer.Send(m.RecipientEmail, subject, body); err != nil {
		log.WithFields(log.Fields{
			"travel_order_id": m.TravelOrderID,
			"recipient_id":    m.RecipientID,
		}).WithError(err).Error("[NotificationConsumer] delivery failed, message dropped")
		// best-effort: no synchronous retry
		_ = msg.Nack(false, false)
		return
	}

	_ = msg.Ack(false)
}

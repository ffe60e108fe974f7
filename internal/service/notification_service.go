package service

import (
	"context"
	"time"

	"photostudio-be/internal/dto"
	"photostudio-be/internal/pkg/logger"
	"photostudio-be/internal/pkg/mailer"
	"photostudio-be/internal/repository/specification"
	"photostudio-be/internal/repository/unitofwork"
	"photostudio-be/pkg/events"
	pktNats "photostudio-be/pkg/nats"

	"github.com/google/uuid"
)

// LedgerDelivery pushes events to connected dashboards. Implemented by the
// WebSocket Hub.
type LedgerDelivery interface {
	Broadcast(ctx context.Context, msg dto.LedgerEventMessage)
}

// EventSource is the subscribing half of the event bus.
type EventSource interface {
	Subscribe(subject string, durableName string, handler pktNats.EventHandler) error
}

const notifierDurable = "ledger-notifier"

// NotificationService turns ledger events into dashboard pushes and customer
// emails.
type NotificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber EventSource
	delivery   LedgerDelivery
	mail       IMailQueue
	logger     logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	sub EventSource,
	delivery LedgerDelivery,
	mail IMailQueue,
	log logger.ILogger,
) *NotificationService {
	return &NotificationService{
		uowFactory: uowFactory,
		subscriber: sub,
		delivery:   delivery,
		mail:       mail,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	if err := s.subscriber.Subscribe(events.SubjectPrefix+">", notifierDurable, s.HandleEvent); err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) HandleEvent(ctx context.Context, event events.Event) error {
	typeCode := events.TypeFromSubject(event.EventType())
	payload := event.Payload()
	if payload == nil {
		payload = map[string]interface{}{}
	}

	if s.delivery != nil {
		s.delivery.Broadcast(ctx, dto.LedgerEventMessage{
			Type:       typeCode,
			Payload:    payload,
			OccurredAt: event.Timestamp().UTC().Format(time.RFC3339Nano),
		})
	}

	return s.queueCustomerMail(ctx, typeCode, payload)
}

func (s *NotificationService) queueCustomerMail(ctx context.Context, typeCode string, payload map[string]interface{}) error {
	if s.mail == nil || !mailer.CustomerFacing(typeCode) {
		return nil
	}
	reference, _ := payload["reference"].(string)
	amount, _ := payload["amount"].(string)
	reason, _ := payload["reason"].(string)

	rawID, _ := payload["customer_id"].(string)
	customerID, err := uuid.Parse(rawID)
	if err != nil {
		s.logger.Warn("NotificationService", "Event has no customer", map[string]interface{}{"type": typeCode})
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	customer, err := uow.CustomerRepository().FindOne(ctx, specification.ByID{ID: customerID})
	if err != nil {
		return err
	}
	if customer == nil || customer.Email == "" {
		s.logger.Warn("NotificationService", "Customer not reachable by email", map[string]interface{}{"customer_id": rawID})
		return nil
	}

	subject, body, _ := mailer.LedgerNotice(typeCode, customer.Name, reference, amount, reason)
	job := dto.EmailJob{To: customer.Email, Name: customer.Name, Subject: subject, Body: body}
	if err := s.mail.Enqueue(ctx, job); err != nil {
		s.logger.Error("NotificationService", "Failed to queue email", map[string]interface{}{"error": err.Error(), "type": typeCode})
	}
	return nil
}

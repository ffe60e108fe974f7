package service

import (
	"context"
	"encoding/json"

	"photostudio-be/internal/dto"
	"photostudio-be/internal/metrics"
	"photostudio-be/internal/pkg/logger"
	"photostudio-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IMailQueue decouples email delivery from event handling. SMTP latency or
// failure never reaches the request that caused the email.
type IMailQueue interface {
	Enqueue(ctx context.Context, job dto.EmailJob) error
	Consume(ctx context.Context) error
}

type mailQueue struct {
	pubSub    *gochannel.GoChannel
	topicName string
	mailer    mailer.IEmailService
	logger    logger.ILogger
}

func NewMailQueue(
	pubSub *gochannel.GoChannel,
	topicName string,
	mailer mailer.IEmailService,
	logger logger.ILogger,
) IMailQueue {
	return &mailQueue{
		pubSub:    pubSub,
		topicName: topicName,
		mailer:    mailer,
		logger:    logger,
	}
}

func (q *mailQueue) Enqueue(ctx context.Context, job dto.EmailJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return q.pubSub.Publish(q.topicName, msg)
}

func (q *mailQueue) Consume(ctx context.Context) error {
	messages, err := q.pubSub.Subscribe(ctx, q.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			q.processMessage(msg)
		}
	}()

	return nil
}

// processMessage always acks. A failed send is counted and logged; retrying
// SMTP from here would only delay the rest of the queue.
func (q *mailQueue) processMessage(msg *message.Message) {
	defer msg.Ack()

	var job dto.EmailJob
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		q.logger.Error("MAIL", "Failed to unmarshal email job", map[string]interface{}{"error": err.Error()})
		metrics.MailDeliveries.WithLabelValues("invalid").Inc()
		return
	}

	if err := q.mailer.Send(job.To, job.Subject, job.Body); err != nil {
		q.logger.Error("MAIL", "Failed to send email", map[string]interface{}{
			"to":      job.To,
			"subject": job.Subject,
			"error":   err.Error(),
		})
		metrics.MailDeliveries.WithLabelValues("failed").Inc()
		return
	}

	q.logger.Info("MAIL", "Email sent", map[string]interface{}{"to": job.To, "subject": job.Subject})
	metrics.MailDeliveries.WithLabelValues("sent").Inc()
}

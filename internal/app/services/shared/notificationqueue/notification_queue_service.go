package notificationqueue

import (
	"context"
	"fmt"
	"sync"

	"teleclinic-service/internal/app/models"
	"teleclinic-service/internal/pkg/constvars"
	"teleclinic-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// QueueMessage is the payload stored in RabbitMQ for the email delivery
// worker. FailedCount drives the retry/DLQ decision.
type QueueMessage struct {
	NotificationID string                  `json:"notification_id"`
	RecipientID    string                  `json:"recipient_id"`
	RecipientEmail string                  `json:"recipient_email"`
	RecipientName  string                  `json:"recipient_name"`
	Type           models.NotificationType `json:"type"`
	Message        string                  `json:"message"`
	Link           string                  `json:"link,omitempty"`
	FailedCount    int                     `json:"failed_count"`
}

// Service manages the durable notification queue and its dead-letter queue.
type Service struct {
	ch        *amqp.Channel
	log       *zap.Logger
	queueName string
	dlqName   string
	prefetch  int
	confirms  chan amqp.Confirmation
	mu        sync.Mutex
}

// NewService declares both durable queues, sets QoS, and enables publisher confirms.
func NewService(conn *amqp.Connection, log *zap.Logger, queueName, dlqName string, prefetch int) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	if _, err = ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return nil, err
	}
	if _, err = ch.QueueDeclare(dlqName, true, false, false, false, nil); err != nil {
		return nil, err
	}

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}
	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &Service{
		ch:        ch,
		log:       log,
		queueName: queueName,
		dlqName:   dlqName,
		prefetch:  prefetch,
		confirms:  ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}, nil
}

type EnqueueInput struct {
	Message QueueMessage
}

type EnqueueOutput struct{}

type ReenqueueInput struct {
	Message QueueMessage
}

type ReenqueueOutput struct{}

type EnqueueToDLQInput struct {
	Message QueueMessage
}

type EnqueueToDLQOutput struct{}

type FetchNInput struct {
	Max int
}

// QueuedItem pairs a decoded payload with its broker delivery tag.
type QueuedItem struct {
	DeliveryTag uint64
	Message     QueueMessage
}

type FetchNOutput struct {
	Items []QueuedItem
}

type AckMessageInput struct {
	DeliveryTag uint64
}

type AckMessageOutput struct{}

// Enqueue publishes a message to the standard queue with persistence and waits for confirm.
func (s *Service) Enqueue(ctx context.Context, in *EnqueueInput) (*EnqueueOutput, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("NotificationQueue.Enqueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNotificationIDKey, in.Message.NotificationID),
	)

	if err := s.publish(ctx, s.queueName, in.Message); err != nil {
		return nil, err
	}
	return &EnqueueOutput{}, nil
}

// Reenqueue publishes the (possibly modified) message back to the tail of the standard queue.
func (s *Service) Reenqueue(ctx context.Context, in *ReenqueueInput) (*ReenqueueOutput, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("NotificationQueue.Reenqueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNotificationIDKey, in.Message.NotificationID),
	)

	if err := s.publish(ctx, s.queueName, in.Message); err != nil {
		return nil, err
	}
	return &ReenqueueOutput{}, nil
}

// EnqueueToDeadQueue publishes the message to the DLQ and confirms.
func (s *Service) EnqueueToDeadQueue(ctx context.Context, in *EnqueueToDLQInput) (*EnqueueToDLQOutput, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("NotificationQueue.EnqueueToDeadQueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNotificationIDKey, in.Message.NotificationID),
	)

	if err := s.publish(ctx, s.dlqName, in.Message); err != nil {
		return nil, err
	}
	return &EnqueueToDLQOutput{}, nil
}

// FetchN retrieves up to N messages using basic.get without auto-ack.
func (s *Service) FetchN(ctx context.Context, in *FetchNInput) (*FetchNOutput, error) {
	n := in.Max
	if n <= 0 {
		n = 1
	}
	items := make([]QueuedItem, 0, n)

	for i := 0; i < n; i++ {
		d, ok, err := s.ch.Get(s.queueName, false)
		if err != nil {
			return nil, exceptions.ErrQueueConsume(err)
		}
		if !ok {
			break
		}
		var payload QueueMessage
		if err := json.Unmarshal(d.Body, &payload); err != nil {
			// invalid JSON goes to the DLQ to avoid a poison message loop
			_ = d.Ack(false)
			_ = s.publishRaw(ctx, s.dlqName, d.Body)
			continue
		}
		items = append(items, QueuedItem{DeliveryTag: d.DeliveryTag, Message: payload})
	}

	return &FetchNOutput{Items: items}, nil
}

// AckMessage acknowledges a message by delivery tag.
func (s *Service) AckMessage(ctx context.Context, in *AckMessageInput) (*AckMessageOutput, error) {
	if err := s.ch.Ack(in.DeliveryTag, false); err != nil {
		return nil, exceptions.ErrQueueConsume(err)
	}
	return &AckMessageOutput{}, nil
}

func (s *Service) publish(ctx context.Context, queue string, message QueueMessage) error {
	body, err := json.Marshal(message)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return s.publishRaw(ctx, queue, body)
}

func (s *Service) publishRaw(ctx context.Context, queue string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}
	if err := s.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return exceptions.ErrQueuePublish(err)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrQueuePublish(fmt.Errorf("message not confirmed by broker"))
		}
	case <-ctx.Done():
		return exceptions.ErrQueuePublish(ctx.Err())
	}
	return nil
}

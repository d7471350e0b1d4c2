package notifications

import (
	"context"

	"teleclinic-service/internal/app/contracts"
	"teleclinic-service/internal/app/models"
	"teleclinic-service/internal/app/services/shared/notificationqueue"

	"go.uber.org/zap"
)

// queuePublisher resolves the recipient's email and hands the notification to
// the rabbitmq queue for the delivery worker.
type queuePublisher struct {
	Queue          *notificationqueue.Service
	UserRepository contracts.UserRepository
	Log            *zap.Logger
}

func NewQueuePublisher(queue *notificationqueue.Service, userRepository contracts.UserRepository, logger *zap.Logger) contracts.NotificationPublisher {
	return &queuePublisher{
		Queue:          queue,
		UserRepository: userRepository,
		Log:            logger,
	}
}

func (p *queuePublisher) Publish(ctx context.Context, notification *models.Notification) error {
	message := notificationqueue.QueueMessage{
		NotificationID: notification.ID.Hex(),
		RecipientID:    notification.RecipientID,
		Type:           notification.Type,
		Message:        notification.Message,
		Link:           notification.Link,
	}

	user, err := p.UserRepository.FindByID(ctx, notification.RecipientID)
	if err != nil {
		return err
	}
	if user != nil {
		message.RecipientEmail = user.Email
		message.RecipientName = user.Fullname
	}

	_, err = p.Queue.Enqueue(ctx, &notificationqueue.EnqueueInput{Message: message})
	return err
}

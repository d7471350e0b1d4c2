package contracts

import (
	"context"

	"teleclinic-service/internal/app/models"
	"teleclinic-service/internal/pkg/dto/requests"
	"teleclinic-service/internal/pkg/dto/responses"
)

type NotificationRepository interface {
	Insert(ctx context.Context, notification *models.Notification) (string, error)
	FindByID(ctx context.Context, notificationID string) (*models.Notification, error)
	FindByRecipient(ctx context.Context, recipientID string, page, pageSize int) ([]models.Notification, int, error)
	FindUnseenByRecipient(ctx context.Context, recipientID string, excludeIDs []string) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID, recipientID string) (bool, error)
}

type NotificationUsecase interface {
	// Notify persists a notification and hands it to the delivery queue.
	// Lifecycle usecases call this; it is not an HTTP surface.
	Notify(ctx context.Context, recipientID string, notificationType models.NotificationType, message, link string) error

	Poll(ctx context.Context, session *models.Session, request *requests.PollNotifications) ([]responses.Notification, error)
	ListByRecipient(ctx context.Context, session *models.Session, pagination *requests.Pagination) ([]responses.Notification, int, error)
	MarkRead(ctx context.Context, session *models.Session, notificationID string) error
}

// NotificationPublisher abstracts the queue so usecases can be tested without
// a broker connection.
type NotificationPublisher interface {
	Publish(ctx context.Context, notification *models.Notification) error
}

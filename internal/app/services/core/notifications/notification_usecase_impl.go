package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"teleclinic-service/internal/app/config"
	"teleclinic-service/internal/app/contracts"
	"teleclinic-service/internal/app/models"
	"teleclinic-service/internal/pkg/constvars"
	"teleclinic-service/internal/pkg/dto/requests"
	"teleclinic-service/internal/pkg/dto/responses"
	"teleclinic-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type notificationUsecase struct {
	NotificationRepository contracts.NotificationRepository
	RedisRepository        contracts.RedisRepository
	Publisher              contracts.NotificationPublisher
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

var (
	notificationUsecaseInstance contracts.NotificationUsecase
	onceNotificationUsecase     sync.Once
)

func NewNotificationUsecase(
	notificationRepository contracts.NotificationRepository,
	redisRepository contracts.RedisRepository,
	publisher contracts.NotificationPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.NotificationUsecase {
	onceNotificationUsecase.Do(func() {
		notificationUsecaseInstance = &notificationUsecase{
			NotificationRepository: notificationRepository,
			RedisRepository:        redisRepository,
			Publisher:              publisher,
			InternalConfig:         internalConfig,
			Log:                    logger,
		}
	})
	return notificationUsecaseInstance
}

func (uc *notificationUsecase) Notify(ctx context.Context, recipientID string, notificationType models.NotificationType, message, link string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("notificationUsecase.Notify called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, recipientID),
		zap.String("notification_type", string(notificationType)),
	)

	notification := &models.Notification{
		RecipientID: recipientID,
		Type:        notificationType,
		Message:     message,
		Link:        link,
		Read:        false,
		CreatedAt:   time.Now(),
	}

	notificationID, err := uc.NotificationRepository.Insert(ctx, notification)
	if err != nil {
		return err
	}

	if objectID, idErr := primitive.ObjectIDFromHex(notificationID); idErr == nil {
		notification.ID = objectID
	}

	// email delivery is best effort; a broker outage must not fail the
	// business operation that emitted the notification
	if err := uc.Publisher.Publish(ctx, notification); err != nil {
		uc.Log.Error("notificationUsecase.Notify error publishing to queue",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingNotificationIDKey, notificationID),
			zap.Error(err),
		)
	}
	return nil
}

// Poll returns notifications the caller has not seen, then adds their IDs to
// the per-session known set so an ID never re-triggers. The caller-supplied
// known IDs seed the set, which makes the first poll after mount a seeding
// call rather than an alert storm.
func (uc *notificationUsecase) Poll(ctx context.Context, session *models.Session, request *requests.PollNotifications) ([]responses.Notification, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("notificationUsecase.Poll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, session.SessionID),
		zap.Int("client_known_count", len(request.KnownIDs)),
	)

	knownSetKey := fmt.Sprintf(constvars.RedisNotificationKnownSetFormat, session.SessionID)

	serverKnown, err := uc.RedisRepository.GetSetMembers(ctx, knownSetKey)
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]struct{}, len(serverKnown)+len(request.KnownIDs))
	excludeIDs := make([]string, 0, len(serverKnown)+len(request.KnownIDs))
	for _, id := range serverKnown {
		if _, ok := excluded[id]; !ok {
			excluded[id] = struct{}{}
			excludeIDs = append(excludeIDs, id)
		}
	}
	for _, id := range request.KnownIDs {
		if _, ok := excluded[id]; !ok {
			excluded[id] = struct{}{}
			excludeIDs = append(excludeIDs, id)
		}
	}

	unseen, err := uc.NotificationRepository.FindUnseenByRecipient(ctx, session.UserID, excludeIDs)
	if err != nil {
		return nil, err
	}

	newIDs := make([]interface{}, 0, len(unseen)+len(request.KnownIDs))
	for _, id := range request.KnownIDs {
		newIDs = append(newIDs, id)
	}
	result := make([]responses.Notification, 0, len(unseen))
	for i := range unseen {
		result = append(result, *buildNotificationResponse(&unseen[i]))
		newIDs = append(newIDs, unseen[i].ID.Hex())
	}

	if len(newIDs) > 0 {
		if err := uc.RedisRepository.AddToSet(ctx, knownSetKey, newIDs...); err != nil {
			return nil, err
		}
		ttl := time.Duration(uc.InternalConfig.Notification.KnownSetTTLInHours) * time.Hour
		if ttl > 0 {
			if err := uc.RedisRepository.Expire(ctx, knownSetKey, ttl); err != nil {
				uc.Log.Error("notificationUsecase.Poll error refreshing known set TTL",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Error(err),
				)
			}
		}
	}

	return result, nil
}

func (uc *notificationUsecase) ListByRecipient(ctx context.Context, session *models.Session, pagination *requests.Pagination) ([]responses.Notification, int, error) {
	notifications, total, err := uc.NotificationRepository.FindByRecipient(ctx, session.UserID, pagination.Page, pagination.PageSize)
	if err != nil {
		return nil, 0, err
	}

	result := make([]responses.Notification, 0, len(notifications))
	for i := range notifications {
		result = append(result, *buildNotificationResponse(&notifications[i]))
	}
	return result, total, nil
}

func (uc *notificationUsecase) MarkRead(ctx context.Context, session *models.Session, notificationID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("notificationUsecase.MarkRead called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNotificationIDKey, notificationID),
	)

	matched, err := uc.NotificationRepository.MarkRead(ctx, notificationID, session.UserID)
	if err != nil {
		return err
	}
	if !matched {
		return exceptions.ErrNotificationNotFound(nil)
	}
	return nil
}

func buildNotificationResponse(notification *models.Notification) *responses.Notification {
	return &responses.Notification{
		ID:        notification.ID.Hex(),
		Type:      string(notification.Type),
		Message:   notification.Message,
		Link:      notification.Link,
		Read:      notification.Read,
		CreatedAt: notification.CreatedAt,
	}
}

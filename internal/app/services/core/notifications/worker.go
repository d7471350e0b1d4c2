package notifications

import (
	"context"
	"fmt"
	"time"

	"teleclinic-service/internal/app/config"
	"teleclinic-service/internal/app/contracts"
	"teleclinic-service/internal/app/services/shared/notificationqueue"
	"teleclinic-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// DeliveryQueue is the consuming side of the notification queue. The broker
// service satisfies it; the seam keeps the worker testable without a
// connection.
type DeliveryQueue interface {
	FetchN(ctx context.Context, in *notificationqueue.FetchNInput) (*notificationqueue.FetchNOutput, error)
	AckMessage(ctx context.Context, in *notificationqueue.AckMessageInput) (*notificationqueue.AckMessageOutput, error)
	Reenqueue(ctx context.Context, in *notificationqueue.ReenqueueInput) (*notificationqueue.ReenqueueOutput, error)
	EnqueueToDeadQueue(ctx context.Context, in *notificationqueue.EnqueueToDLQInput) (*notificationqueue.EnqueueToDLQOutput, error)
}

// Worker drains the notification queue on a ticker and delivers emails with
// at-least-once semantics. A redis lock keeps a single instance active per
// tick across replicas.
type Worker struct {
	log    *zap.Logger
	cfg    *config.InternalConfig
	locker contracts.LockerService
	queue  DeliveryQueue
	mailer contracts.MailerService
	stop   chan struct{}
}

func NewWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerSvc contracts.LockerService,
	queue DeliveryQueue,
	mailerSvc contracts.MailerService,
) *Worker {
	return &Worker{
		log:    log,
		cfg:    cfg,
		locker: lockerSvc,
		queue:  queue,
		mailer: mailerSvc,
		stop:   make(chan struct{}),
	}
}

// Start begins the ticker loop. It returns a stop function to halt execution.
func (w *Worker) Start(ctx context.Context) (stop func()) {
	tick := time.Duration(w.cfg.Notification.WorkerTickInSeconds) * time.Second
	if tick <= 0 {
		tick = time.Minute
	}
	ticker := time.NewTicker(tick)
	stopped := make(chan struct{})

	w.log.Info("notification worker started", zap.Duration("tick", tick))

	go func() {
		defer close(stopped)
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-w.stop:
				ticker.Stop()
				return
			case <-ticker.C:
				w.runOnce(ctx, tick)
			}
		}
	}()

	return func() {
		close(w.stop)
	}
}

func (w *Worker) runOnce(ctx context.Context, tick time.Duration) {
	ttl := tick - time.Second
	if ttl < time.Second {
		ttl = time.Second
	}

	acquired, lockVal, err := w.locker.TryLock(ctx, constvars.RedisNotificationWorkerLockKey, ttl)
	if err != nil {
		w.log.Info("notification worker lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("notification worker lock not acquired; another instance is running")
		return
	}
	defer func() {
		if err := w.locker.Unlock(ctx, constvars.RedisNotificationWorkerLockKey, lockVal); err != nil {
			w.log.Error("notification worker unlock failed", zap.Error(err))
		}
	}()

	max := w.cfg.Notification.WorkerPrefetch
	if max <= 0 {
		max = 1
	}
	out, err := w.queue.FetchN(ctx, &notificationqueue.FetchNInput{Max: max})
	if err != nil {
		w.log.Info("notification queue FetchN error", zap.Error(err))
		return
	}

	for _, item := range out.Items {
		w.processItem(ctx, item)
	}
}

func (w *Worker) processItem(ctx context.Context, item notificationqueue.QueuedItem) {
	msg := item.Message

	if msg.RecipientEmail == "" {
		// nowhere to deliver, drop without retry
		w.ack(ctx, item)
		w.log.Warn("notification message has no recipient email; dropped",
			zap.String(constvars.LoggingNotificationIDKey, msg.NotificationID),
		)
		return
	}

	subject := fmt.Sprintf(w.cfg.Notification.EmailSubjectTemplate, msg.Type)
	body := msg.Message
	if msg.Link != "" {
		body = fmt.Sprintf("%s\n\n%s", msg.Message, msg.Link)
	}

	if err := w.mailer.SendEmail(ctx, msg.RecipientEmail, subject, body); err != nil {
		w.log.Info("notification email send failed",
			zap.String(constvars.LoggingNotificationIDKey, msg.NotificationID),
			zap.Int("failed_count", msg.FailedCount),
			zap.Error(err),
		)
		w.requeueOnError(ctx, item, msg)
		return
	}

	w.ack(ctx, item)
	w.log.Info("notification email delivered",
		zap.String(constvars.LoggingNotificationIDKey, msg.NotificationID),
		zap.String(constvars.LoggingUserIDKey, msg.RecipientID),
	)
}

func (w *Worker) requeueOnError(ctx context.Context, item notificationqueue.QueuedItem, msg notificationqueue.QueueMessage) {
	msg.FailedCount++
	if msg.FailedCount >= w.cfg.Notification.MaxDeliveryFailures {
		if _, err := w.queue.EnqueueToDeadQueue(ctx, &notificationqueue.EnqueueToDLQInput{Message: msg}); err != nil {
			w.log.Info("enqueue to DLQ failed",
				zap.String(constvars.LoggingNotificationIDKey, msg.NotificationID),
				zap.Error(err),
			)
			return
		}
		w.ack(ctx, item)
		w.log.Info("notification moved to DLQ",
			zap.String(constvars.LoggingNotificationIDKey, msg.NotificationID),
			zap.Int("failed_count", msg.FailedCount),
		)
		return
	}

	if _, err := w.queue.Reenqueue(ctx, &notificationqueue.ReenqueueInput{Message: msg}); err != nil {
		w.log.Info("notification reenqueue failed",
			zap.String(constvars.LoggingNotificationIDKey, msg.NotificationID),
			zap.Error(err),
		)
		return
	}
	w.ack(ctx, item)
	w.log.Info("notification delivery failed; requeued to tail",
		zap.String(constvars.LoggingNotificationIDKey, msg.NotificationID),
		zap.Int("failed_count", msg.FailedCount),
	)
}

func (w *Worker) ack(ctx context.Context, item notificationqueue.QueuedItem) {
	if _, err := w.queue.AckMessage(ctx, &notificationqueue.AckMessageInput{DeliveryTag: item.DeliveryTag}); err != nil {
		w.log.Info("notification ack failed",
			zap.Uint64("delivery_tag", item.DeliveryTag),
			zap.Error(err),
		)
	}
}

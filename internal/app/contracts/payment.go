package contracts

import (
	"context"
	"time"

	"teleclinic-service/internal/app/models"
	"teleclinic-service/internal/pkg/dto/requests"
	"teleclinic-service/internal/pkg/dto/responses"
)

type PaymentRepository interface {
	Insert(ctx context.Context, payment *models.Payment) (string, error)
	FindByOrderNo(ctx context.Context, orderNo string) (*models.Payment, error)
	FindLatestByAppointmentID(ctx context.Context, appointmentID string) (*models.Payment, error)

	// MarkCompletedIfPending stamps ApprovedAt and flips PENDING -> COMPLETED.
	// A false return means no pending payment matched (already processed).
	MarkCompletedIfPending(ctx context.Context, appointmentID string, approvedAt time.Time) (bool, error)
	MarkCancelledIfPending(ctx context.Context, appointmentID string) (bool, error)
}

type PaymentUsecase interface {
	CreatePaymentLink(ctx context.Context, session *models.Session, request *requests.CreatePaymentLink) (*responses.PaymentLink, error)
	HandleCallback(ctx context.Context, request *requests.PaymentCallback) error

	// FindByAppointment returns the most recent payment attempt for an
	// appointment, so a patient can check whether a callback landed.
	FindByAppointment(ctx context.Context, session *models.Session, appointmentID string) (*responses.Payment, error)
}

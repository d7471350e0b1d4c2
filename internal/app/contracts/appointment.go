package contracts

import (
	"context"
	"time"

	"teleclinic-service/internal/app/models"
	"teleclinic-service/internal/pkg/dto/requests"
	"teleclinic-service/internal/pkg/dto/responses"
)

type AppointmentRepository interface {
	Insert(ctx context.Context, appointment *models.Appointment) (string, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindByPatient(ctx context.Context, patientID string, page, pageSize int) ([]models.Appointment, int, error)
	FindUpcomingByPatient(ctx context.Context, patientID string, after time.Time) ([]models.Appointment, error)

	// UpdateStatusIf flips the status only when the current status is one of
	// expected, bumping the version. It reports whether a document matched;
	// false means a concurrent or repeated transition, not a storage error.
	UpdateStatusIf(ctx context.Context, appointmentID string, expected []models.AppointmentStatus, next models.AppointmentStatus) (bool, error)

	// SetPriceIf sets the price and forces AWAITING_PAYMENT under the same
	// conditional regime as UpdateStatusIf.
	SetPriceIf(ctx context.Context, appointmentID string, expected []models.AppointmentStatus, price int64) (bool, error)
}

type AppointmentUsecase interface {
	Book(ctx context.Context, session *models.Session, request *requests.BookAppointment) (*responses.Appointment, error)
	SetPrice(ctx context.Context, session *models.Session, request *requests.SetAppointmentPrice) (*responses.Appointment, error)
	Cancel(ctx context.Context, session *models.Session, appointmentID string) error
	Complete(ctx context.Context, session *models.Session, appointmentID string) error
	FindByID(ctx context.Context, session *models.Session, appointmentID string) (*responses.Appointment, error)
	FindAllByPatient(ctx context.Context, session *models.Session, pagination *requests.Pagination) ([]responses.Appointment, int, error)
	Upcoming(ctx context.Context, session *models.Session) ([]responses.Appointment, error)

	// ConfirmPayment is the gateway-callback entry point. It is idempotent:
	// confirming an already-CONFIRMED appointment is a success no-op with no
	// duplicate side effects.
	ConfirmPayment(ctx context.Context, appointmentID string) error
}

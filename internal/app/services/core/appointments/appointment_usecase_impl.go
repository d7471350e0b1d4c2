package appointments

import (
	"context"
	"fmt"
	"sync"
	"time"

	"teleclinic-service/internal/app/contracts"
	"teleclinic-service/internal/app/models"
	"teleclinic-service/internal/pkg/constvars"
	"teleclinic-service/internal/pkg/dto/requests"
	"teleclinic-service/internal/pkg/dto/responses"
	"teleclinic-service/internal/pkg/exceptions"
	"teleclinic-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	PaymentRepository     contracts.PaymentRepository
	NotificationUsecase   contracts.NotificationUsecase
	Log                   *zap.Logger
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	paymentRepository contracts.PaymentRepository,
	notificationUsecase contracts.NotificationUsecase,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		appointmentUsecaseInstance = &appointmentUsecase{
			AppointmentRepository: appointmentRepository,
			PaymentRepository:     paymentRepository,
			NotificationUsecase:   notificationUsecase,
			Log:                   logger,
		}
	})
	return appointmentUsecaseInstance
}

func (uc *appointmentUsecase) Book(ctx context.Context, session *models.Session, request *requests.BookAppointment) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.Book called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	startTime, err := time.Parse(time.RFC3339, request.StartTime)
	if err != nil {
		return nil, exceptions.ErrInvalidTimeFormat(err)
	}

	now := time.Now()
	appointment := &models.Appointment{
		PatientID: session.UserID,
		DoctorID:  request.DoctorID,
		StartTime: startTime,
		Status:    models.AppointmentPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	appointmentID, err := uc.AppointmentRepository.Insert(ctx, appointment)
	if err != nil {
		uc.Log.Error("appointmentUsecase.Book error inserting appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "appointment_booked", requestID,
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	response := buildAppointmentResponse(appointment)
	response.ID = appointmentID
	return response, nil
}

func (uc *appointmentUsecase) SetPrice(ctx context.Context, session *models.Session, request *requests.SetAppointmentPrice) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.SetPrice called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
		zap.Int64("price", request.Price),
	)

	if request.Price <= 0 {
		return nil, exceptions.ErrPriceMustBePositive()
	}

	// Repricing is allowed only before payment. A priced-but-unpaid
	// appointment can be corrected; anything CONFIRMED or beyond is frozen.
	matched, err := uc.AppointmentRepository.SetPriceIf(ctx, request.AppointmentID,
		models.StatusesAllowing(models.AppointmentAwaitingPayment),
		request.Price,
	)
	if err != nil {
		return nil, err
	}

	appointment, findErr := uc.AppointmentRepository.FindByID(ctx, request.AppointmentID)
	if findErr != nil {
		return nil, findErr
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}
	if !matched {
		return nil, exceptions.ErrAppointmentTransition(string(appointment.Status), string(models.AppointmentAwaitingPayment))
	}

	if err := uc.NotificationUsecase.Notify(ctx, appointment.PatientID, models.NotificationPaymentRequired,
		fmt.Sprintf("Your appointment now requires a payment of %d.", request.Price),
		fmt.Sprintf("/appointments/%s", request.AppointmentID),
	); err != nil {
		uc.Log.Error("appointmentUsecase.SetPrice error emitting notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
			zap.Error(err),
		)
	}

	utils.LogBusinessEvent(uc.Log, "appointment_priced", requestID,
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
		zap.Int64("price", request.Price),
	)
	return buildAppointmentResponse(appointment), nil
}

// ConfirmPayment flips AWAITING_PAYMENT to CONFIRMED through a conditional
// update. The zero-match path distinguishes the idempotent repeat (already
// CONFIRMED or COMPLETED, success no-op with no side effects) from a genuine
// conflict (PENDING or CANCELLED).
func (uc *appointmentUsecase) ConfirmPayment(ctx context.Context, appointmentID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.ConfirmPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	matched, err := uc.AppointmentRepository.UpdateStatusIf(ctx, appointmentID,
		models.StatusesAllowing(models.AppointmentConfirmed),
		models.AppointmentConfirmed,
	)
	if err != nil {
		return err
	}

	if !matched {
		appointment, findErr := uc.AppointmentRepository.FindByID(ctx, appointmentID)
		if findErr != nil {
			return findErr
		}
		if appointment == nil {
			return exceptions.ErrAppointmentNotFound(nil)
		}
		switch appointment.Status {
		case models.AppointmentConfirmed, models.AppointmentCompleted:
			uc.Log.Info("appointmentUsecase.ConfirmPayment repeat confirmation, no-op",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			)
			return nil
		default:
			return exceptions.ErrAppointmentTransition(string(appointment.Status), string(models.AppointmentConfirmed))
		}
	}

	approvedAt := time.Now()
	if _, err := uc.PaymentRepository.MarkCompletedIfPending(ctx, appointmentID, approvedAt); err != nil {
		uc.Log.Error("appointmentUsecase.ConfirmPayment error completing payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		return err
	}

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appointment == nil {
		return exceptions.ErrAppointmentNotFound(nil)
	}

	if err := uc.NotificationUsecase.Notify(ctx, appointment.PatientID, models.NotificationPaymentConfirmed,
		"Your payment was received and the appointment is confirmed.",
		fmt.Sprintf("/appointments/%s", appointmentID),
	); err != nil {
		uc.Log.Error("appointmentUsecase.ConfirmPayment error emitting notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
	}

	utils.LogBusinessEvent(uc.Log, "payment_confirmed", requestID,
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return nil
}

func (uc *appointmentUsecase) Cancel(ctx context.Context, session *models.Session, appointmentID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.Cancel called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.findOwnedAppointment(ctx, session, appointmentID)
	if err != nil {
		return err
	}

	matched, err := uc.AppointmentRepository.UpdateStatusIf(ctx, appointmentID,
		models.StatusesAllowing(models.AppointmentCancelled),
		models.AppointmentCancelled,
	)
	if err != nil {
		return err
	}
	if !matched {
		return exceptions.ErrAppointmentTransition(string(appointment.Status), string(models.AppointmentCancelled))
	}

	if _, err := uc.PaymentRepository.MarkCancelledIfPending(ctx, appointmentID); err != nil {
		uc.Log.Error("appointmentUsecase.Cancel error cancelling pending payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		return err
	}

	if err := uc.NotificationUsecase.Notify(ctx, appointment.PatientID, models.NotificationAppointmentCancelled,
		"Your appointment was cancelled.",
		fmt.Sprintf("/appointments/%s", appointmentID),
	); err != nil {
		uc.Log.Error("appointmentUsecase.Cancel error emitting notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	utils.LogBusinessEvent(uc.Log, "appointment_cancelled", requestID,
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return nil
}

func (uc *appointmentUsecase) Complete(ctx context.Context, session *models.Session, appointmentID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.Complete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	matched, err := uc.AppointmentRepository.UpdateStatusIf(ctx, appointmentID,
		models.StatusesAllowing(models.AppointmentCompleted),
		models.AppointmentCompleted,
	)
	if err != nil {
		return err
	}

	appointment, findErr := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if findErr != nil {
		return findErr
	}
	if appointment == nil {
		return exceptions.ErrAppointmentNotFound(nil)
	}
	if !matched {
		return exceptions.ErrAppointmentTransition(string(appointment.Status), string(models.AppointmentCompleted))
	}

	if err := uc.NotificationUsecase.Notify(ctx, appointment.PatientID, models.NotificationAppointmentCompleted,
		"Your appointment is completed. Thank you.",
		fmt.Sprintf("/appointments/%s", appointmentID),
	); err != nil {
		uc.Log.Error("appointmentUsecase.Complete error emitting notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	utils.LogBusinessEvent(uc.Log, "appointment_completed", requestID,
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return nil
}

func (uc *appointmentUsecase) FindByID(ctx context.Context, session *models.Session, appointmentID string) (*responses.Appointment, error) {
	appointment, err := uc.findOwnedAppointment(ctx, session, appointmentID)
	if err != nil {
		return nil, err
	}
	return buildAppointmentResponse(appointment), nil
}

func (uc *appointmentUsecase) FindAllByPatient(ctx context.Context, session *models.Session, pagination *requests.Pagination) ([]responses.Appointment, int, error) {
	appointments, total, err := uc.AppointmentRepository.FindByPatient(ctx, session.UserID, pagination.Page, pagination.PageSize)
	if err != nil {
		return nil, 0, err
	}

	result := make([]responses.Appointment, 0, len(appointments))
	for i := range appointments {
		result = append(result, *buildAppointmentResponse(&appointments[i]))
	}
	return result, total, nil
}

func (uc *appointmentUsecase) Upcoming(ctx context.Context, session *models.Session) ([]responses.Appointment, error) {
	appointments, err := uc.AppointmentRepository.FindUpcomingByPatient(ctx, session.UserID, time.Now())
	if err != nil {
		return nil, err
	}

	result := make([]responses.Appointment, 0, len(appointments))
	for i := range appointments {
		result = append(result, *buildAppointmentResponse(&appointments[i]))
	}
	return result, nil
}

// findOwnedAppointment loads the appointment and enforces that the caller is
// the owning patient, the assigned doctor, or an admin.
func (uc *appointmentUsecase) findOwnedAppointment(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}

	if session.Role != constvars.RoleAdmin &&
		appointment.PatientID != session.UserID &&
		appointment.DoctorID != session.UserID {
		return nil, exceptions.ErrRoleNotAllowed(nil)
	}
	return appointment, nil
}

func buildAppointmentResponse(appointment *models.Appointment) *responses.Appointment {
	return &responses.Appointment{
		ID:        appointment.ID.Hex(),
		PatientID: appointment.PatientID,
		DoctorID:  appointment.DoctorID,
		StartTime: appointment.StartTime,
		Price:     appointment.Price,
		Status:    string(appointment.Status),
		CreatedAt: appointment.CreatedAt,
	}
}

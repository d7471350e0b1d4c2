package vaccinations

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

type vaccinationUsecase struct {
	VaccinationRepository contracts.VaccinationRepository
	NotificationUsecase   contracts.NotificationUsecase
	Log                   *zap.Logger
}

var (
	vaccinationUsecaseInstance contracts.VaccinationUsecase
	onceVaccinationUsecase     sync.Once
)

func NewVaccinationUsecase(
	vaccinationRepository contracts.VaccinationRepository,
	notificationUsecase contracts.NotificationUsecase,
	logger *zap.Logger,
) contracts.VaccinationUsecase {
	onceVaccinationUsecase.Do(func() {
		vaccinationUsecaseInstance = &vaccinationUsecase{
			VaccinationRepository: vaccinationRepository,
			NotificationUsecase:   notificationUsecase,
			Log:                   logger,
		}
	})
	return vaccinationUsecaseInstance
}

func (uc *vaccinationUsecase) Reserve(ctx context.Context, session *models.Session, request *requests.ReserveVaccination) (*responses.VaccinationReservation, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("vaccinationUsecase.Reserve called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	scheduledAt, err := time.Parse(time.RFC3339, request.ScheduledAt)
	if err != nil {
		return nil, exceptions.ErrInvalidTimeFormat(err)
	}

	now := time.Now()
	reservation := &models.VaccinationReservation{
		PatientID:   session.UserID,
		VaccineName: request.VaccineName,
		ScheduledAt: scheduledAt,
		Status:      models.ReservationPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	reservationID, err := uc.VaccinationRepository.Insert(ctx, reservation)
	if err != nil {
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "vaccination_reserved", requestID,
		zap.String(constvars.LoggingReservationIDKey, reservationID),
	)

	response := buildReservationResponse(reservation)
	response.ID = reservationID
	return response, nil
}

func (uc *vaccinationUsecase) Confirm(ctx context.Context, session *models.Session, reservationID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("vaccinationUsecase.Confirm called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReservationIDKey, reservationID),
	)

	matched, err := uc.VaccinationRepository.UpdateStatusIf(ctx, reservationID,
		[]models.ReservationStatus{models.ReservationPending},
		models.ReservationConfirmed,
	)
	if err != nil {
		return err
	}

	reservation, findErr := uc.VaccinationRepository.FindByID(ctx, reservationID)
	if findErr != nil {
		return findErr
	}
	if reservation == nil {
		return exceptions.ErrReservationNotFound(nil)
	}
	if !matched {
		return exceptions.ErrReservationTransition(nil)
	}

	if err := uc.NotificationUsecase.Notify(ctx, reservation.PatientID, models.NotificationVaccinationConfirmed,
		fmt.Sprintf("Your %s vaccination reservation is confirmed.", reservation.VaccineName),
		fmt.Sprintf("/vaccinations/%s", reservationID),
	); err != nil {
		uc.Log.Error("vaccinationUsecase.Confirm error emitting notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	utils.LogBusinessEvent(uc.Log, "vaccination_confirmed", requestID,
		zap.String(constvars.LoggingReservationIDKey, reservationID),
	)
	return nil
}

func (uc *vaccinationUsecase) Cancel(ctx context.Context, session *models.Session, reservationID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("vaccinationUsecase.Cancel called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReservationIDKey, reservationID),
	)

	reservation, err := uc.VaccinationRepository.FindByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if reservation == nil {
		return exceptions.ErrReservationNotFound(nil)
	}
	if session.Role != constvars.RoleAdmin && reservation.PatientID != session.UserID {
		return exceptions.ErrRoleNotAllowed(nil)
	}

	matched, err := uc.VaccinationRepository.UpdateStatusIf(ctx, reservationID,
		[]models.ReservationStatus{models.ReservationPending, models.ReservationConfirmed},
		models.ReservationCancelled,
	)
	if err != nil {
		return err
	}
	if !matched {
		return exceptions.ErrReservationTransition(nil)
	}

	if err := uc.NotificationUsecase.Notify(ctx, reservation.PatientID, models.NotificationVaccinationCancelled,
		fmt.Sprintf("Your %s vaccination reservation was cancelled.", reservation.VaccineName),
		fmt.Sprintf("/vaccinations/%s", reservationID),
	); err != nil {
		uc.Log.Error("vaccinationUsecase.Cancel error emitting notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	utils.LogBusinessEvent(uc.Log, "vaccination_cancelled", requestID,
		zap.String(constvars.LoggingReservationIDKey, reservationID),
	)
	return nil
}

func (uc *vaccinationUsecase) FindAllByPatient(ctx context.Context, session *models.Session, pagination *requests.Pagination) ([]responses.VaccinationReservation, int, error) {
	reservations, total, err := uc.VaccinationRepository.FindByPatient(ctx, session.UserID, pagination.Page, pagination.PageSize)
	if err != nil {
		return nil, 0, err
	}

	result := make([]responses.VaccinationReservation, 0, len(reservations))
	for i := range reservations {
		result = append(result, *buildReservationResponse(&reservations[i]))
	}
	return result, total, nil
}

func buildReservationResponse(reservation *models.VaccinationReservation) *responses.VaccinationReservation {
	return &responses.VaccinationReservation{
		ID:          reservation.ID.Hex(),
		PatientID:   reservation.PatientID,
		VaccineName: reservation.VaccineName,
		ScheduledAt: reservation.ScheduledAt,
		Status:      string(reservation.Status),
		CreatedAt:   reservation.CreatedAt,
	}
}

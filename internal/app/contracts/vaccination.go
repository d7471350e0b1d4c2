package contracts

import (
	"context"

	"teleclinic-service/internal/app/models"
	"teleclinic-service/internal/pkg/dto/requests"
	"teleclinic-service/internal/pkg/dto/responses"
)

type VaccinationRepository interface {
	Insert(ctx context.Context, reservation *models.VaccinationReservation) (string, error)
	FindByID(ctx context.Context, reservationID string) (*models.VaccinationReservation, error)
	FindByPatient(ctx context.Context, patientID string, page, pageSize int) ([]models.VaccinationReservation, int, error)
	UpdateStatusIf(ctx context.Context, reservationID string, expected []models.ReservationStatus, next models.ReservationStatus) (bool, error)
}

type VaccinationUsecase interface {
	Reserve(ctx context.Context, session *models.Session, request *requests.ReserveVaccination) (*responses.VaccinationReservation, error)
	Confirm(ctx context.Context, session *models.Session, reservationID string) error
	Cancel(ctx context.Context, session *models.Session, reservationID string) error
	FindAllByPatient(ctx context.Context, session *models.Session, pagination *requests.Pagination) ([]responses.VaccinationReservation, int, error)
}

package contracts

import (
	"context"

	"teleclinic-service/internal/app/models"
	"teleclinic-service/internal/pkg/dto/requests"
	"teleclinic-service/internal/pkg/dto/responses"
)

type PrescriptionRepository interface {
	Insert(ctx context.Context, prescription *models.Prescription) (string, error)
	FindByID(ctx context.Context, prescriptionID string) (*models.Prescription, error)
	FindByPatient(ctx context.Context, patientID string, page, pageSize int) ([]models.Prescription, int, error)
}

type PrescriptionUsecase interface {
	Create(ctx context.Context, session *models.Session, request *requests.CreatePrescription) (*responses.Prescription, error)
	FindByID(ctx context.Context, session *models.Session, prescriptionID string) (*responses.Prescription, error)
	FindAllByPatient(ctx context.Context, session *models.Session, pagination *requests.Pagination) ([]responses.Prescription, int, error)
}

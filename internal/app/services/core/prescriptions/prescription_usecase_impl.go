package prescriptions

import (
	"bytes"
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
	"teleclinic-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const attachmentURLExpiry = 15 * time.Minute

type prescriptionUsecase struct {
	PrescriptionRepository contracts.PrescriptionRepository
	Storage                contracts.Storage
	NotificationUsecase    contracts.NotificationUsecase
	DriverConfig           *config.DriverConfig
	Log                    *zap.Logger
}

var (
	prescriptionUsecaseInstance contracts.PrescriptionUsecase
	oncePrescriptionUsecase     sync.Once
)

func NewPrescriptionUsecase(
	prescriptionRepository contracts.PrescriptionRepository,
	minioStorage contracts.Storage,
	notificationUsecase contracts.NotificationUsecase,
	driverConfig *config.DriverConfig,
	logger *zap.Logger,
) contracts.PrescriptionUsecase {
	oncePrescriptionUsecase.Do(func() {
		prescriptionUsecaseInstance = &prescriptionUsecase{
			PrescriptionRepository: prescriptionRepository,
			Storage:                minioStorage,
			NotificationUsecase:    notificationUsecase,
			DriverConfig:           driverConfig,
			Log:                    logger,
		}
	})
	return prescriptionUsecaseInstance
}

func (uc *prescriptionUsecase) Create(ctx context.Context, session *models.Session, request *requests.CreatePrescription) (*responses.Prescription, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("prescriptionUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	var attachmentObjectName string
	if len(request.Attachment) > 0 {
		objectName := fmt.Sprintf("prescriptions/%s/%s_%s", request.PatientID, uuid.NewString(), request.AttachmentName)
		uploaded, err := uc.Storage.UploadObject(ctx,
			bytes.NewReader(request.Attachment),
			int64(len(request.Attachment)),
			objectName,
			request.AttachmentType,
			uc.DriverConfig.Minio.BucketName,
		)
		if err != nil {
			uc.Log.Error("prescriptionUsecase.Create error uploading attachment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		attachmentObjectName = uploaded
	}

	medications := make([]models.MedicationItem, 0, len(request.Medications))
	for _, item := range request.Medications {
		medications = append(medications, models.MedicationItem{
			Name:     item.Name,
			Dosage:   item.Dosage,
			Duration: item.Duration,
		})
	}

	prescription := &models.Prescription{
		PatientID:            request.PatientID,
		DoctorID:             session.UserID,
		AppointmentID:        request.AppointmentID,
		Medications:          medications,
		Notes:                request.Notes,
		AttachmentObjectName: attachmentObjectName,
		CreatedAt:            time.Now(),
	}

	prescriptionID, err := uc.PrescriptionRepository.Insert(ctx, prescription)
	if err != nil {
		return nil, err
	}

	if err := uc.NotificationUsecase.Notify(ctx, request.PatientID, models.NotificationPrescriptionIssued,
		"A new prescription was issued for you.",
		fmt.Sprintf("/prescriptions/%s", prescriptionID),
	); err != nil {
		uc.Log.Error("prescriptionUsecase.Create error emitting notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	utils.LogBusinessEvent(uc.Log, "prescription_issued", requestID,
		zap.String(constvars.LoggingPrescriptionIDKey, prescriptionID),
		zap.String(constvars.LoggingUserIDKey, request.PatientID),
	)

	response := uc.buildPrescriptionResponse(ctx, prescription)
	response.ID = prescriptionID
	return response, nil
}

func (uc *prescriptionUsecase) FindByID(ctx context.Context, session *models.Session, prescriptionID string) (*responses.Prescription, error) {
	prescription, err := uc.PrescriptionRepository.FindByID(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}
	if prescription == nil {
		return nil, exceptions.ErrPrescriptionNotFound(nil)
	}

	if session.Role != constvars.RoleAdmin &&
		prescription.PatientID != session.UserID &&
		prescription.DoctorID != session.UserID {
		return nil, exceptions.ErrRoleNotAllowed(nil)
	}

	return uc.buildPrescriptionResponse(ctx, prescription), nil
}

func (uc *prescriptionUsecase) FindAllByPatient(ctx context.Context, session *models.Session, pagination *requests.Pagination) ([]responses.Prescription, int, error) {
	prescriptions, total, err := uc.PrescriptionRepository.FindByPatient(ctx, session.UserID, pagination.Page, pagination.PageSize)
	if err != nil {
		return nil, 0, err
	}

	result := make([]responses.Prescription, 0, len(prescriptions))
	for i := range prescriptions {
		result = append(result, *uc.buildPrescriptionResponse(ctx, &prescriptions[i]))
	}
	return result, total, nil
}

func (uc *prescriptionUsecase) buildPrescriptionResponse(ctx context.Context, prescription *models.Prescription) *responses.Prescription {
	medications := make([]responses.MedicationItem, 0, len(prescription.Medications))
	for _, item := range prescription.Medications {
		medications = append(medications, responses.MedicationItem{
			Name:     item.Name,
			Dosage:   item.Dosage,
			Duration: item.Duration,
		})
	}

	response := &responses.Prescription{
		ID:            prescription.ID.Hex(),
		PatientID:     prescription.PatientID,
		DoctorID:      prescription.DoctorID,
		AppointmentID: prescription.AppointmentID,
		Medications:   medications,
		Notes:         prescription.Notes,
		CreatedAt:     prescription.CreatedAt,
	}

	if prescription.AttachmentObjectName != "" {
		url, err := uc.Storage.PresignedGetURL(ctx, uc.DriverConfig.Minio.BucketName, prescription.AttachmentObjectName, attachmentURLExpiry)
		if err != nil {
			uc.Log.Error("prescriptionUsecase error presigning attachment URL",
				zap.String(constvars.LoggingPrescriptionIDKey, response.ID),
				zap.Error(err),
			)
		} else {
			response.AttachmentURL = url
		}
	}
	return response
}

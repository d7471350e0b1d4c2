package prescriptions

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"teleclinic-service/internal/app/config"
	"teleclinic-service/internal/app/contracts"
	"teleclinic-service/internal/app/models"
	"teleclinic-service/internal/pkg/constvars"
	"teleclinic-service/internal/pkg/dto/requests"
	"teleclinic-service/internal/pkg/dto/responses"
	"teleclinic-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type MockPrescriptionRepository struct {
	mock.Mock
}

func (m *MockPrescriptionRepository) Insert(ctx context.Context, prescription *models.Prescription) (string, error) {
	args := m.Called(ctx, prescription)
	return args.String(0), args.Error(1)
}

func (m *MockPrescriptionRepository) FindByID(ctx context.Context, prescriptionID string) (*models.Prescription, error) {
	args := m.Called(ctx, prescriptionID)
	prescription, _ := args.Get(0).(*models.Prescription)
	return prescription, args.Error(1)
}

func (m *MockPrescriptionRepository) FindByPatient(ctx context.Context, patientID string, page, pageSize int) ([]models.Prescription, int, error) {
	args := m.Called(ctx, patientID, page, pageSize)
	prescriptions, _ := args.Get(0).([]models.Prescription)
	return prescriptions, args.Int(1), args.Error(2)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadObject(ctx context.Context, reader io.Reader, size int64, objectName, contentType, bucketName string) (string, error) {
	args := m.Called(ctx, reader, size, objectName, contentType, bucketName)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) PresignedGetURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

type MockNotificationUsecase struct {
	mock.Mock
}

func (m *MockNotificationUsecase) Notify(ctx context.Context, recipientID string, notificationType models.NotificationType, message, link string) error {
	args := m.Called(ctx, recipientID, notificationType, message, link)
	return args.Error(0)
}

func (m *MockNotificationUsecase) Poll(ctx context.Context, session *models.Session, request *requests.PollNotifications) ([]responses.Notification, error) {
	args := m.Called(ctx, session, request)
	notifications, _ := args.Get(0).([]responses.Notification)
	return notifications, args.Error(1)
}

func (m *MockNotificationUsecase) ListByRecipient(ctx context.Context, session *models.Session, pagination *requests.Pagination) ([]responses.Notification, int, error) {
	args := m.Called(ctx, session, pagination)
	notifications, _ := args.Get(0).([]responses.Notification)
	return notifications, args.Int(1), args.Error(2)
}

func (m *MockNotificationUsecase) MarkRead(ctx context.Context, session *models.Session, notificationID string) error {
	args := m.Called(ctx, session, notificationID)
	return args.Error(0)
}

func newTestPrescriptionUsecase() (*prescriptionUsecase, *MockPrescriptionRepository, *MockStorage, *MockNotificationUsecase) {
	prescriptionRepo := new(MockPrescriptionRepository)
	storage := new(MockStorage)
	notificationUC := new(MockNotificationUsecase)
	uc := &prescriptionUsecase{
		PrescriptionRepository: prescriptionRepo,
		Storage:                storage,
		NotificationUsecase:    notificationUC,
		DriverConfig: &config.DriverConfig{
			Minio: config.Minio{BucketName: "teleclinic"},
		},
		Log: zap.NewNop(),
	}
	return uc, prescriptionRepo, storage, notificationUC
}

func doctorSession() *models.Session {
	return &models.Session{
		SessionID: "session-doc",
		UserID:    "doctor-1",
		Role:      constvars.RoleDoctor,
	}
}

func assertStatusCode(t *testing.T, err error, want int) {
	t.Helper()
	var customErr *exceptions.CustomError
	assert.ErrorAs(t, err, &customErr)
	assert.Equal(t, want, customErr.StatusCode)
}

func createPrescriptionFixture() *requests.CreatePrescription {
	return &requests.CreatePrescription{
		PatientID:     "patient-1",
		AppointmentID: "appointment-1",
		Medications: []requests.MedicationItem{
			{Name: "Amoxicillin", Dosage: "500mg", Duration: "7 days"},
		},
		Notes: "Take with food",
	}
}

func TestPrescriptionUsecase_Create(t *testing.T) {
	t.Run("Issuing a prescription notifies the patient once", func(t *testing.T) {
		uc, prescriptionRepo, _, notificationUC := newTestPrescriptionUsecase()

		prescriptionID := primitive.NewObjectID().Hex()
		prescriptionRepo.On("Insert", mock.Anything, mock.MatchedBy(func(prescription *models.Prescription) bool {
			return prescription.PatientID == "patient-1" &&
				prescription.DoctorID == "doctor-1" &&
				len(prescription.Medications) == 1 &&
				prescription.Medications[0].Name == "Amoxicillin"
		})).Return(prescriptionID, nil)
		notificationUC.On("Notify", mock.Anything, "patient-1", models.NotificationPrescriptionIssued,
			mock.Anything, "/prescriptions/"+prescriptionID,
		).Return(nil)

		result, err := uc.Create(context.Background(), doctorSession(), createPrescriptionFixture())

		assert.NoError(t, err)
		assert.Equal(t, prescriptionID, result.ID)
		prescriptionRepo.AssertExpectations(t)
		notificationUC.AssertNumberOfCalls(t, "Notify", 1)
	})

	t.Run("An attachment is uploaded before the record is stored", func(t *testing.T) {
		uc, prescriptionRepo, storage, notificationUC := newTestPrescriptionUsecase()

		request := createPrescriptionFixture()
		request.Attachment = []byte("%PDF-1.4 fake")
		request.AttachmentName = "rx.pdf"
		request.AttachmentType = "application/pdf"

		storage.On("UploadObject", mock.Anything, mock.Anything, int64(len(request.Attachment)),
			mock.MatchedBy(func(objectName string) bool {
				return strings.HasPrefix(objectName, "prescriptions/patient-1/") &&
					strings.HasSuffix(objectName, "_rx.pdf")
			}),
			"application/pdf", "teleclinic",
		).Return("prescriptions/patient-1/uploaded_rx.pdf", nil)
		prescriptionRepo.On("Insert", mock.Anything, mock.MatchedBy(func(prescription *models.Prescription) bool {
			return prescription.AttachmentObjectName == "prescriptions/patient-1/uploaded_rx.pdf"
		})).Return(primitive.NewObjectID().Hex(), nil)
		notificationUC.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil)
		storage.On("PresignedGetURL", mock.Anything, "teleclinic", "prescriptions/patient-1/uploaded_rx.pdf", mock.Anything).
			Return("https://minio.example.com/presigned", nil)

		result, err := uc.Create(context.Background(), doctorSession(), request)

		assert.NoError(t, err)
		assert.Equal(t, "https://minio.example.com/presigned", result.AttachmentURL)
		storage.AssertExpectations(t)
	})

	t.Run("A failed upload aborts the prescription", func(t *testing.T) {
		uc, prescriptionRepo, storage, notificationUC := newTestPrescriptionUsecase()

		request := createPrescriptionFixture()
		request.Attachment = []byte("broken")
		request.AttachmentName = "rx.pdf"
		request.AttachmentType = "application/pdf"

		storage.On("UploadObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", assert.AnError)

		_, err := uc.Create(context.Background(), doctorSession(), request)

		assert.Error(t, err)
		prescriptionRepo.AssertNotCalled(t, "Insert")
		notificationUC.AssertNotCalled(t, "Notify")
	})

	t.Run("A failed insert emits no notification", func(t *testing.T) {
		uc, prescriptionRepo, _, notificationUC := newTestPrescriptionUsecase()

		prescriptionRepo.On("Insert", mock.Anything, mock.Anything).Return("", assert.AnError)

		_, err := uc.Create(context.Background(), doctorSession(), createPrescriptionFixture())

		assert.Error(t, err)
		notificationUC.AssertNotCalled(t, "Notify")
	})

	t.Run("A broken notification pipeline does not undo the prescription", func(t *testing.T) {
		uc, prescriptionRepo, _, notificationUC := newTestPrescriptionUsecase()

		prescriptionRepo.On("Insert", mock.Anything, mock.Anything).
			Return(primitive.NewObjectID().Hex(), nil)
		notificationUC.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(assert.AnError)

		result, err := uc.Create(context.Background(), doctorSession(), createPrescriptionFixture())

		assert.NoError(t, err)
		assert.NotEmpty(t, result.ID)
	})
}

func TestPrescriptionUsecase_FindByID(t *testing.T) {
	prescriptionID := primitive.NewObjectID()

	storedPrescription := func() *models.Prescription {
		return &models.Prescription{
			ID:        prescriptionID,
			PatientID: "patient-1",
			DoctorID:  "doctor-1",
			Medications: []models.MedicationItem{
				{Name: "Amoxicillin", Dosage: "500mg"},
			},
		}
	}

	t.Run("The patient can read their own prescription", func(t *testing.T) {
		uc, prescriptionRepo, _, _ := newTestPrescriptionUsecase()

		prescriptionRepo.On("FindByID", mock.Anything, prescriptionID.Hex()).
			Return(storedPrescription(), nil)

		session := &models.Session{SessionID: "session-1", UserID: "patient-1", Role: constvars.RolePatient}
		result, err := uc.FindByID(context.Background(), session, prescriptionID.Hex())

		assert.NoError(t, err)
		assert.Equal(t, "Amoxicillin", result.Medications[0].Name)
	})

	t.Run("An unrelated user cannot read it", func(t *testing.T) {
		uc, prescriptionRepo, _, _ := newTestPrescriptionUsecase()

		prescriptionRepo.On("FindByID", mock.Anything, prescriptionID.Hex()).
			Return(storedPrescription(), nil)

		stranger := &models.Session{SessionID: "session-2", UserID: "patient-2", Role: constvars.RolePatient}
		_, err := uc.FindByID(context.Background(), stranger, prescriptionID.Hex())

		assertStatusCode(t, err, constvars.StatusForbidden)
	})

	t.Run("An unknown prescription is not found", func(t *testing.T) {
		uc, prescriptionRepo, _, _ := newTestPrescriptionUsecase()

		prescriptionRepo.On("FindByID", mock.Anything, prescriptionID.Hex()).Return(nil, nil)

		_, err := uc.FindByID(context.Background(), doctorSession(), prescriptionID.Hex())

		assertStatusCode(t, err, constvars.StatusNotFound)
	})
}

var _ contracts.PrescriptionRepository = (*MockPrescriptionRepository)(nil)
var _ contracts.Storage = (*MockStorage)(nil)
var _ contracts.NotificationUsecase = (*MockNotificationUsecase)(nil)

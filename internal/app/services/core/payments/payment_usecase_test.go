package payments

import (
	"context"
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

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Insert(ctx context.Context, appointment *models.Appointment) (string, error) {
	args := m.Called(ctx, appointment)
	return args.String(0), args.Error(1)
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

func (m *MockAppointmentRepository) FindByPatient(ctx context.Context, patientID string, page, pageSize int) ([]models.Appointment, int, error) {
	args := m.Called(ctx, patientID, page, pageSize)
	appointments, _ := args.Get(0).([]models.Appointment)
	return appointments, args.Int(1), args.Error(2)
}

func (m *MockAppointmentRepository) FindUpcomingByPatient(ctx context.Context, patientID string, after time.Time) ([]models.Appointment, error) {
	args := m.Called(ctx, patientID, after)
	appointments, _ := args.Get(0).([]models.Appointment)
	return appointments, args.Error(1)
}

func (m *MockAppointmentRepository) UpdateStatusIf(ctx context.Context, appointmentID string, expected []models.AppointmentStatus, next models.AppointmentStatus) (bool, error) {
	args := m.Called(ctx, appointmentID, expected, next)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) SetPriceIf(ctx context.Context, appointmentID string, expected []models.AppointmentStatus, price int64) (bool, error) {
	args := m.Called(ctx, appointmentID, expected, price)
	return args.Bool(0), args.Error(1)
}

type MockAppointmentUsecase struct {
	mock.Mock
}

func (m *MockAppointmentUsecase) Book(ctx context.Context, session *models.Session, request *requests.BookAppointment) (*responses.Appointment, error) {
	args := m.Called(ctx, session, request)
	appointment, _ := args.Get(0).(*responses.Appointment)
	return appointment, args.Error(1)
}

func (m *MockAppointmentUsecase) SetPrice(ctx context.Context, session *models.Session, request *requests.SetAppointmentPrice) (*responses.Appointment, error) {
	args := m.Called(ctx, session, request)
	appointment, _ := args.Get(0).(*responses.Appointment)
	return appointment, args.Error(1)
}

func (m *MockAppointmentUsecase) Cancel(ctx context.Context, session *models.Session, appointmentID string) error {
	args := m.Called(ctx, session, appointmentID)
	return args.Error(0)
}

func (m *MockAppointmentUsecase) Complete(ctx context.Context, session *models.Session, appointmentID string) error {
	args := m.Called(ctx, session, appointmentID)
	return args.Error(0)
}

func (m *MockAppointmentUsecase) FindByID(ctx context.Context, session *models.Session, appointmentID string) (*responses.Appointment, error) {
	args := m.Called(ctx, session, appointmentID)
	appointment, _ := args.Get(0).(*responses.Appointment)
	return appointment, args.Error(1)
}

func (m *MockAppointmentUsecase) FindAllByPatient(ctx context.Context, session *models.Session, pagination *requests.Pagination) ([]responses.Appointment, int, error) {
	args := m.Called(ctx, session, pagination)
	appointments, _ := args.Get(0).([]responses.Appointment)
	return appointments, args.Int(1), args.Error(2)
}

func (m *MockAppointmentUsecase) Upcoming(ctx context.Context, session *models.Session) ([]responses.Appointment, error) {
	args := m.Called(ctx, session)
	appointments, _ := args.Get(0).([]responses.Appointment)
	return appointments, args.Error(1)
}

func (m *MockAppointmentUsecase) ConfirmPayment(ctx context.Context, appointmentID string) error {
	args := m.Called(ctx, appointmentID)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Insert(ctx context.Context, payment *models.Payment) (string, error) {
	args := m.Called(ctx, payment)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentRepository) FindByOrderNo(ctx context.Context, orderNo string) (*models.Payment, error) {
	args := m.Called(ctx, orderNo)
	payment, _ := args.Get(0).(*models.Payment)
	return payment, args.Error(1)
}

func (m *MockPaymentRepository) FindLatestByAppointmentID(ctx context.Context, appointmentID string) (*models.Payment, error) {
	args := m.Called(ctx, appointmentID)
	payment, _ := args.Get(0).(*models.Payment)
	return payment, args.Error(1)
}

func (m *MockPaymentRepository) MarkCompletedIfPending(ctx context.Context, appointmentID string, approvedAt time.Time) (bool, error) {
	args := m.Called(ctx, appointmentID, approvedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRepository) MarkCancelledIfPending(ctx context.Context, appointmentID string) (bool, error) {
	args := m.Called(ctx, appointmentID)
	return args.Bool(0), args.Error(1)
}

type MockGatewayService struct {
	mock.Mock
}

func (m *MockGatewayService) BuildPaymentLink(ctx context.Context, input *contracts.PaymentLinkInput) (string, error) {
	args := m.Called(ctx, input)
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

type paymentTestMocks struct {
	appointmentRepo *MockAppointmentRepository
	appointmentUC   *MockAppointmentUsecase
	paymentRepo     *MockPaymentRepository
	gateway         *MockGatewayService
	notificationUC  *MockNotificationUsecase
}

func newTestPaymentUsecase() (*paymentUsecase, *paymentTestMocks) {
	mocks := &paymentTestMocks{
		appointmentRepo: new(MockAppointmentRepository),
		appointmentUC:   new(MockAppointmentUsecase),
		paymentRepo:     new(MockPaymentRepository),
		gateway:         new(MockGatewayService),
		notificationUC:  new(MockNotificationUsecase),
	}

	uc := &paymentUsecase{
		AppointmentRepository: mocks.appointmentRepo,
		AppointmentUsecase:    mocks.appointmentUC,
		PaymentRepository:     mocks.paymentRepo,
		GatewayService:        mocks.gateway,
		NotificationUsecase:   mocks.notificationUC,
		InternalConfig: &config.InternalConfig{
			PaymentGateway: config.PaymentGateway{
				ProductName: "Teleconsultation",
			},
		},
		Log: zap.NewNop(),
	}
	return uc, mocks
}

func patientSession() *models.Session {
	return &models.Session{
		SessionID: "session-1",
		UserID:    "patient-1",
		Username:  "patient1",
		Email:     "patient1@example.com",
		Fullname:  "Patient One",
		Role:      constvars.RolePatient,
	}
}

func assertStatusCode(t *testing.T, err error, want int) {
	t.Helper()
	var customErr *exceptions.CustomError
	assert.ErrorAs(t, err, &customErr)
	assert.Equal(t, want, customErr.StatusCode)
}

func TestPaymentUsecase_CreatePaymentLink(t *testing.T) {
	appointmentID := primitive.NewObjectID()
	price := int64(15000)

	t.Run("Returns an order number and redirect URL for a priced appointment", func(t *testing.T) {
		uc, mocks := newTestPaymentUsecase()

		mocks.appointmentRepo.On("FindByID", mock.Anything, appointmentID.Hex()).Return(&models.Appointment{
			ID:        appointmentID,
			PatientID: "patient-1",
			Price:     &price,
			Status:    models.AppointmentAwaitingPayment,
		}, nil)
		mocks.gateway.On("BuildPaymentLink", mock.Anything, mock.MatchedBy(func(input *contracts.PaymentLinkInput) bool {
			return input.Amount == price &&
				input.ProductName == "Teleconsultation" &&
				input.BuyerName == "Patient One" &&
				input.BuyerEmail == "patient1@example.com" &&
				input.OrderNo != ""
		})).Return("https://pay.example.com/checkout?ORDERNO=abc", nil)
		mocks.paymentRepo.On("Insert", mock.Anything, mock.MatchedBy(func(p *models.Payment) bool {
			return p.AppointmentID == appointmentID.Hex() &&
				p.Amount == price &&
				p.Status == models.PaymentPending
		})).Return(primitive.NewObjectID().Hex(), nil)

		result, err := uc.CreatePaymentLink(context.Background(), patientSession(), &requests.CreatePaymentLink{
			AppointmentID: appointmentID.Hex(),
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, result.OrderNo)
		assert.Equal(t, "https://pay.example.com/checkout?ORDERNO=abc", result.PaymentURL)
		mocks.paymentRepo.AssertExpectations(t)
	})

	t.Run("Rejects an appointment without a price", func(t *testing.T) {
		uc, mocks := newTestPaymentUsecase()

		mocks.appointmentRepo.On("FindByID", mock.Anything, appointmentID.Hex()).Return(&models.Appointment{
			ID:        appointmentID,
			PatientID: "patient-1",
			Status:    models.AppointmentPending,
		}, nil)

		_, err := uc.CreatePaymentLink(context.Background(), patientSession(), &requests.CreatePaymentLink{
			AppointmentID: appointmentID.Hex(),
		})

		assertStatusCode(t, err, constvars.StatusBadRequest)
		mocks.gateway.AssertNotCalled(t, "BuildPaymentLink")
		mocks.paymentRepo.AssertNotCalled(t, "Insert")
	})

	t.Run("Rejects a caller who does not own the appointment", func(t *testing.T) {
		uc, mocks := newTestPaymentUsecase()

		mocks.appointmentRepo.On("FindByID", mock.Anything, appointmentID.Hex()).Return(&models.Appointment{
			ID:        appointmentID,
			PatientID: "someone-else",
			Price:     &price,
		}, nil)

		_, err := uc.CreatePaymentLink(context.Background(), patientSession(), &requests.CreatePaymentLink{
			AppointmentID: appointmentID.Hex(),
		})

		assertStatusCode(t, err, constvars.StatusForbidden)
	})

	t.Run("Unknown appointment returns not found", func(t *testing.T) {
		uc, mocks := newTestPaymentUsecase()

		mocks.appointmentRepo.On("FindByID", mock.Anything, appointmentID.Hex()).Return(nil, nil)

		_, err := uc.CreatePaymentLink(context.Background(), patientSession(), &requests.CreatePaymentLink{
			AppointmentID: appointmentID.Hex(),
		})

		assertStatusCode(t, err, constvars.StatusNotFound)
	})

	t.Run("Does not persist a payment when the gateway fails", func(t *testing.T) {
		uc, mocks := newTestPaymentUsecase()

		mocks.appointmentRepo.On("FindByID", mock.Anything, appointmentID.Hex()).Return(&models.Appointment{
			ID:        appointmentID,
			PatientID: "patient-1",
			Price:     &price,
		}, nil)
		mocks.gateway.On("BuildPaymentLink", mock.Anything, mock.Anything).
			Return("", exceptions.ErrHashServiceUnreachable(nil))

		_, err := uc.CreatePaymentLink(context.Background(), patientSession(), &requests.CreatePaymentLink{
			AppointmentID: appointmentID.Hex(),
		})

		assert.Error(t, err)
		mocks.paymentRepo.AssertNotCalled(t, "Insert")
	})
}

func TestPaymentUsecase_HandleCallback(t *testing.T) {
	appointmentID := primitive.NewObjectID().Hex()

	t.Run("Success result confirms the appointment", func(t *testing.T) {
		uc, mocks := newTestPaymentUsecase()

		mocks.appointmentUC.On("ConfirmPayment", mock.Anything, appointmentID).Return(nil)

		err := uc.HandleCallback(context.Background(), &requests.PaymentCallback{
			AppointmentID: appointmentID,
			Result:        "SUCCESS",
		})

		assert.NoError(t, err)
		mocks.appointmentUC.AssertExpectations(t)
	})

	t.Run("Result matching is case insensitive", func(t *testing.T) {
		uc, mocks := newTestPaymentUsecase()

		mocks.appointmentUC.On("ConfirmPayment", mock.Anything, appointmentID).Return(nil)

		err := uc.HandleCallback(context.Background(), &requests.PaymentCallback{
			AppointmentID: appointmentID,
			Result:        "success",
		})

		assert.NoError(t, err)
		mocks.appointmentUC.AssertExpectations(t)
	})

	t.Run("Order number resolves the appointment when no id is given", func(t *testing.T) {
		uc, mocks := newTestPaymentUsecase()

		mocks.paymentRepo.On("FindByOrderNo", mock.Anything, "order-123").Return(&models.Payment{
			AppointmentID: appointmentID,
			OrderNo:       "order-123",
			Status:        models.PaymentPending,
		}, nil)
		mocks.appointmentUC.On("ConfirmPayment", mock.Anything, appointmentID).Return(nil)

		err := uc.HandleCallback(context.Background(), &requests.PaymentCallback{
			OrderNo: "order-123",
			Result:  "SUCCESS",
		})

		assert.NoError(t, err)
		mocks.appointmentUC.AssertExpectations(t)
	})

	t.Run("Unknown order number returns not found", func(t *testing.T) {
		uc, mocks := newTestPaymentUsecase()

		mocks.paymentRepo.On("FindByOrderNo", mock.Anything, "order-missing").Return(nil, nil)

		err := uc.HandleCallback(context.Background(), &requests.PaymentCallback{
			OrderNo: "order-missing",
			Result:  "SUCCESS",
		})

		assertStatusCode(t, err, constvars.StatusNotFound)
	})

	t.Run("Callback without appointment id or order number is rejected", func(t *testing.T) {
		uc, _ := newTestPaymentUsecase()

		err := uc.HandleCallback(context.Background(), &requests.PaymentCallback{
			Result: "SUCCESS",
		})

		assertStatusCode(t, err, constvars.StatusBadRequest)
	})

	t.Run("Callback without a result is rejected", func(t *testing.T) {
		uc, mocks := newTestPaymentUsecase()

		err := uc.HandleCallback(context.Background(), &requests.PaymentCallback{
			AppointmentID: appointmentID,
		})

		assertStatusCode(t, err, constvars.StatusBadRequest)
		mocks.appointmentUC.AssertNotCalled(t, "ConfirmPayment")
	})

	t.Run("Failure result voids the pending payment and alerts the patient", func(t *testing.T) {
		uc, mocks := newTestPaymentUsecase()

		mocks.paymentRepo.On("MarkCancelledIfPending", mock.Anything, appointmentID).Return(true, nil)
		mocks.appointmentRepo.On("FindByID", mock.Anything, appointmentID).Return(&models.Appointment{
			PatientID: "patient-1",
			Status:    models.AppointmentAwaitingPayment,
		}, nil)
		mocks.notificationUC.On("Notify", mock.Anything, "patient-1", models.NotificationPaymentCancelled, mock.Anything, mock.Anything).Return(nil)

		err := uc.HandleCallback(context.Background(), &requests.PaymentCallback{
			AppointmentID: appointmentID,
			Result:        "FAIL",
		})

		assert.NoError(t, err)
		mocks.notificationUC.AssertNumberOfCalls(t, "Notify", 1)
		mocks.appointmentUC.AssertNotCalled(t, "ConfirmPayment")
	})

	t.Run("Repeated failure callback is a quiet no-op", func(t *testing.T) {
		uc, mocks := newTestPaymentUsecase()

		mocks.paymentRepo.On("MarkCancelledIfPending", mock.Anything, appointmentID).Return(false, nil)

		err := uc.HandleCallback(context.Background(), &requests.PaymentCallback{
			AppointmentID: appointmentID,
			Result:        "FAIL",
		})

		assert.NoError(t, err)
		mocks.notificationUC.AssertNotCalled(t, "Notify")
	})
}

func TestPaymentUsecase_FindByAppointment(t *testing.T) {
	appointmentID := primitive.NewObjectID()
	price := int64(15000)

	t.Run("Returns the latest payment attempt for the owner", func(t *testing.T) {
		uc, mocks := newTestPaymentUsecase()

		approvedAt := time.Now()
		mocks.appointmentRepo.On("FindByID", mock.Anything, appointmentID.Hex()).Return(&models.Appointment{
			ID:        appointmentID,
			PatientID: "patient-1",
			Price:     &price,
			Status:    models.AppointmentConfirmed,
		}, nil)
		mocks.paymentRepo.On("FindLatestByAppointmentID", mock.Anything, appointmentID.Hex()).Return(&models.Payment{
			ID:            primitive.NewObjectID(),
			AppointmentID: appointmentID.Hex(),
			OrderNo:       "order-123",
			Amount:        price,
			Status:        models.PaymentCompleted,
			ApprovedAt:    &approvedAt,
		}, nil)

		result, err := uc.FindByAppointment(context.Background(), patientSession(), appointmentID.Hex())

		assert.NoError(t, err)
		assert.Equal(t, "order-123", result.OrderNo)
		assert.Equal(t, price, result.Amount)
		assert.Equal(t, string(models.PaymentCompleted), result.Status)
		assert.NotNil(t, result.ApprovedAt)
		mocks.paymentRepo.AssertExpectations(t)
	})

	t.Run("An appointment that never requested a link has no payment", func(t *testing.T) {
		uc, mocks := newTestPaymentUsecase()

		mocks.appointmentRepo.On("FindByID", mock.Anything, appointmentID.Hex()).Return(&models.Appointment{
			ID:        appointmentID,
			PatientID: "patient-1",
			Status:    models.AppointmentPending,
		}, nil)
		mocks.paymentRepo.On("FindLatestByAppointmentID", mock.Anything, appointmentID.Hex()).Return(nil, nil)

		_, err := uc.FindByAppointment(context.Background(), patientSession(), appointmentID.Hex())

		assertStatusCode(t, err, constvars.StatusNotFound)
	})

	t.Run("Another patient cannot read the payment", func(t *testing.T) {
		uc, mocks := newTestPaymentUsecase()

		mocks.appointmentRepo.On("FindByID", mock.Anything, appointmentID.Hex()).Return(&models.Appointment{
			ID:        appointmentID,
			PatientID: "someone-else",
			Status:    models.AppointmentConfirmed,
		}, nil)

		_, err := uc.FindByAppointment(context.Background(), patientSession(), appointmentID.Hex())

		assertStatusCode(t, err, constvars.StatusForbidden)
		mocks.paymentRepo.AssertNotCalled(t, "FindLatestByAppointmentID")
	})

	t.Run("Unknown appointment is not found", func(t *testing.T) {
		uc, mocks := newTestPaymentUsecase()

		mocks.appointmentRepo.On("FindByID", mock.Anything, appointmentID.Hex()).Return(nil, nil)

		_, err := uc.FindByAppointment(context.Background(), patientSession(), appointmentID.Hex())

		assertStatusCode(t, err, constvars.StatusNotFound)
		mocks.paymentRepo.AssertNotCalled(t, "FindLatestByAppointmentID")
	})
}

var _ contracts.AppointmentRepository = (*MockAppointmentRepository)(nil)
var _ contracts.AppointmentUsecase = (*MockAppointmentUsecase)(nil)
var _ contracts.PaymentRepository = (*MockPaymentRepository)(nil)
var _ contracts.PaymentGatewayService = (*MockGatewayService)(nil)
var _ contracts.NotificationUsecase = (*MockNotificationUsecase)(nil)

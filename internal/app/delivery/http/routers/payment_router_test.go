package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"teleclinic-service/internal/app/config"
	"teleclinic-service/internal/app/delivery/http/controllers"
	"teleclinic-service/internal/app/delivery/http/middlewares"
	"teleclinic-service/internal/app/models"
	"teleclinic-service/internal/pkg/constvars"
	"teleclinic-service/internal/pkg/dto/requests"
	"teleclinic-service/internal/pkg/dto/responses"
	"teleclinic-service/internal/pkg/exceptions"
	"teleclinic-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockPaymentUsecase struct {
	mock.Mock
}

func (m *MockPaymentUsecase) CreatePaymentLink(ctx context.Context, session *models.Session, request *requests.CreatePaymentLink) (*responses.PaymentLink, error) {
	args := m.Called(ctx, session, request)
	link, _ := args.Get(0).(*responses.PaymentLink)
	return link, args.Error(1)
}

func (m *MockPaymentUsecase) HandleCallback(ctx context.Context, request *requests.PaymentCallback) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockPaymentUsecase) FindByAppointment(ctx context.Context, session *models.Session, appointmentID string) (*responses.Payment, error) {
	args := m.Called(ctx, session, appointmentID)
	payment, _ := args.Get(0).(*responses.Payment)
	return payment, args.Error(1)
}

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	args := m.Called(ctx, key, value, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockRedisRepository) AddToSet(ctx context.Context, key string, values ...interface{}) error {
	callArgs := make([]interface{}, 0, len(values)+2)
	callArgs = append(callArgs, ctx, key)
	callArgs = append(callArgs, values...)
	args := m.Called(callArgs...)
	return args.Error(0)
}

func (m *MockRedisRepository) GetSetMembers(ctx context.Context, key string) ([]string, error) {
	args := m.Called(ctx, key)
	members, _ := args.Get(0).([]string)
	return members, args.Error(1)
}

func (m *MockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) Expire(ctx context.Context, key string, exp time.Duration) error {
	args := m.Called(ctx, key, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) CreateSession(ctx context.Context, session *models.Session, exp time.Duration) error {
	args := m.Called(ctx, session, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	args := m.Called(ctx, sessionID)
	session, _ := args.Get(0).(*models.Session)
	return session, args.Error(1)
}

func (m *MockRedisRepository) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func newPaymentTestRouter(paymentUsecase *MockPaymentUsecase, redisRepo *MockRedisRepository) (*chi.Mux, *config.InternalConfig) {
	logger := zap.NewNop()

	internalConfig := &config.InternalConfig{
		App: config.App{
			CallbackRatePerMinute:      60,
			CallbackBlockTimeInMinutes: 1,
		},
		JWT: config.JWT{
			Secret:        "test-secret",
			ExpTimeInHour: 1,
		},
	}

	paymentController := &controllers.PaymentController{
		Log:            logger,
		PaymentUsecase: paymentUsecase,
	}
	middlewareInstance := &middlewares.Middlewares{
		Log:             logger,
		RedisRepository: redisRepo,
		InternalConfig:  internalConfig,
	}

	router := chi.NewRouter()
	attachPaymentRoutes(router, middlewareInstance, internalConfig, paymentController)
	return router, internalConfig
}

func TestPaymentRouter_Callback(t *testing.T) {
	t.Run("Form-encoded gateway callback is acknowledged with the XML body", func(t *testing.T) {
		mockPaymentUsecase := new(MockPaymentUsecase)
		router, _ := newPaymentTestRouter(mockPaymentUsecase, new(MockRedisRepository))

		mockPaymentUsecase.On("HandleCallback", mock.Anything, mock.MatchedBy(func(request *requests.PaymentCallback) bool {
			return request.OrderNo == "order-123" && request.Result == "SUCCESS"
		})).Return(nil)

		form := url.Values{}
		form.Set(constvars.GatewayParamOrderNo, "order-123")
		form.Set(constvars.GatewayParamResult, "SUCCESS")

		req := httptest.NewRequest("POST", "/callback", strings.NewReader(form.Encode()))
		req.Header.Set(constvars.HeaderContentType, "application/x-www-form-urlencoded")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, constvars.MIMETextXML, rr.Header().Get(constvars.HeaderContentType))
		assert.Equal(t, constvars.GatewayCallbackAckBody, rr.Body.String())
		mockPaymentUsecase.AssertExpectations(t)
	})

	t.Run("JSON callback is accepted too", func(t *testing.T) {
		mockPaymentUsecase := new(MockPaymentUsecase)
		router, _ := newPaymentTestRouter(mockPaymentUsecase, new(MockRedisRepository))

		mockPaymentUsecase.On("HandleCallback", mock.Anything, mock.MatchedBy(func(request *requests.PaymentCallback) bool {
			return request.AppointmentID == "appointment-1" && request.Result == "SUCCESS"
		})).Return(nil)

		body, _ := json.Marshal(map[string]string{
			"appointmentId": "appointment-1",
			"result":        "SUCCESS",
		})

		req := httptest.NewRequest("POST", "/callback", bytes.NewBuffer(body))
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, constvars.GatewayCallbackAckBody, rr.Body.String())
		mockPaymentUsecase.AssertExpectations(t)
	})

	t.Run("Usecase rejection is mapped to its status code", func(t *testing.T) {
		mockPaymentUsecase := new(MockPaymentUsecase)
		router, _ := newPaymentTestRouter(mockPaymentUsecase, new(MockRedisRepository))

		mockPaymentUsecase.On("HandleCallback", mock.Anything, mock.Anything).
			Return(exceptions.ErrCallbackResultMissing(nil))

		form := url.Values{}
		form.Set(constvars.GatewayParamOrderNo, "order-123")

		req := httptest.NewRequest("POST", "/callback", strings.NewReader(form.Encode()))
		req.Header.Set(constvars.HeaderContentType, "application/x-www-form-urlencoded")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestPaymentRouter_CreateLink(t *testing.T) {
	t.Run("Link creation requires a bearer token", func(t *testing.T) {
		mockPaymentUsecase := new(MockPaymentUsecase)
		router, _ := newPaymentTestRouter(mockPaymentUsecase, new(MockRedisRepository))

		body, _ := json.Marshal(requests.CreatePaymentLink{AppointmentID: "appointment-1"})
		req := httptest.NewRequest("POST", "/link", bytes.NewBuffer(body))
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockPaymentUsecase.AssertNotCalled(t, "CreatePaymentLink")
	})

	t.Run("A valid session reaches the usecase", func(t *testing.T) {
		mockPaymentUsecase := new(MockPaymentUsecase)
		mockRedisRepo := new(MockRedisRepository)
		router, internalConfig := newPaymentTestRouter(mockPaymentUsecase, mockRedisRepo)

		session := &models.Session{
			SessionID: "session-1",
			UserID:    "patient-1",
			Role:      constvars.RolePatient,
		}
		token, err := utils.GenerateSessionJWT(session.SessionID, internalConfig.JWT.Secret, internalConfig.JWT.ExpTimeInHour)
		assert.NoError(t, err)

		mockRedisRepo.On("GetSession", mock.Anything, session.SessionID).Return(session, nil)
		mockPaymentUsecase.On("CreatePaymentLink", mock.Anything, session, mock.MatchedBy(func(request *requests.CreatePaymentLink) bool {
			return request.AppointmentID == "appointment-1"
		})).Return(&responses.PaymentLink{
			OrderNo:    "order-123",
			PaymentURL: "https://pay.example.com/checkout?ORDERNO=order-123",
		}, nil)

		body, _ := json.Marshal(requests.CreatePaymentLink{AppointmentID: "appointment-1"})
		req := httptest.NewRequest("POST", "/link", bytes.NewBuffer(body))
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), "order-123")
		mockPaymentUsecase.AssertExpectations(t)
	})

	t.Run("An expired session is unauthorized", func(t *testing.T) {
		mockPaymentUsecase := new(MockPaymentUsecase)
		mockRedisRepo := new(MockRedisRepository)
		router, internalConfig := newPaymentTestRouter(mockPaymentUsecase, mockRedisRepo)

		token, err := utils.GenerateSessionJWT("session-gone", internalConfig.JWT.Secret, internalConfig.JWT.ExpTimeInHour)
		assert.NoError(t, err)

		mockRedisRepo.On("GetSession", mock.Anything, "session-gone").Return(nil, nil)

		body, _ := json.Marshal(requests.CreatePaymentLink{AppointmentID: "appointment-1"})
		req := httptest.NewRequest("POST", "/link", bytes.NewBuffer(body))
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockPaymentUsecase.AssertNotCalled(t, "CreatePaymentLink")
	})
}

func TestPaymentRouter_FindByAppointment(t *testing.T) {
	t.Run("Payment lookup requires a bearer token", func(t *testing.T) {
		mockPaymentUsecase := new(MockPaymentUsecase)
		router, _ := newPaymentTestRouter(mockPaymentUsecase, new(MockRedisRepository))

		req := httptest.NewRequest("GET", "/appointment/appointment-1", nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockPaymentUsecase.AssertNotCalled(t, "FindByAppointment")
	})

	t.Run("A valid session fetches the latest payment for the appointment", func(t *testing.T) {
		mockPaymentUsecase := new(MockPaymentUsecase)
		mockRedisRepo := new(MockRedisRepository)
		router, internalConfig := newPaymentTestRouter(mockPaymentUsecase, mockRedisRepo)

		session := &models.Session{
			SessionID: "session-1",
			UserID:    "patient-1",
			Role:      constvars.RolePatient,
		}
		token, err := utils.GenerateSessionJWT(session.SessionID, internalConfig.JWT.Secret, internalConfig.JWT.ExpTimeInHour)
		assert.NoError(t, err)

		mockRedisRepo.On("GetSession", mock.Anything, session.SessionID).Return(session, nil)
		mockPaymentUsecase.On("FindByAppointment", mock.Anything, session, "appointment-1").
			Return(&responses.Payment{
				ID:            "payment-1",
				AppointmentID: "appointment-1",
				OrderNo:       "order-123",
				Amount:        15000,
				Status:        "COMPLETED",
			}, nil)

		req := httptest.NewRequest("GET", "/appointment/appointment-1", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "order-123")
		assert.Contains(t, rr.Body.String(), "COMPLETED")
		mockPaymentUsecase.AssertExpectations(t)
	})

	t.Run("An appointment without payments maps to not found", func(t *testing.T) {
		mockPaymentUsecase := new(MockPaymentUsecase)
		mockRedisRepo := new(MockRedisRepository)
		router, internalConfig := newPaymentTestRouter(mockPaymentUsecase, mockRedisRepo)

		session := &models.Session{
			SessionID: "session-1",
			UserID:    "patient-1",
			Role:      constvars.RolePatient,
		}
		token, err := utils.GenerateSessionJWT(session.SessionID, internalConfig.JWT.Secret, internalConfig.JWT.ExpTimeInHour)
		assert.NoError(t, err)

		mockRedisRepo.On("GetSession", mock.Anything, session.SessionID).Return(session, nil)
		mockPaymentUsecase.On("FindByAppointment", mock.Anything, session, "appointment-1").
			Return(nil, exceptions.ErrPaymentNotFound(nil))

		req := httptest.NewRequest("GET", "/appointment/appointment-1", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

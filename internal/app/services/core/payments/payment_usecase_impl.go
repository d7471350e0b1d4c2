package payments

import (
	"context"
	"fmt"
	"strings"
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

type paymentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	AppointmentUsecase    contracts.AppointmentUsecase
	PaymentRepository     contracts.PaymentRepository
	GatewayService        contracts.PaymentGatewayService
	NotificationUsecase   contracts.NotificationUsecase
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

var (
	paymentUsecaseInstance contracts.PaymentUsecase
	oncePaymentUsecase     sync.Once
)

func NewPaymentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	appointmentUsecase contracts.AppointmentUsecase,
	paymentRepository contracts.PaymentRepository,
	gatewayService contracts.PaymentGatewayService,
	notificationUsecase contracts.NotificationUsecase,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	oncePaymentUsecase.Do(func() {
		paymentUsecaseInstance = &paymentUsecase{
			AppointmentRepository: appointmentRepository,
			AppointmentUsecase:    appointmentUsecase,
			PaymentRepository:     paymentRepository,
			GatewayService:        gatewayService,
			NotificationUsecase:   notificationUsecase,
			InternalConfig:        internalConfig,
			Log:                   logger,
		}
	})
	return paymentUsecaseInstance
}

func (uc *paymentUsecase) CreatePaymentLink(ctx context.Context, session *models.Session, request *requests.CreatePaymentLink) (*responses.PaymentLink, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.CreatePaymentLink called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, request.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}
	if session.Role != constvars.RoleAdmin && appointment.PatientID != session.UserID {
		return nil, exceptions.ErrRoleNotAllowed(nil)
	}
	if appointment.Price == nil {
		return nil, exceptions.ErrAppointmentNotPriced(nil)
	}

	orderNo := uuid.NewString()
	now := time.Now()

	paymentURL, err := uc.GatewayService.BuildPaymentLink(ctx, &contracts.PaymentLinkInput{
		OrderNo:     orderNo,
		Amount:      *appointment.Price,
		ProductName: uc.InternalConfig.PaymentGateway.ProductName,
		BuyerName:   session.Fullname,
		BuyerEmail:  session.Email,
		Timestamp:   now,
	})
	if err != nil {
		uc.Log.Error("paymentUsecase.CreatePaymentLink error building gateway link",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderNoKey, orderNo),
			zap.Error(err),
		)
		return nil, err
	}

	payment := &models.Payment{
		AppointmentID: request.AppointmentID,
		OrderNo:       orderNo,
		Amount:        *appointment.Price,
		Method:        request.Method,
		Status:        models.PaymentPending,
		RequestedAt:   now,
	}
	if _, err := uc.PaymentRepository.Insert(ctx, payment); err != nil {
		uc.Log.Error("paymentUsecase.CreatePaymentLink error inserting payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderNoKey, orderNo),
			zap.Error(err),
		)
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "payment_link_created", requestID,
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
		zap.String(constvars.LoggingOrderNoKey, orderNo),
	)
	return &responses.PaymentLink{
		OrderNo:    orderNo,
		PaymentURL: paymentURL,
	}, nil
}

// HandleCallback resolves the target appointment from either encoding, then
// routes a success indicator into the idempotent ConfirmPayment path and
// anything else into a payment cancellation.
func (uc *paymentUsecase) HandleCallback(ctx context.Context, request *requests.PaymentCallback) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.HandleCallback called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
		zap.String(constvars.LoggingOrderNoKey, request.OrderNo),
	)

	appointmentID := request.AppointmentID
	if appointmentID == "" && request.OrderNo != "" {
		payment, err := uc.PaymentRepository.FindByOrderNo(ctx, request.OrderNo)
		if err != nil {
			return err
		}
		if payment == nil {
			return exceptions.ErrPaymentNotFound(nil)
		}
		appointmentID = payment.AppointmentID
	}
	if appointmentID == "" {
		return exceptions.ErrCallbackResultMissing(fmt.Errorf("callback carries neither appointment id nor order number"))
	}
	if request.Result == "" {
		return exceptions.ErrCallbackResultMissing(nil)
	}

	if strings.EqualFold(request.Result, constvars.GatewayCallbackResultSuccess) {
		return uc.AppointmentUsecase.ConfirmPayment(ctx, appointmentID)
	}

	cancelled, err := uc.PaymentRepository.MarkCancelledIfPending(ctx, appointmentID)
	if err != nil {
		return err
	}
	if !cancelled {
		// nothing pending, a repeat of an already-processed failure callback
		return nil
	}

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appointment != nil {
		if err := uc.NotificationUsecase.Notify(ctx, appointment.PatientID, models.NotificationPaymentCancelled,
			"Your payment did not complete. You can request a new payment link.",
			fmt.Sprintf("/appointments/%s", appointmentID),
		); err != nil {
			uc.Log.Error("paymentUsecase.HandleCallback error emitting notification",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}

	utils.LogBusinessEvent(uc.Log, "payment_cancelled_by_callback", requestID,
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return nil
}

func (uc *paymentUsecase) FindByAppointment(ctx context.Context, session *models.Session, appointmentID string) (*responses.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.FindByAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}
	if session.Role != constvars.RoleAdmin && appointment.PatientID != session.UserID {
		return nil, exceptions.ErrRoleNotAllowed(nil)
	}

	payment, err := uc.PaymentRepository.FindLatestByAppointmentID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(nil)
	}

	return &responses.Payment{
		ID:            payment.ID.Hex(),
		AppointmentID: payment.AppointmentID,
		OrderNo:       payment.OrderNo,
		Amount:        payment.Amount,
		Method:        payment.Method,
		Status:        string(payment.Status),
		RequestedAt:   payment.RequestedAt,
		ApprovedAt:    payment.ApprovedAt,
	}, nil
}

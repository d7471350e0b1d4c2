package controllers

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"teleclinic-service/internal/app/contracts"
	"teleclinic-service/internal/pkg/constvars"
	"teleclinic-service/internal/pkg/dto/requests"
	"teleclinic-service/internal/pkg/exceptions"
	"teleclinic-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type PaymentController struct {
	Log            *zap.Logger
	PaymentUsecase contracts.PaymentUsecase
}

var (
	paymentControllerInstance *PaymentController
	oncePaymentController     sync.Once
)

func NewPaymentController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase) *PaymentController {
	oncePaymentController.Do(func() {
		paymentControllerInstance = &PaymentController{
			Log:            logger,
			PaymentUsecase: paymentUsecase,
		}
	})
	return paymentControllerInstance
}

func (ctrl *PaymentController) CreateLink(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	session, err := sessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreatePaymentLink)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	result, err := ctrl.PaymentUsecase.CreatePaymentLink(ctx, session, request)
	if err != nil {
		ctrl.Log.Error("PaymentController.CreateLink usecase error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PaymentLinkCreatedSuccess, result)
}

func (ctrl *PaymentController) FindByAppointment(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	session, err := sessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	appointmentID := chi.URLParam(r, constvars.URLParamAppointmentID)
	if appointmentID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamAppointmentID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	result, err := ctrl.PaymentUsecase.FindByAppointment(ctx, session, appointmentID)
	if err != nil {
		ctrl.Log.Error("PaymentController.FindByAppointment usecase error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentFetchedSuccess, result)
}

// Callback accepts the gateway confirmation in either of its two encodings
// and answers the fixed XML acknowledgement on success. It is unauthenticated
// and sits behind the per-IP rate limiter.
func (ctrl *PaymentController) Callback(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	utils.LogSecurityEvent(ctrl.Log, "payment_callback_received", requestID, "info",
		zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
		zap.String(constvars.LoggingUserAgentKey, r.UserAgent()),
	)

	request, err := ctrl.decodeCallback(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	if err := ctrl.PaymentUsecase.HandleCallback(ctx, request); err != nil {
		ctrl.Log.Error("PaymentController.Callback usecase error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
			zap.String(constvars.LoggingOrderNoKey, request.OrderNo),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildXMLAckResponse(w, constvars.GatewayCallbackAckBody)
}

func (ctrl *PaymentController) decodeCallback(r *http.Request) (*requests.PaymentCallback, error) {
	contentType := r.Header.Get(constvars.HeaderContentType)

	if strings.Contains(contentType, constvars.MIMEApplicationJSON) {
		request := new(requests.PaymentCallback)
		if err := json.NewDecoder(r.Body).Decode(request); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		return request, nil
	}

	// legacy gateways post form-encoded ORDERNO/RESULT fields
	if err := r.ParseForm(); err != nil {
		return nil, exceptions.ErrCannotParseForm(err)
	}
	return &requests.PaymentCallback{
		OrderNo: r.PostForm.Get(constvars.GatewayParamOrderNo),
		Result:  r.PostForm.Get(constvars.GatewayParamResult),
	}, nil
}

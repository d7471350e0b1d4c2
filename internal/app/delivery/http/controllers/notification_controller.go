package controllers

import (
	"context"
	"net/http"
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

type NotificationController struct {
	Log                 *zap.Logger
	NotificationUsecase contracts.NotificationUsecase
}

var (
	notificationControllerInstance *NotificationController
	onceNotificationController     sync.Once
)

func NewNotificationController(logger *zap.Logger, notificationUsecase contracts.NotificationUsecase) *NotificationController {
	onceNotificationController.Do(func() {
		notificationControllerInstance = &NotificationController{
			Log:                 logger,
			NotificationUsecase: notificationUsecase,
		}
	})
	return notificationControllerInstance
}

func (ctrl *NotificationController) List(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	result, total, err := ctrl.NotificationUsecase.ListByRecipient(ctx, session, pagination)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	paginationResponse := utils.BuildPaginationResponse(total, pagination.Page, pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.NotificationFetchedSuccess, paginationResponse, result)
}

func (ctrl *NotificationController) Poll(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	session, err := sessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.PollNotifications)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	result, err := ctrl.NotificationUsecase.Poll(ctx, session, request)
	if err != nil {
		ctrl.Log.Error("NotificationController.Poll usecase error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.NotificationPolledSuccess, result)
}

func (ctrl *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	notificationID := chi.URLParam(r, constvars.URLParamNotificationID)
	if notificationID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamNotificationID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	if err := ctrl.NotificationUsecase.MarkRead(ctx, session, notificationID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.NotificationMarkReadSuccess, nil)
}

package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"teleclinic-service/internal/app/contracts"
	"teleclinic-service/internal/app/models"
	"teleclinic-service/internal/pkg/constvars"
	"teleclinic-service/internal/pkg/dto/requests"
	"teleclinic-service/internal/pkg/exceptions"
	"teleclinic-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
}

var (
	appointmentControllerInstance *AppointmentController
	onceAppointmentController     sync.Once
)

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase) *AppointmentController {
	onceAppointmentController.Do(func() {
		appointmentControllerInstance = &AppointmentController{
			Log:                logger,
			AppointmentUsecase: appointmentUsecase,
		}
	})
	return appointmentControllerInstance
}

func (ctrl *AppointmentController) Book(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	session, err := sessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.BookAppointment)
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

	result, err := ctrl.AppointmentUsecase.Book(ctx, session, request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.Book usecase error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.AppointmentBookedSuccess, result)
}

func (ctrl *AppointmentController) SetPrice(w http.ResponseWriter, r *http.Request) {
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

	request := new(requests.SetAppointmentPrice)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.AppointmentID = appointmentID
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	result, err := ctrl.AppointmentUsecase.SetPrice(ctx, session, request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.SetPrice usecase error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentPricedSuccess, result)
}

func (ctrl *AppointmentController) Cancel(w http.ResponseWriter, r *http.Request) {
	ctrl.transition(w, r, ctrl.AppointmentUsecase.Cancel, constvars.AppointmentCancelledSuccess)
}

func (ctrl *AppointmentController) Complete(w http.ResponseWriter, r *http.Request) {
	ctrl.transition(w, r, ctrl.AppointmentUsecase.Complete, constvars.AppointmentCompletedSuccess)
}

func (ctrl *AppointmentController) FindByID(w http.ResponseWriter, r *http.Request) {
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

	result, err := ctrl.AppointmentUsecase.FindByID(ctx, session, appointmentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentFetchedSuccess, result)
}

func (ctrl *AppointmentController) FindAll(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	result, total, err := ctrl.AppointmentUsecase.FindAllByPatient(ctx, session, pagination)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	paginationResponse := utils.BuildPaginationResponse(total, pagination.Page, pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.AppointmentFetchedSuccess, paginationResponse, result)
}

func (ctrl *AppointmentController) Upcoming(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	result, err := ctrl.AppointmentUsecase.Upcoming(ctx, session)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AppointmentFetchedSuccess, result)
}

func (ctrl *AppointmentController) transition(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, *models.Session, string) error,
	successMessage string,
) {
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

	if err := op(ctx, session, appointmentID); err != nil {
		ctrl.Log.Error("AppointmentController transition usecase error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, successMessage, nil)
}

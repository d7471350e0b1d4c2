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

type VaccinationController struct {
	Log                *zap.Logger
	VaccinationUsecase contracts.VaccinationUsecase
}

var (
	vaccinationControllerInstance *VaccinationController
	onceVaccinationController     sync.Once
)

func NewVaccinationController(logger *zap.Logger, vaccinationUsecase contracts.VaccinationUsecase) *VaccinationController {
	onceVaccinationController.Do(func() {
		vaccinationControllerInstance = &VaccinationController{
			Log:                logger,
			VaccinationUsecase: vaccinationUsecase,
		}
	})
	return vaccinationControllerInstance
}

func (ctrl *VaccinationController) Reserve(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	session, err := sessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.ReserveVaccination)
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

	result, err := ctrl.VaccinationUsecase.Reserve(ctx, session, request)
	if err != nil {
		ctrl.Log.Error("VaccinationController.Reserve usecase error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ReservationCreatedSuccess, result)
}

func (ctrl *VaccinationController) Confirm(w http.ResponseWriter, r *http.Request) {
	ctrl.transition(w, r, ctrl.VaccinationUsecase.Confirm, constvars.ReservationConfirmedSuccess)
}

func (ctrl *VaccinationController) Cancel(w http.ResponseWriter, r *http.Request) {
	ctrl.transition(w, r, ctrl.VaccinationUsecase.Cancel, constvars.ReservationCancelledSuccess)
}

func (ctrl *VaccinationController) FindAll(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	result, total, err := ctrl.VaccinationUsecase.FindAllByPatient(ctx, session, pagination)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	paginationResponse := utils.BuildPaginationResponse(total, pagination.Page, pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ReservationFetchedSuccess, paginationResponse, result)
}

func (ctrl *VaccinationController) transition(
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

	reservationID := chi.URLParam(r, constvars.URLParamReservationID)
	if reservationID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamReservationID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	if err := op(ctx, session, reservationID); err != nil {
		ctrl.Log.Error("VaccinationController transition usecase error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReservationIDKey, reservationID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, successMessage, nil)
}

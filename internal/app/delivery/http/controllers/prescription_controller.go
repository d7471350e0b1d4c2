package controllers

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"teleclinic-service/internal/app/config"
	"teleclinic-service/internal/app/contracts"
	"teleclinic-service/internal/pkg/constvars"
	"teleclinic-service/internal/pkg/dto/requests"
	"teleclinic-service/internal/pkg/exceptions"
	"teleclinic-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type PrescriptionController struct {
	Log                 *zap.Logger
	PrescriptionUsecase contracts.PrescriptionUsecase
	InternalConfig      *config.InternalConfig
}

var (
	prescriptionControllerInstance *PrescriptionController
	oncePrescriptionController     sync.Once
)

func NewPrescriptionController(logger *zap.Logger, prescriptionUsecase contracts.PrescriptionUsecase, internalConfig *config.InternalConfig) *PrescriptionController {
	oncePrescriptionController.Do(func() {
		prescriptionControllerInstance = &PrescriptionController{
			Log:                 logger,
			PrescriptionUsecase: prescriptionUsecase,
			InternalConfig:      internalConfig,
		}
	})
	return prescriptionControllerInstance
}

// Create accepts a multipart form: a "payload" part carrying the prescription
// JSON and an optional "attachment" file stored in object storage.
func (ctrl *PrescriptionController) Create(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	session, err := sessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	maxBytes := ctrl.InternalConfig.App.AttachmentMaxSizeInMB << 20
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	request := new(requests.CreatePrescription)
	if err := json.Unmarshal([]byte(r.FormValue("payload")), request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	file, header, err := r.FormFile("attachment")
	if err == nil {
		defer file.Close()
		if header.Size > maxBytes {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrAttachmentTooLarge(nil))
			return
		}
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(readErr))
			return
		}
		request.Attachment = data
		request.AttachmentName = header.Filename
		request.AttachmentType = header.Header.Get(constvars.HeaderContentType)
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	result, err := ctrl.PrescriptionUsecase.Create(ctx, session, request)
	if err != nil {
		ctrl.Log.Error("PrescriptionController.Create usecase error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PrescriptionCreatedSuccess, result)
}

func (ctrl *PrescriptionController) FindByID(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	prescriptionID := chi.URLParam(r, constvars.URLParamPrescriptionID)
	if prescriptionID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamPrescriptionID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	result, err := ctrl.PrescriptionUsecase.FindByID(ctx, session, prescriptionID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PrescriptionFetchedSuccess, result)
}

func (ctrl *PrescriptionController) FindAll(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	result, total, err := ctrl.PrescriptionUsecase.FindAllByPatient(ctx, session, pagination)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	paginationResponse := utils.BuildPaginationResponse(total, pagination.Page, pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.PrescriptionFetchedSuccess, paginationResponse, result)
}

package routers

import (
	"fmt"

	"teleclinic-service/internal/app/delivery/http/controllers"
	"teleclinic-service/internal/app/delivery/http/middlewares"
	"teleclinic-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachPrescriptionRoutes(router chi.Router, mw *middlewares.Middlewares, prescriptionController *controllers.PrescriptionController) {
	router.Use(mw.Authenticate)

	router.Get("/", prescriptionController.FindAll)
	router.Get(fmt.Sprintf("/{%s}", constvars.URLParamPrescriptionID), prescriptionController.FindByID)

	router.Group(func(r chi.Router) {
		r.Use(mw.RequireRole(constvars.RoleDoctor, constvars.RoleAdmin))
		r.Post("/", prescriptionController.Create)
	})
}

package routers

import (
	"fmt"

	"teleclinic-service/internal/app/delivery/http/controllers"
	"teleclinic-service/internal/app/delivery/http/middlewares"
	"teleclinic-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachVaccinationRoutes(router chi.Router, mw *middlewares.Middlewares, vaccinationController *controllers.VaccinationController) {
	router.Use(mw.Authenticate)

	router.Post("/", vaccinationController.Reserve)
	router.Get("/", vaccinationController.FindAll)
	router.Post(fmt.Sprintf("/{%s}/cancel", constvars.URLParamReservationID), vaccinationController.Cancel)

	router.Group(func(r chi.Router) {
		r.Use(mw.RequireRole(constvars.RoleAdmin))
		r.Post(fmt.Sprintf("/{%s}/confirm", constvars.URLParamReservationID), vaccinationController.Confirm)
	})
}

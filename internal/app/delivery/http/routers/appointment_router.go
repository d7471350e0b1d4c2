package routers

import (
	"fmt"

	"teleclinic-service/internal/app/delivery/http/controllers"
	"teleclinic-service/internal/app/delivery/http/middlewares"
	"teleclinic-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, mw *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.Use(mw.Authenticate)

	router.Post("/", appointmentController.Book)
	router.Get("/", appointmentController.FindAll)
	router.Get("/upcoming", appointmentController.Upcoming)
	router.Get(fmt.Sprintf("/{%s}", constvars.URLParamAppointmentID), appointmentController.FindByID)
	router.Post(fmt.Sprintf("/{%s}/cancel", constvars.URLParamAppointmentID), appointmentController.Cancel)

	router.Group(func(r chi.Router) {
		r.Use(mw.RequireRole(constvars.RoleAdmin))
		r.Patch(fmt.Sprintf("/{%s}/price", constvars.URLParamAppointmentID), appointmentController.SetPrice)
		r.Post(fmt.Sprintf("/{%s}/complete", constvars.URLParamAppointmentID), appointmentController.Complete)
	})
}

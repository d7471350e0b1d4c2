package routers

import (
	"fmt"
	"time"

	"teleclinic-service/internal/app/config"
	"teleclinic-service/internal/app/delivery/http/controllers"
	"teleclinic-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	mw *middlewares.Middlewares,
	authController *controllers.AuthController,
	appointmentController *controllers.AppointmentController,
	paymentController *controllers.PaymentController,
	notificationController *controllers.NotificationController,
	vaccinationController *controllers.VaccinationController,
	prescriptionController *controllers.PrescriptionController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second))

	router.Use(mw.RequestID)
	router.Use(mw.Logging)
	router.Use(mw.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				attachAuthRoutes(r, mw, authController)
			})

			r.Route("/appointments", func(r chi.Router) {
				attachAppointmentRoutes(r, mw, appointmentController)
			})

			r.Route("/payments", func(r chi.Router) {
				attachPaymentRoutes(r, mw, internalConfig, paymentController)
			})

			r.Route("/notifications", func(r chi.Router) {
				attachNotificationRoutes(r, mw, notificationController)
			})

			r.Route("/vaccinations", func(r chi.Router) {
				attachVaccinationRoutes(r, mw, vaccinationController)
			})

			r.Route("/prescriptions", func(r chi.Router) {
				attachPrescriptionRoutes(r, mw, prescriptionController)
			})
		})
	})
}

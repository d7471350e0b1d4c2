package routers

import (
	"time"

	"teleclinic-service/internal/app/config"
	"teleclinic-service/internal/app/delivery/http/controllers"
	"teleclinic-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPaymentRoutes(router chi.Router, mw *middlewares.Middlewares, internalConfig *config.InternalConfig, paymentController *controllers.PaymentController) {
	// callback is unauthenticated; the gateway cannot hold a session
	callbackLimiter := middlewares.NewRateLimiter(
		internalConfig.App.CallbackRatePerMinute,
		time.Minute,
		time.Duration(internalConfig.App.CallbackBlockTimeInMinutes)*time.Minute,
	)
	router.Group(func(r chi.Router) {
		r.Use(callbackLimiter.Limit)
		r.Post("/callback", paymentController.Callback)
	})

	router.Group(func(r chi.Router) {
		r.Use(mw.Authenticate)
		r.Post("/link", paymentController.CreateLink)
		r.Get("/appointment/{appointmentID}", paymentController.FindByAppointment)
	})
}

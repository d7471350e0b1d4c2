package routers

import (
	"teleclinic-service/internal/app/delivery/http/controllers"
	"teleclinic-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, mw *middlewares.Middlewares, authController *controllers.AuthController) {
	router.Post("/register", authController.Register)
	router.Post("/login", authController.Login)

	router.Group(func(r chi.Router) {
		r.Use(mw.Authenticate)
		r.Post("/logout", authController.Logout)
	})
}

package routers

import (
	"fmt"

	"teleclinic-service/internal/app/delivery/http/controllers"
	"teleclinic-service/internal/app/delivery/http/middlewares"
	"teleclinic-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachNotificationRoutes(router chi.Router, mw *middlewares.Middlewares, notificationController *controllers.NotificationController) {
	router.Use(mw.Authenticate)

	router.Get("/", notificationController.List)
	router.Post("/poll", notificationController.Poll)
	router.Patch(fmt.Sprintf("/{%s}/read", constvars.URLParamNotificationID), notificationController.MarkRead)
}

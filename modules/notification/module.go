package notification

import (
	"campus-events-api/core/database"
	"campus-events-api/core/middleware"
	"campus-events-api/modules/notification/controller"
	"campus-events-api/modules/notification/repository"
	"campus-events-api/modules/notification/router"
	"campus-events-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the notification module and registers routes. The service
// is returned directly so other modules can emit notifications.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)
	rtr := router.NewNotificationRouter(ctrl)

	rtr.Setup(e, mw)

	return svc
}

package event

import (
	"campus-events-api/core/database"
	"campus-events-api/core/middleware"
	"campus-events-api/core/storage"
	"campus-events-api/core/tasks"
	"campus-events-api/core/utils"
	"campus-events-api/modules/event/controller"
	"campus-events-api/modules/event/repository"
	"campus-events-api/modules/event/router"
	"campus-events-api/modules/event/service"

	"github.com/labstack/echo/v4"
)

// Module exposes the pieces other modules depend on.
type Module struct {
	Repository     repository.EventRepositoryInterface
	AttendanceRepo repository.AttendanceRepositoryInterface
	Service        *service.EventService
}

// Init initializes the event module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, store *storage.Storage, taskClient *tasks.Client) *Module {
	repo := repository.NewEventRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)

	var reminders service.ReminderScheduler
	if taskClient != nil {
		reminders = taskClient
	}

	svc := service.NewEventService(repo, attendanceRepo, reminders, store, utils.GenerateID)
	ctrl := controller.NewEventController(svc)
	rtr := router.NewEventRouter(ctrl)

	rtr.Setup(e, mw)

	return &Module{Repository: repo, AttendanceRepo: attendanceRepo, Service: svc}
}

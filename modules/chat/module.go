package chat

import (
	"campus-events-api/core/database"
	"campus-events-api/core/middleware"
	authrepo "campus-events-api/modules/auth/repository"
	"campus-events-api/modules/chat/controller"
	"campus-events-api/modules/chat/repository"
	"campus-events-api/modules/chat/router"
	"campus-events-api/modules/chat/service"
	eventrepo "campus-events-api/modules/event/repository"

	"github.com/labstack/echo/v4"
)

// Module exposes the pieces other modules depend on.
type Module struct {
	Repository repository.ChatRepositoryInterface
	Service    *service.ChatService
}

// Init initializes the chat module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, attendance eventrepo.AttendanceRepositoryInterface, users authrepo.AuthRepositoryInterface) *Module {
	repo := repository.NewChatRepository(db)
	svc := service.NewChatService(repo, attendance, users)
	ctrl := controller.NewChatController(svc)
	rtr := router.NewChatRouter(ctrl)

	rtr.Setup(e, mw)

	return &Module{Repository: repo, Service: svc}
}

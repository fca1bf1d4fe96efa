package friend

import (
	"campus-events-api/core/database"
	"campus-events-api/core/middleware"
	authrepo "campus-events-api/modules/auth/repository"
	"campus-events-api/modules/friend/controller"
	"campus-events-api/modules/friend/repository"
	"campus-events-api/modules/friend/router"
	"campus-events-api/modules/friend/service"

	"github.com/labstack/echo/v4"
)

// Module exposes the pieces other modules depend on.
type Module struct {
	Repository repository.FriendRepositoryInterface
	Service    *service.FriendService
}

// Init initializes the friend module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, notifier service.Notifier, users authrepo.AuthRepositoryInterface) *Module {
	repo := repository.NewFriendRepository(db)
	svc := service.NewFriendService(repo, users, notifier)
	ctrl := controller.NewFriendController(svc)
	rtr := router.NewFriendRouter(ctrl)

	rtr.Setup(e, mw)

	return &Module{Repository: repo, Service: svc}
}

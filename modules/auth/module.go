package auth

import (
	"campus-events-api/core/cache"
	"campus-events-api/core/database"
	"campus-events-api/core/middleware"
	"campus-events-api/core/storage"
	"campus-events-api/modules/auth/controller"
	"campus-events-api/modules/auth/repository"
	"campus-events-api/modules/auth/router"
	"campus-events-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Module exposes the pieces other modules depend on.
type Module struct {
	Repository repository.AuthRepositoryInterface
	Service    *service.AuthService
}

// Init initializes the auth module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, c cache.ICache, store *storage.Storage) *Module {
	repo := repository.NewAuthRepository(db)
	svc := service.NewAuthService(repo, c, store)
	ctrl := controller.NewAuthController(svc)
	rtr := router.NewAuthRouter(ctrl)

	rtr.Setup(e, mw)

	return &Module{Repository: repo, Service: svc}
}

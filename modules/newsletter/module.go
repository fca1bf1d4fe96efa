package newsletter

import (
	"campus-events-api/core/database"
	"campus-events-api/core/middleware"
	eventrepo "campus-events-api/modules/event/repository"
	"campus-events-api/modules/newsletter/controller"
	"campus-events-api/modules/newsletter/repository"
	"campus-events-api/modules/newsletter/router"
	"campus-events-api/modules/newsletter/service"

	"github.com/labstack/echo/v4"
)

// Module exposes the pieces other modules depend on.
type Module struct {
	Repository    repository.NewsletterRepositoryInterface
	Service       *service.NewsletterService
	DigestHandler *DigestHandler
}

// Init initializes the newsletter module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, events eventrepo.EventRepositoryInterface) *Module {
	repo := repository.NewNewsletterRepository(db)
	svc := service.NewNewsletterService(repo)
	ctrl := controller.NewNewsletterController(svc)
	rtr := router.NewNewsletterRouter(ctrl)

	rtr.Setup(e, mw)

	return &Module{
		Repository:    repo,
		Service:       svc,
		DigestHandler: NewDigestHandler(repo, events),
	}
}

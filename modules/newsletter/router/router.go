package router

import (
	"campus-events-api/core/middleware"
	"campus-events-api/modules/newsletter/controller"

	"github.com/labstack/echo/v4"
)

// NewsletterRouter handles newsletter routes
type NewsletterRouter struct {
	NewsletterController *controller.NewsletterController
}

func NewNewsletterRouter(newsletterController *controller.NewsletterController) *NewsletterRouter {
	return &NewsletterRouter{NewsletterController: newsletterController}
}

// Setup registers newsletter routes. Subscribing works without an account.
func (r *NewsletterRouter) Setup(e *echo.Echo, _ *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	group := v1.Group("/newsletter")
	group.POST("/subscribe", r.NewsletterController.Subscribe)
	group.POST("/unsubscribe", r.NewsletterController.Unsubscribe)
}

package router

import (
	"campus-events-api/core/middleware"
	"campus-events-api/modules/event/controller"

	"github.com/labstack/echo/v4"
)

// EventRouter handles event routes
type EventRouter struct {
	EventController *controller.EventController
}

func NewEventRouter(eventController *controller.EventController) *EventRouter {
	return &EventRouter{EventController: eventController}
}

// Setup registers event routes
func (r *EventRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	// Discovery stays public, anonymous callers just get no flags.
	eventRoutes := v1.Group("/events")
	eventRoutes.GET("", r.EventController.ListEvents)
	eventRoutes.GET("/:id", r.EventController.GetEvent)
	eventRoutes.GET("/:id/attendees", r.EventController.GetAttendees)

	privateRoutes := v1.Group("/private/events", mw.AuthMiddleware())
	privateRoutes.POST("", r.EventController.CreateEvent)
	privateRoutes.PATCH("/:id", r.EventController.UpdateEvent)
	privateRoutes.POST("/:id/join", r.EventController.JoinEvent)
	privateRoutes.POST("/:id/leave", r.EventController.LeaveEvent)
	privateRoutes.POST("/:id/interest", r.EventController.ToggleInterest)
	privateRoutes.POST("/:id/ratings", r.EventController.RateEvent)
	privateRoutes.POST("/:id/image-upload", r.EventController.ImageUploadURL)

	userRoutes := v1.Group("/private/users", mw.AuthMiddleware())
	userRoutes.GET("/me/events", r.EventController.GetJoinedEvents)
}

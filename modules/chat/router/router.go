package router

import (
	"campus-events-api/core/middleware"
	"campus-events-api/modules/chat/controller"

	"github.com/labstack/echo/v4"
)

// ChatRouter handles event chat routes
type ChatRouter struct {
	ChatController *controller.ChatController
}

func NewChatRouter(chatController *controller.ChatController) *ChatRouter {
	return &ChatRouter{ChatController: chatController}
}

// Setup registers chat routes
func (r *ChatRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	group := v1.Group("/private/events/:id/chat", mw.AuthMiddleware())
	group.GET("", r.ChatController.ListMessages)
	group.POST("", r.ChatController.PostMessage)
}

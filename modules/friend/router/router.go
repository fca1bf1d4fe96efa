package router

import (
	"campus-events-api/core/middleware"
	"campus-events-api/modules/friend/controller"

	"github.com/labstack/echo/v4"
)

// FriendRouter handles friend routes
type FriendRouter struct {
	FriendController *controller.FriendController
}

func NewFriendRouter(friendController *controller.FriendController) *FriendRouter {
	return &FriendRouter{FriendController: friendController}
}

// Setup registers friend routes
func (r *FriendRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	group := v1.Group("/private/friends", mw.AuthMiddleware())
	group.GET("", r.FriendController.ListFriends)
	group.DELETE("/:id", r.FriendController.RemoveFriend)
	group.GET("/requests", r.FriendController.ListPending)
	group.POST("/requests", r.FriendController.SendRequest)
	group.POST("/requests/:id/accept", r.FriendController.Accept)
	group.POST("/requests/:id/decline", r.FriendController.Decline)
}

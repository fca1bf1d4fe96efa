package router

import (
	"campus-events-api/core/middleware"
	"campus-events-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

// AuthRouter handles identity routes
type AuthRouter struct {
	AuthController *controller.AuthController
}

func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{AuthController: authController}
}

// Setup registers identity routes
func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	authRoutes := v1.Group("/auth")
	authRoutes.POST("/register", r.AuthController.Register)
	authRoutes.POST("/login", r.AuthController.Login)
	authRoutes.POST("/refresh", r.AuthController.RefreshToken)
	authRoutes.POST("/logout", r.AuthController.Logout)
	authRoutes.GET("/google", r.AuthController.GoogleLogin)
	authRoutes.GET("/google/callback", r.AuthController.GoogleCallback)

	userRoutes := v1.Group("/private/users", mw.AuthMiddleware())
	userRoutes.GET("/me", r.AuthController.Me)
	userRoutes.PATCH("/me", r.AuthController.UpdateProfile)
	userRoutes.POST("/me/avatar-upload", r.AuthController.AvatarUploadURL)
}

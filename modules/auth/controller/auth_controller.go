package controller

import (
	"campus-events-api/core/constants"
	"campus-events-api/core/controller"
	"campus-events-api/core/errors"
	"campus-events-api/core/logger"
	"campus-events-api/core/utils"
	"campus-events-api/modules/auth/dto"
	"campus-events-api/modules/auth/service"
	"campus-events-api/modules/auth/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthController handles identity HTTP requests.
type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
	OAuth       *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    svc,
		OAuth:          svc,
	}
}

func (c *AuthController) userIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "user not authenticated", nil)
	}
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "invalid token data", nil)
	}
	return claims.UserID, nil
}

// Register handles POST /auth/register
func (c *AuthController) Register(ctx echo.Context) error {
	requestData := new(dto.RegisterRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request data")
	}

	validationResult := validator.ValidateRegisterRequest(requestData)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "invalid request data", validationResult)
	}

	resp, appErr := c.AuthService.Register(ctx.Request().Context(), requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "register success")
}

// Login handles POST /auth/login
func (c *AuthController) Login(ctx echo.Context) error {
	requestData := new(dto.LoginRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request data")
	}

	validationResult := validator.ValidateLoginRequest(requestData)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "invalid request data", validationResult)
	}

	resp, appErr := c.AuthService.Login(ctx.Request().Context(), requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "login success")
}

// RefreshToken handles POST /auth/refresh
func (c *AuthController) RefreshToken(ctx echo.Context) error {
	requestData := new(dto.RefreshTokenRequest)
	if err := ctx.Bind(requestData); err != nil || requestData.RefreshToken == "" {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request data")
	}

	resp, appErr := c.AuthService.RefreshToken(ctx.Request().Context(), requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "token refreshed")
}

// Logout handles POST /auth/logout
func (c *AuthController) Logout(ctx echo.Context) error {
	token, err := utils.GetTokenFromHeader(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrMissingAuthorizationHeader, "missing authorization header")
	}

	if appErr := c.AuthService.Logout(ctx.Request().Context(), token); appErr != nil {
		logger.Error("AuthController:Logout:Error:", appErr)
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "logout success")
}

// Me handles GET /users/me
func (c *AuthController) Me(ctx echo.Context) error {
	userID, err := c.userIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}

	resp, appErr := c.AuthService.GetMe(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "success")
}

// UpdateProfile handles PATCH /users/me
func (c *AuthController) UpdateProfile(ctx echo.Context) error {
	userID, err := c.userIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}

	requestData := new(dto.UpdateProfileRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request data")
	}

	validationResult := validator.ValidateUpdateProfileRequest(requestData)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "invalid request data", validationResult)
	}

	resp, appErr := c.AuthService.UpdateProfile(ctx.Request().Context(), userID, requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "profile updated")
}

// AvatarUploadURL handles POST /users/me/avatar-upload
func (c *AuthController) AvatarUploadURL(ctx echo.Context) error {
	userID, err := c.userIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}

	requestData := new(dto.AvatarUploadRequest)
	if err := ctx.Bind(requestData); err != nil || requestData.ContentType == "" {
		return c.BadRequest(errors.ErrInvalidRequestData, "content_type is required")
	}

	resp, appErr := c.AuthService.AvatarUploadURL(ctx.Request().Context(), userID, requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "upload url issued")
}

// GoogleLogin handles GET /auth/google
func (c *AuthController) GoogleLogin(ctx echo.Context) error {
	resp, appErr := c.OAuth.GoogleAuthURL(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "auth url issued")
}

// GoogleCallback handles GET /auth/google/callback
func (c *AuthController) GoogleCallback(ctx echo.Context) error {
	state := ctx.QueryParam("state")
	code := ctx.QueryParam("code")
	if state == "" || code == "" {
		return c.BadRequest(errors.ErrInvalidRequestData, "state and code are required")
	}

	resp, appErr := c.OAuth.GoogleCallback(ctx.Request().Context(), state, code)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "login success")
}

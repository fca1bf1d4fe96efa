package controller

import (
	"strconv"
	"time"

	"campus-events-api/core/constants"
	"campus-events-api/core/controller"
	"campus-events-api/core/errors"
	"campus-events-api/core/utils"
	"campus-events-api/modules/chat/dto"
	"campus-events-api/modules/chat/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ChatController handles event chat HTTP requests.
type ChatController struct {
	controller.BaseController
	ChatService service.ChatServiceInterface
}

func NewChatController(svc service.ChatServiceInterface) *ChatController {
	return &ChatController{
		BaseController: controller.NewBaseController(),
		ChatService:    svc,
	}
}

func (c *ChatController) userIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// PostMessage handles POST /events/:id/chat
func (c *ChatController) PostMessage(ctx echo.Context) error {
	userID, err := c.userIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid event id")
	}

	requestData := new(dto.PostMessageRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request data")
	}

	resp, appErr := c.ChatService.PostMessage(ctx.Request().Context(), userID, eventID, requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "message posted")
}

// ListMessages handles GET /events/:id/chat
func (c *ChatController) ListMessages(ctx echo.Context) error {
	userID, err := c.userIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid event id")
	}

	var before time.Time
	if raw := ctx.QueryParam("before"); raw != "" {
		before, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidRequestData, "before must be RFC3339")
		}
	}
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))

	resp, appErr := c.ChatService.ListMessages(ctx.Request().Context(), userID, eventID, before, limit)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "success")
}

package controller

import (
	"campus-events-api/core/constants"
	"campus-events-api/core/controller"
	"campus-events-api/core/errors"
	"campus-events-api/core/utils"
	"campus-events-api/modules/friend/dto"
	"campus-events-api/modules/friend/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// FriendController handles friend HTTP requests.
type FriendController struct {
	controller.BaseController
	FriendService service.FriendServiceInterface
}

func NewFriendController(svc service.FriendServiceInterface) *FriendController {
	return &FriendController{
		BaseController: controller.NewBaseController(),
		FriendService:  svc,
	}
}

func (c *FriendController) userIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// SendRequest handles POST /friends/requests
func (c *FriendController) SendRequest(ctx echo.Context) error {
	userID, err := c.userIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}

	requestData := new(dto.SendFriendRequestRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request data")
	}
	addresseeID, err := uuid.Parse(requestData.UserID)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid user id")
	}

	resp, appErr := c.FriendService.SendRequest(ctx.Request().Context(), userID, addresseeID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "friend request sent")
}

// Accept handles POST /friends/requests/:id/accept
func (c *FriendController) Accept(ctx echo.Context) error {
	userID, err := c.userIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}
	requestID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request id")
	}

	resp, appErr := c.FriendService.Accept(ctx.Request().Context(), userID, requestID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "friend request accepted")
}

// Decline handles POST /friends/requests/:id/decline
func (c *FriendController) Decline(ctx echo.Context) error {
	userID, err := c.userIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}
	requestID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request id")
	}

	resp, appErr := c.FriendService.Decline(ctx.Request().Context(), userID, requestID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "friend request declined")
}

// ListPending handles GET /friends/requests
func (c *FriendController) ListPending(ctx echo.Context) error {
	userID, err := c.userIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}

	resp, appErr := c.FriendService.ListPending(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "success")
}

// ListFriends handles GET /friends
func (c *FriendController) ListFriends(ctx echo.Context) error {
	userID, err := c.userIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}

	resp, appErr := c.FriendService.ListFriends(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "success")
}

// RemoveFriend handles DELETE /friends/:id
func (c *FriendController) RemoveFriend(ctx echo.Context) error {
	userID, err := c.userIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}
	friendID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid user id")
	}

	if appErr := c.FriendService.RemoveFriend(ctx.Request().Context(), userID, friendID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "friend removed")
}

package controller

import (
	"campus-events-api/core/controller"
	"campus-events-api/core/errors"
	"campus-events-api/modules/newsletter/dto"
	"campus-events-api/modules/newsletter/service"

	"github.com/labstack/echo/v4"
)

// NewsletterController handles newsletter HTTP requests.
type NewsletterController struct {
	controller.BaseController
	NewsletterService service.NewsletterServiceInterface
}

func NewNewsletterController(svc service.NewsletterServiceInterface) *NewsletterController {
	return &NewsletterController{
		BaseController:    controller.NewBaseController(),
		NewsletterService: svc,
	}
}

// Subscribe handles POST /newsletter/subscribe
func (c *NewsletterController) Subscribe(ctx echo.Context) error {
	requestData := new(dto.SubscribeRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request data")
	}

	resp, appErr := c.NewsletterService.Subscribe(ctx.Request().Context(), requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "subscribed")
}

// Unsubscribe handles POST /newsletter/unsubscribe
func (c *NewsletterController) Unsubscribe(ctx echo.Context) error {
	requestData := new(dto.SubscribeRequest)
	if err := ctx.Bind(requestData); err != nil || requestData.Email == "" {
		return c.BadRequest(errors.ErrInvalidRequestData, "email is required")
	}

	if appErr := c.NewsletterService.Unsubscribe(ctx.Request().Context(), requestData.Email); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "unsubscribed")
}

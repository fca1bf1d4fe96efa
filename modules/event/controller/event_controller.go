package controller

import (
	"strings"

	"campus-events-api/core/constants"
	"campus-events-api/core/controller"
	"campus-events-api/core/errors"
	"campus-events-api/core/params"
	"campus-events-api/core/utils"
	"campus-events-api/modules/event/dto"
	"campus-events-api/modules/event/service"
	"campus-events-api/modules/event/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// EventController handles event HTTP requests.
type EventController struct {
	controller.BaseController
	EventService service.EventServiceInterface
}

func NewEventController(svc service.EventServiceInterface) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		EventService:   svc,
	}
}

func (c *EventController) userIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// optionalUserID resolves the caller on public routes, where the auth
// middleware does not run. An invalid or missing token means anonymous.
func (c *EventController) optionalUserID(ctx echo.Context) uuid.UUID {
	token, err := utils.GetTokenFromHeader(ctx)
	if err != nil {
		return uuid.Nil
	}
	claims, err := utils.ValidateAndParseToken(token)
	if err != nil {
		return uuid.Nil
	}
	return claims.UserID
}

func localeFromRequest(ctx echo.Context) string {
	if l := ctx.QueryParam("locale"); l != "" {
		return l
	}
	if strings.HasPrefix(ctx.Request().Header.Get("Accept-Language"), constants.LocaleKorean) {
		return constants.LocaleKorean
	}
	return constants.DefaultLocale
}

func eventIDFromPath(ctx echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ListEvents handles GET /events
func (c *EventController) ListEvents(ctx echo.Context) error {
	queryParams := params.FromContext(ctx)
	userID := c.optionalUserID(ctx)

	resp, appErr := c.EventService.ListEvents(ctx.Request().Context(), userID, localeFromRequest(ctx), queryParams)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "success")
}

// GetEvent handles GET /events/:id
func (c *EventController) GetEvent(ctx echo.Context) error {
	eventID, ok := eventIDFromPath(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid event id")
	}
	userID := c.optionalUserID(ctx)

	resp, appErr := c.EventService.GetEvent(ctx.Request().Context(), eventID, userID, localeFromRequest(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "success")
}

// CreateEvent handles POST /events
func (c *EventController) CreateEvent(ctx echo.Context) error {
	userID, err := c.userIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}

	requestData := new(dto.CreateEventRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request data")
	}

	validationResult := validator.ValidateCreateEventRequest(requestData)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "invalid request data", validationResult)
	}

	resp, appErr := c.EventService.CreateEvent(ctx.Request().Context(), userID, requestData, localeFromRequest(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "event created")
}

// UpdateEvent handles PATCH /events/:id
func (c *EventController) UpdateEvent(ctx echo.Context) error {
	userID, err := c.userIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}
	eventID, ok := eventIDFromPath(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid event id")
	}

	requestData := new(dto.UpdateEventRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request data")
	}

	resp, appErr := c.EventService.UpdateEvent(ctx.Request().Context(), eventID, userID, requestData, localeFromRequest(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "event updated")
}

// JoinEvent handles POST /events/:id/join
func (c *EventController) JoinEvent(ctx echo.Context) error {
	userID, err := c.userIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}
	eventID, ok := eventIDFromPath(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid event id")
	}

	if appErr := c.EventService.JoinEvent(ctx.Request().Context(), userID, eventID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "joined event")
}

// LeaveEvent handles POST /events/:id/leave
func (c *EventController) LeaveEvent(ctx echo.Context) error {
	userID, err := c.userIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}
	eventID, ok := eventIDFromPath(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid event id")
	}

	if appErr := c.EventService.LeaveEvent(ctx.Request().Context(), userID, eventID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "left event")
}

// ToggleInterest handles POST /events/:id/interest
func (c *EventController) ToggleInterest(ctx echo.Context) error {
	userID, err := c.userIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}
	eventID, ok := eventIDFromPath(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid event id")
	}

	resp, appErr := c.EventService.ToggleInterest(ctx.Request().Context(), userID, eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "interest toggled")
}

// RateEvent handles POST /events/:id/ratings
func (c *EventController) RateEvent(ctx echo.Context) error {
	userID, err := c.userIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}
	eventID, ok := eventIDFromPath(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid event id")
	}

	requestData := new(dto.RateEventRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid request data")
	}

	validationResult := validator.ValidateRateEventRequest(requestData)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "invalid request data", validationResult)
	}

	if appErr := c.EventService.RateEvent(ctx.Request().Context(), userID, eventID, requestData); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "rating saved")
}

// GetJoinedEvents handles GET /users/me/events
func (c *EventController) GetJoinedEvents(ctx echo.Context) error {
	userID, err := c.userIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}

	resp, appErr := c.EventService.GetJoinedEvents(ctx.Request().Context(), userID, localeFromRequest(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "success")
}

// ImageUploadURL handles POST /events/:id/image-upload
func (c *EventController) ImageUploadURL(ctx echo.Context) error {
	userID, err := c.userIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "user not authenticated")
	}
	eventID, ok := eventIDFromPath(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid event id")
	}

	requestData := new(dto.ImageUploadRequest)
	if err := ctx.Bind(requestData); err != nil || requestData.ContentType == "" {
		return c.BadRequest(errors.ErrInvalidRequestData, "content_type is required")
	}

	resp, appErr := c.EventService.ImageUploadURL(ctx.Request().Context(), eventID, userID, requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "upload url issued")
}

// GetAttendees handles GET /events/:id/attendees
func (c *EventController) GetAttendees(ctx echo.Context) error {
	eventID, ok := eventIDFromPath(ctx)
	if !ok {
		return c.BadRequest(errors.ErrInvalidRequestData, "invalid event id")
	}

	resp, appErr := c.EventService.GetAttendees(ctx.Request().Context(), eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "success")
}

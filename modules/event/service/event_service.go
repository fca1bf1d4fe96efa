package service

import (
	"context"
	"fmt"
	"time"

	"campus-events-api/core/constants"
	"campus-events-api/core/errors"
	"campus-events-api/core/logger"
	"campus-events-api/core/metrics"
	"campus-events-api/core/params"
	"campus-events-api/core/storage"
	"campus-events-api/core/utils"
	"campus-events-api/modules/event/dto"
	"campus-events-api/modules/event/entity"
	"campus-events-api/modules/event/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ReminderScheduler schedules attendee reminder work for an event.
type ReminderScheduler interface {
	EnqueueEventReminder(eventID uuid.UUID, at time.Time) error
}

// EventService handles event business logic and the attendance transitions.
type EventService struct {
	repo       repository.EventRepositoryInterface
	attendance repository.AttendanceRepositoryInterface
	reminders  ReminderScheduler
	store      *storage.Storage
	codeGen    func() string
}

type EventServiceInterface interface {
	CreateEvent(ctx context.Context, userID uuid.UUID, req *dto.CreateEventRequest, locale string) (*dto.EventResponse, *errors.AppError)
	GetEvent(ctx context.Context, eventID, userID uuid.UUID, locale string) (*dto.EventResponse, *errors.AppError)
	ListEvents(ctx context.Context, userID uuid.UUID, locale string, p params.QueryParams) (*dto.PaginatedEventResponse, *errors.AppError)
	UpdateEvent(ctx context.Context, eventID, userID uuid.UUID, req *dto.UpdateEventRequest, locale string) (*dto.EventResponse, *errors.AppError)

	JoinEvent(ctx context.Context, userID, eventID uuid.UUID) *errors.AppError
	LeaveEvent(ctx context.Context, userID, eventID uuid.UUID) *errors.AppError
	ToggleInterest(ctx context.Context, userID, eventID uuid.UUID) (*dto.InterestResponse, *errors.AppError)
	RateEvent(ctx context.Context, userID, eventID uuid.UUID, req *dto.RateEventRequest) *errors.AppError

	GetJoinedEvents(ctx context.Context, userID uuid.UUID, locale string) ([]dto.EventResponse, *errors.AppError)
	GetAttendees(ctx context.Context, eventID uuid.UUID) (*dto.AttendeesResponse, *errors.AppError)
	ImageUploadURL(ctx context.Context, eventID, userID uuid.UUID, req *dto.ImageUploadRequest) (*dto.ImageUploadResponse, *errors.AppError)
}

// NewEventService creates the event service. codeGen exists so tests get stable codes.
func NewEventService(repo repository.EventRepositoryInterface, attendance repository.AttendanceRepositoryInterface, reminders ReminderScheduler, store *storage.Storage, codeGen func() string) *EventService {
	return &EventService{
		repo:       repo,
		attendance: attendance,
		reminders:  reminders,
		store:      store,
		codeGen:    codeGen,
	}
}

// CreateEvent creates an event and auto-joins the creator, so a fresh event
// starts with one attendee.
func (s *EventService) CreateEvent(ctx context.Context, userID uuid.UUID, req *dto.CreateEventRequest, locale string) (*dto.EventResponse, *errors.AppError) {
	if userID == uuid.Nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "login required to create events", nil)
	}

	category := entity.Category(req.Category)
	if !category.IsValid() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "unknown event category", nil)
	}
	title := entity.LocalizedText(req.Title)
	if title.Resolve(constants.DefaultLocale) == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "title is required", nil)
	}
	if req.MaxAttendees < 1 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "max_attendees must be at least 1", nil)
	}

	event := &entity.Event{
		Code:         s.codeGen(),
		Slug:         slug.Make(title.Resolve(constants.DefaultLocale)),
		Title:        title,
		Description:  entity.LocalizedText(req.Description),
		Location:     entity.LocalizedText(req.Location),
		Organizer:    entity.LocalizedText(req.Organizer),
		Category:     category,
		StartsAt:     req.StartsAt,
		Address:      req.Address,
		Lat:          req.Lat,
		Lng:          req.Lng,
		ImageURL:     req.ImageURL,
		Attendees:    0,
		MaxAttendees: req.MaxAttendees,
		Price:        req.Price,
		Tags:         req.Tags,
		CreatedBy:    &userID,
	}
	event.ID = uuid.New()

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create event", err)
	}

	if err := s.attendance.Join(ctx, userID, created.ID); err != nil {
		logger.Error("EventService:CreateEvent:AutoJoin:Error:", err)
	} else {
		created.Attendees++
		metrics.EventsJoinedTotal.Inc()
	}

	s.scheduleReminder(created)

	resp := dto.ToEventResponse(created, locale)
	resp.IsAttending = true
	return resp, nil
}

func (s *EventService) scheduleReminder(event *entity.Event) {
	if s.reminders == nil {
		return
	}
	remindAt := event.StartsAt.Add(-constants.EventReminderLead)
	if remindAt.Before(time.Now()) {
		return
	}
	if err := s.reminders.EnqueueEventReminder(event.ID, remindAt); err != nil {
		logger.Error("EventService:scheduleReminder:Error:", err)
	}
}

// GetEvent returns the event with the caller's flags, interest count, and ratings.
func (s *EventService) GetEvent(ctx context.Context, eventID, userID uuid.UUID, locale string) (*dto.EventResponse, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}

	resp := dto.ToEventResponse(event, locale)

	if userID != uuid.Nil {
		attending, err := s.attendance.IsAttending(ctx, userID, eventID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrGetFailed, "failed to resolve attendance", err)
		}
		resp.IsAttending = attending
	}

	interested, err := s.attendance.GetInterestedUserIDs(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to resolve interest", err)
	}
	resp.InterestedCount = len(interested)
	for _, id := range interested {
		if id == userID {
			resp.IsInterested = true
			break
		}
	}

	ratings, err := s.repo.GetRatings(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load ratings", err)
	}
	var sum int
	for _, r := range ratings {
		resp.Ratings = append(resp.Ratings, dto.ToRatingResponse(&r))
		sum += r.Rating
	}
	if len(ratings) > 0 {
		resp.AverageRating = float64(sum) / float64(len(ratings))
	}

	return resp, nil
}

// ListEvents returns a page of events with the caller's attendance and interest
// flags attached. Anonymous callers get the page without flags.
func (s *EventService) ListEvents(ctx context.Context, userID uuid.UUID, locale string, p params.QueryParams) (*dto.PaginatedEventResponse, *errors.AppError) {
	page, err := s.repo.ListEvents(ctx, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list events", err)
	}

	joined := map[uuid.UUID]bool{}
	interested := map[uuid.UUID]bool{}
	if userID != uuid.Nil {
		joinedIDs, err := s.attendance.GetJoinedEventIDs(ctx, userID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrGetFailed, "failed to resolve joined events", err)
		}
		for _, id := range joinedIDs {
			joined[id] = true
		}
		interestedIDs, err := s.attendance.GetInterestedEventIDs(ctx, userID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrGetFailed, "failed to resolve interest", err)
		}
		for _, id := range interestedIDs {
			interested[id] = true
		}
	}

	items := make([]dto.EventResponse, 0, len(page.Items))
	for i := range page.Items {
		e := &page.Items[i]
		resp := dto.ToEventResponse(e, locale)
		resp.IsAttending = joined[e.ID]
		resp.IsInterested = interested[e.ID]
		items = append(items, *resp)
	}

	return &dto.PaginatedEventResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}, nil
}

// UpdateEvent applies a partial update. Only the event's creator may update it.
func (s *EventService) UpdateEvent(ctx context.Context, eventID, userID uuid.UUID, req *dto.UpdateEventRequest, locale string) (*dto.EventResponse, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}
	if event.CreatedBy == nil || *event.CreatedBy != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "only the event creator can update it", nil)
	}

	if req.Title != nil {
		event.Title = entity.LocalizedText(req.Title)
		event.Slug = slug.Make(event.Title.Resolve(constants.DefaultLocale))
	}
	if req.Description != nil {
		event.Description = entity.LocalizedText(req.Description)
	}
	if req.Location != nil {
		event.Location = entity.LocalizedText(req.Location)
	}
	if req.Organizer != nil {
		event.Organizer = entity.LocalizedText(req.Organizer)
	}
	if req.Category != nil {
		category := entity.Category(*req.Category)
		if !category.IsValid() {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "unknown event category", nil)
		}
		event.Category = category
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.Address != nil {
		event.Address = *req.Address
	}
	if req.Lat != nil {
		event.Lat = *req.Lat
	}
	if req.Lng != nil {
		event.Lng = *req.Lng
	}
	if req.ImageURL != nil {
		event.ImageURL = *req.ImageURL
	}
	if req.MaxAttendees != nil {
		if *req.MaxAttendees < event.Attendees {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "max_attendees cannot drop below current attendees", nil)
		}
		event.MaxAttendees = *req.MaxAttendees
	}
	if req.Price != nil {
		event.Price = *req.Price
	}
	if req.Tags != nil {
		event.Tags = req.Tags
	}

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update event", err)
	}

	return s.GetEvent(ctx, eventID, userID, locale)
}

// JoinEvent runs the atomic not-joined -> joined transition. Each failure is a
// distinct code so callers can tell "already joined" from "event full" from
// "not logged in".
func (s *EventService) JoinEvent(ctx context.Context, userID, eventID uuid.UUID) *errors.AppError {
	if userID == uuid.Nil {
		return errors.NewAppError(errors.ErrUnauthorized, "login required to join events", nil)
	}

	switch err := s.attendance.Join(ctx, userID, eventID); err {
	case nil:
		metrics.EventsJoinedTotal.Inc()
		return nil
	case repository.ErrNotFound:
		metrics.JoinRejectedTotal.WithLabelValues("not_found").Inc()
		return errors.NewAppError(errors.ErrNotFound, "event not found", err)
	case repository.ErrEventFull:
		metrics.JoinRejectedTotal.WithLabelValues("full").Inc()
		return errors.NewAppError(errors.ErrEventFull, "event is at capacity", err)
	case repository.ErrAlreadyJoined:
		metrics.JoinRejectedTotal.WithLabelValues("already_joined").Inc()
		return errors.NewAppError(errors.ErrAlreadyJoined, "already joined this event", err)
	default:
		logger.Error("EventService:JoinEvent:Error:", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to join event", err)
	}
}

// LeaveEvent runs the atomic joined -> not-joined transition.
func (s *EventService) LeaveEvent(ctx context.Context, userID, eventID uuid.UUID) *errors.AppError {
	if userID == uuid.Nil {
		return errors.NewAppError(errors.ErrUnauthorized, "login required to leave events", nil)
	}

	switch err := s.attendance.Leave(ctx, userID, eventID); err {
	case nil:
		metrics.EventsLeftTotal.Inc()
		return nil
	case repository.ErrNotFound:
		return errors.NewAppError(errors.ErrNotFound, "event not found", err)
	case repository.ErrNotJoined:
		return errors.NewAppError(errors.ErrNotJoined, "not joined to this event", err)
	default:
		logger.Error("EventService:LeaveEvent:Error:", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to leave event", err)
	}
}

// ToggleInterest flips the caller's interest mark. Involution: toggling twice
// restores the original interested set.
func (s *EventService) ToggleInterest(ctx context.Context, userID, eventID uuid.UUID) (*dto.InterestResponse, *errors.AppError) {
	if userID == uuid.Nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "login required to mark interest", nil)
	}

	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}

	nowInterested, err := s.attendance.ToggleInterest(ctx, userID, eventID)
	if err != nil {
		logger.Error("EventService:ToggleInterest:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to toggle interest", err)
	}

	return &dto.InterestResponse{EventID: eventID.String(), IsInterested: nowInterested}, nil
}

// RateEvent upserts the caller's rating for the event, one per (event, user).
func (s *EventService) RateEvent(ctx context.Context, userID, eventID uuid.UUID, req *dto.RateEventRequest) *errors.AppError {
	if userID == uuid.Nil {
		return errors.NewAppError(errors.ErrUnauthorized, "login required to rate events", nil)
	}
	if req.Rating < 1 || req.Rating > 5 {
		return errors.NewAppError(errors.ErrInvalidInput, "rating must be between 1 and 5", nil)
	}

	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "failed to get event", err)
	}
	if event == nil {
		return errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}

	rating := &entity.Rating{
		EventID: eventID,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := s.repo.UpsertRating(ctx, rating); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to save rating", err)
	}
	return nil
}

// GetJoinedEvents returns the caller's joined events, flags set.
func (s *EventService) GetJoinedEvents(ctx context.Context, userID uuid.UUID, locale string) ([]dto.EventResponse, *errors.AppError) {
	if userID == uuid.Nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "login required", nil)
	}

	ids, err := s.attendance.GetJoinedEventIDs(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to resolve joined events", err)
	}

	events, err := s.repo.GetEventsByIDs(ctx, ids)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load events", err)
	}

	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		resp := dto.ToEventResponse(&events[i], locale)
		resp.IsAttending = true
		result = append(result, *resp)
	}
	return result, nil
}

func (s *EventService) GetAttendees(ctx context.Context, eventID uuid.UUID) (*dto.AttendeesResponse, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}

	ids, err := s.attendance.GetAttendeeIDs(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list attendees", err)
	}

	attendees := make([]string, 0, len(ids))
	for _, id := range ids {
		attendees = append(attendees, id.String())
	}
	return &dto.AttendeesResponse{
		EventID:   eventID.String(),
		Attendees: attendees,
		Count:     len(attendees),
	}, nil
}

// ImageUploadURL issues a presigned upload URL for the event image.
// Only the event's creator may upload one.
func (s *EventService) ImageUploadURL(ctx context.Context, eventID, userID uuid.UUID, req *dto.ImageUploadRequest) (*dto.ImageUploadResponse, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}
	if event.CreatedBy == nil || *event.CreatedBy != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "only the event creator can upload an image", nil)
	}
	if s.store == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "storage is not configured", nil)
	}

	key := fmt.Sprintf("events/%s/%s", eventID, utils.GenerateID())
	uploadURL, err := s.store.PresignUpload(ctx, key, req.ContentType)
	if err != nil {
		logger.Error("EventService:ImageUploadURL:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue upload url", err)
	}

	return &dto.ImageUploadResponse{
		UploadURL: uploadURL,
		ImageURL:  s.store.PublicURL(key),
	}, nil
}

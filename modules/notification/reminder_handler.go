package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"campus-events-api/core/constants"
	"campus-events-api/core/logger"
	"campus-events-api/core/tasks"
	eventrepo "campus-events-api/modules/event/repository"
	"campus-events-api/modules/notification/dto"
	"campus-events-api/modules/notification/entity"
	"campus-events-api/modules/notification/service"

	"github.com/hibiken/asynq"
)

// ReminderHandler fans an event reminder task out into one notification per
// attendee.
type ReminderHandler struct {
	notifications service.NotificationServiceInterface
	events        eventrepo.EventRepositoryInterface
	attendance    eventrepo.AttendanceRepositoryInterface
}

func NewReminderHandler(notifications service.NotificationServiceInterface, events eventrepo.EventRepositoryInterface, attendance eventrepo.AttendanceRepositoryInterface) *ReminderHandler {
	return &ReminderHandler{
		notifications: notifications,
		events:        events,
		attendance:    attendance,
	}
}

func (h *ReminderHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload tasks.EventReminderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal reminder payload: %w", err)
	}

	event, err := h.events.GetEventByID(ctx, payload.EventID)
	if err != nil {
		return fmt.Errorf("load event %s: %w", payload.EventID, err)
	}
	if event == nil {
		// event is gone, nothing to remind
		logger.Warn("ReminderHandler:ProcessTask:EventMissing", "event_id", payload.EventID)
		return nil
	}

	attendeeIDs, err := h.attendance.GetAttendeeIDs(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("load attendees for %s: %w", event.ID, err)
	}

	title := event.Title.Resolve(constants.DefaultLocale)
	for _, userID := range attendeeIDs {
		req := &dto.CreateNotificationRequest{
			UserID:  userID,
			Title:   "Upcoming event",
			Message: fmt.Sprintf("%s starts soon", title),
			Type:    entity.TypeEventReminder,
			Data: map[string]interface{}{
				"event_id":  event.ID.String(),
				"starts_at": event.StartsAt,
			},
		}
		if err := h.notifications.Create(ctx, req); err != nil {
			logger.Error("ReminderHandler:ProcessTask:Create:Error:", err)
		}
	}

	logger.Info("ReminderHandler:ProcessTask:Done", "event_id", event.ID, "attendees", len(attendeeIDs))
	return nil
}

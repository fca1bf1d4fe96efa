package newsletter

import (
	"context"
	"fmt"
	"strings"

	"campus-events-api/core/constants"
	"campus-events-api/core/logger"
	eventrepo "campus-events-api/modules/event/repository"
	"campus-events-api/modules/newsletter/repository"

	"github.com/hibiken/asynq"
)

const digestEventCount = 5

// DigestHandler renders the weekly upcoming-events digest for every
// subscriber. Delivery is just structured logging; an SMTP hookup would slot
// in here.
type DigestHandler struct {
	subscribers repository.NewsletterRepositoryInterface
	events      eventrepo.EventRepositoryInterface
}

func NewDigestHandler(subscribers repository.NewsletterRepositoryInterface, events eventrepo.EventRepositoryInterface) *DigestHandler {
	return &DigestHandler{subscribers: subscribers, events: events}
}

func (h *DigestHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	upcoming, err := h.events.ListUpcomingEvents(ctx, digestEventCount)
	if err != nil {
		return fmt.Errorf("list upcoming events: %w", err)
	}
	if len(upcoming) == 0 {
		logger.Info("DigestHandler:ProcessTask:NoUpcomingEvents")
		return nil
	}

	subs, err := h.subscribers.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}

	titles := make([]string, 0, len(upcoming))
	for i := range upcoming {
		titles = append(titles, upcoming[i].Title.Resolve(constants.DefaultLocale))
	}
	digest := strings.Join(titles, ", ")

	for _, sub := range subs {
		logger.Info("DigestHandler:Send", "email", sub.Email, "events", digest)
	}
	logger.Info("DigestHandler:ProcessTask:Done", "subscribers", len(subs), "events", len(upcoming))
	return nil
}

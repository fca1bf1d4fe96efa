package tasks

import (
	"encoding/json"
	"time"

	"campus-events-api/core/config"
	"campus-events-api/core/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type names. Handlers are registered by the owning modules.
const (
	TypeEventReminder    = "event:reminder"
	TypeNewsletterDigest = "newsletter:digest"
)

// EventReminderPayload identifies the event to remind attendees about.
type EventReminderPayload struct {
	EventID uuid.UUID `json:"event_id"`
}

// Client wraps the asynq client used by services to enqueue work.
type Client struct {
	client *asynq.Client
}

var clientInstance *Client

func redisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// InitClient creates the process-wide task client.
func InitClient(cfg config.RedisConfig) *Client {
	clientInstance = &Client{client: asynq.NewClient(redisOpt(cfg))}
	return clientInstance
}

func GetClient() *Client {
	return clientInstance
}

// EnqueueEventReminder schedules a reminder task to run at the given time.
func (c *Client) EnqueueEventReminder(eventID uuid.UUID, at time.Time) error {
	payload, err := json.Marshal(EventReminderPayload{EventID: eventID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeEventReminder, payload)
	_, err = c.client.Enqueue(task, asynq.ProcessAt(at), asynq.MaxRetry(3))
	if err != nil {
		logger.Error("Tasks:EnqueueEventReminder:Error:", err)
	}
	return err
}

func (c *Client) Close() error {
	return c.client.Close()
}

// RunServer starts the asynq worker server with the given handler mux.
// Blocks until the server stops.
func RunServer(cfg config.RedisConfig, mux *asynq.ServeMux) error {
	srv := asynq.NewServer(redisOpt(cfg), asynq.Config{
		Concurrency: 5,
	})
	return srv.Run(mux)
}

// RunScheduler registers the weekly newsletter digest and runs the scheduler.
// Blocks until the scheduler stops.
func RunScheduler(cfg config.RedisConfig) error {
	scheduler := asynq.NewScheduler(redisOpt(cfg), nil)
	if _, err := scheduler.Register("0 9 * * MON", asynq.NewTask(TypeNewsletterDigest, nil)); err != nil {
		logger.Error("Tasks:RunScheduler:Register:Error:", err)
		return err
	}
	return scheduler.Run()
}

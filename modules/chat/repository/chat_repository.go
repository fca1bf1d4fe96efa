package repository

import (
	"context"
	"time"

	"campus-events-api/core/database"
	"campus-events-api/core/logger"
	"campus-events-api/modules/chat/entity"

	"github.com/google/uuid"
)

type ChatRepository struct {
	DB database.Database
}

type ChatRepositoryInterface interface {
	CreateMessage(ctx context.Context, message *entity.ChatMessage) error
	ListByEvent(ctx context.Context, eventID uuid.UUID, before time.Time, limit int) ([]entity.ChatMessage, error)
	HasPosted(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
}

func NewChatRepository(db database.Database) *ChatRepository {
	return &ChatRepository{DB: db}
}

func (r *ChatRepository) CreateMessage(ctx context.Context, message *entity.ChatMessage) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO chat_messages (id, event_id, user_id, body, kind, created_at)
		VALUES (:id, :event_id, :user_id, :body, :kind, :created_at)
	`
	if _, err := r.DB.NamedExecContext(ctx, query, message); err != nil {
		logger.Error("ChatRepository:CreateMessage:Error:", err)
		return err
	}
	return nil
}

// ListByEvent returns up to limit messages older than before, newest first.
func (r *ChatRepository) ListByEvent(ctx context.Context, eventID uuid.UUID, before time.Time, limit int) ([]entity.ChatMessage, error) {
	var messages []entity.ChatMessage
	query := `
		SELECT * FROM chat_messages
		WHERE event_id = $1 AND created_at < $2
		ORDER BY created_at DESC
		LIMIT $3
	`
	if err := r.DB.SelectContext(ctx, &messages, query, eventID, before, limit); err != nil {
		logger.Error("ChatRepository:ListByEvent:Error:", err)
		return nil, err
	}
	return messages, nil
}

func (r *ChatRepository) HasPosted(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM chat_messages WHERE event_id = $1 AND user_id = $2)`
	if err := r.DB.GetContext(ctx, &exists, query, eventID, userID); err != nil {
		logger.Error("ChatRepository:HasPosted:Error:", err)
		return false, err
	}
	return exists, nil
}

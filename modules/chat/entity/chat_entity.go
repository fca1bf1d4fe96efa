package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message kinds. System messages have no author.
const (
	KindText   = "text"
	KindSystem = "system"
)

// ChatMessage is one message in an event's group chat.
type ChatMessage struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	EventID   uuid.UUID  `db:"event_id" json:"event_id"`
	UserID    *uuid.UUID `db:"user_id" json:"user_id,omitempty"`
	Body      string     `db:"body" json:"body"`
	Kind      string     `db:"kind" json:"kind"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber is one newsletter recipient, unique per email.
type Subscriber struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

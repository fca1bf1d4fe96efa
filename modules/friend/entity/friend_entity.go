package entity

import (
	"campus-events-api/core/entity"

	"github.com/google/uuid"
)

// Friend request lifecycle. A request only ever moves forward:
// pending -> accepted or pending -> declined.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// FriendRequest links two users. One row per pair and direction; an accepted
// row is the friendship itself.
type FriendRequest struct {
	RequesterID uuid.UUID `db:"requester_id" json:"requester_id"`
	AddresseeID uuid.UUID `db:"addressee_id" json:"addressee_id"`
	Status      string    `db:"status" json:"status"`
	entity.BaseEntity
}

package dto

import "time"

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type SubscriberResponse struct {
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

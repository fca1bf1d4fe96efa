package dto

import (
	"time"

	"campus-events-api/modules/chat/entity"
)

type PostMessageRequest struct {
	Body string `json:"body" validate:"required"`
}

type ChatMessageResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id,omitempty"`
	UserName  string    `json:"user_name,omitempty"`
	Body      string    `json:"body"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

func ToChatMessageResponse(m *entity.ChatMessage, userName string) ChatMessageResponse {
	resp := ChatMessageResponse{
		ID:        m.ID.String(),
		EventID:   m.EventID.String(),
		UserName:  userName,
		Body:      m.Body,
		Kind:      m.Kind,
		CreatedAt: m.CreatedAt,
	}
	if m.UserID != nil {
		resp.UserID = m.UserID.String()
	}
	return resp
}

package dto

import (
	"time"

	authentity "campus-events-api/modules/auth/entity"
	"campus-events-api/modules/friend/entity"
)

type SendFriendRequestRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type FriendRequestResponse struct {
	ID          string    `json:"id"`
	RequesterID string    `json:"requester_id"`
	AddresseeID string    `json:"addressee_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// FriendResponse is the profile subset shown in friend lists.
type FriendResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	University string `json:"university"`
	Hobby      string `json:"hobby,omitempty"`
	MBTI       string `json:"mbti,omitempty"`
	Languages  string `json:"languages,omitempty"`
	AvatarURL  string `json:"avatar_url,omitempty"`
}

func ToFriendRequestResponse(r *entity.FriendRequest) *FriendRequestResponse {
	return &FriendRequestResponse{
		ID:          r.ID.String(),
		RequesterID: r.RequesterID.String(),
		AddresseeID: r.AddresseeID.String(),
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
}

func ToFriendResponse(u *authentity.User) FriendResponse {
	return FriendResponse{
		ID:         u.ID.String(),
		Name:       u.Name,
		University: u.University,
		Hobby:      u.Hobby,
		MBTI:       u.MBTI,
		Languages:  u.Languages,
		AvatarURL:  u.AvatarURL,
	}
}

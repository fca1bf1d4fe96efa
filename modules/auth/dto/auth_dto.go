package dto

import (
	"time"

	"campus-events-api/core/utils"
	"campus-events-api/modules/auth/entity"
)

// ===================== Request DTOs =====================

type RegisterRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Age        int    `json:"age"`
	University string `json:"university"`
	Hobby      string `json:"hobby"`
	MBTI       string `json:"mbti"`
	Languages  string `json:"languages"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UpdateProfileRequest carries a partial profile update. Nil fields are left
// untouched (shallow-merge semantics).
type UpdateProfileRequest struct {
	Name       *string `json:"name"`
	Age        *int    `json:"age"`
	University *string `json:"university"`
	Hobby      *string `json:"hobby"`
	MBTI       *string `json:"mbti"`
	Languages  *string `json:"languages"`
	AvatarURL  *string `json:"avatar_url"`
}

type AvatarUploadRequest struct {
	ContentType string `json:"content_type" validate:"required"`
}

// ===================== Response DTOs =====================

type UserResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Age              int       `json:"age"`
	University       string    `json:"university"`
	Hobby            string    `json:"hobby"`
	MBTI             string    `json:"mbti"`
	Languages        string    `json:"languages"`
	AvatarURL        string    `json:"avatar_url,omitempty"`
	FriendsCount     int       `json:"friends_count"`
	GroupChatsJoined int       `json:"group_chats_joined"`
	JoinedDate       time.Time `json:"joined_date"`
}

type AuthResponse struct {
	User   UserResponse     `json:"user"`
	Tokens *utils.TokenPair `json:"tokens"`
}

type AvatarUploadResponse struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}

type GoogleAuthURLResponse struct {
	URL string `json:"url"`
}

// ===================== Mappers =====================

func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:               u.ID.String(),
		Name:             u.Name,
		Email:            u.Email,
		Age:              u.Age,
		University:       u.University,
		Hobby:            u.Hobby,
		MBTI:             u.MBTI,
		Languages:        u.Languages,
		AvatarURL:        u.AvatarURL,
		FriendsCount:     u.FriendsCount,
		GroupChatsJoined: u.GroupChatsJoined,
		JoinedDate:       u.CreatedAt,
	}
}

package entity

import (
	"time"

	"campus-events-api/core/entity"
)

// User is a registered account. PasswordHash is bcrypt; plaintext is never stored.
type User struct {
	Name             string `db:"name" json:"name"`
	Email            string `db:"email" json:"email"`
	PasswordHash     string `db:"password_hash" json:"-"`
	Age              int    `db:"age" json:"age"`
	University       string `db:"university" json:"university"`
	Hobby            string `db:"hobby" json:"hobby"`
	MBTI             string `db:"mbti" json:"mbti"`
	Languages        string `db:"languages" json:"languages"`
	AvatarURL        string `db:"avatar_url" json:"avatar_url"`
	FriendsCount     int    `db:"friends_count" json:"friends_count"`
	GroupChatsJoined int    `db:"group_chats_joined" json:"group_chats_joined"`
	entity.BaseEntity
}

// OAuthState is a short-lived CSRF token for the Google login flow.
type OAuthState struct {
	State     string    `db:"state"`
	ExpiresAt time.Time `db:"expires_at"`
}

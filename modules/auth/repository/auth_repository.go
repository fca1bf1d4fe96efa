package repository

import (
	"context"
	"database/sql"
	"time"

	"campus-events-api/core/database"
	"campus-events-api/core/logger"
	"campus-events-api/modules/auth/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// AuthRepository handles user and OAuth-state database operations.
type AuthRepository struct {
	DB database.Database
}

func NewAuthRepository(db database.Database) *AuthRepository {
	return &AuthRepository{DB: db}
}

// AuthRepositoryInterface defines the repository contract. Tests substitute an
// in-memory implementation.
type AuthRepositoryInterface interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.User, error)
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	UpdateUser(ctx context.Context, user *entity.User) error
	AdjustFriendsCount(ctx context.Context, userID uuid.UUID, delta int) error
	AdjustGroupChatsJoined(ctx context.Context, userID uuid.UUID, delta int) error

	SaveOAuthState(ctx context.Context, state string, expiresAt time.Time) error
	ConsumeOAuthState(ctx context.Context, state string) (bool, error)
}

const userColumns = `id, name, email, password_hash, age, university, hobby, mbti,
	languages, avatar_url, friends_count, group_chats_joined, created_at, updated_at`

func (r *AuthRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByEmail:Error:", err)
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByID:Error:", err)
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`

	var users []entity.User
	err := r.DB.SelectContext(ctx, &users, query, pq.Array(uuidStrings(ids)))
	if err != nil {
		logger.Error("AuthRepository:GetUsersByIDs:Error:", err)
		return nil, err
	}
	return users, nil
}

func (r *AuthRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (id, name, email, password_hash, age, university, hobby, mbti, languages, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + userColumns

	var created entity.User
	err := r.DB.GetContext(ctx, &created, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Age,
		user.University, user.Hobby, user.MBTI, user.Languages, user.AvatarURL)
	if err != nil {
		logger.Error("AuthRepository:CreateUser:Error:", err)
		return nil, err
	}
	return &created, nil
}

func (r *AuthRepository) UpdateUser(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET name = $2, age = $3, university = $4, hobby = $5, mbti = $6,
		    languages = $7, avatar_url = $8, updated_at = NOW()
		WHERE id = $1
	`
	err := r.DB.ExecContext(ctx, query,
		user.ID, user.Name, user.Age, user.University, user.Hobby,
		user.MBTI, user.Languages, user.AvatarURL)
	if err != nil {
		logger.Error("AuthRepository:UpdateUser:Error:", err)
		return err
	}
	return nil
}

func (r *AuthRepository) AdjustFriendsCount(ctx context.Context, userID uuid.UUID, delta int) error {
	query := `UPDATE users SET friends_count = GREATEST(friends_count + $2, 0), updated_at = NOW() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, userID, delta)
	if err != nil {
		logger.Error("AuthRepository:AdjustFriendsCount:Error:", err)
		return err
	}
	return nil
}

func (r *AuthRepository) AdjustGroupChatsJoined(ctx context.Context, userID uuid.UUID, delta int) error {
	query := `UPDATE users SET group_chats_joined = GREATEST(group_chats_joined + $2, 0), updated_at = NOW() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, userID, delta)
	if err != nil {
		logger.Error("AuthRepository:AdjustGroupChatsJoined:Error:", err)
		return err
	}
	return nil
}

// ===================== OAuth state =====================

func (r *AuthRepository) SaveOAuthState(ctx context.Context, state string, expiresAt time.Time) error {
	query := `INSERT INTO oauth_states (state, expires_at) VALUES ($1, $2)`
	err := r.DB.ExecContext(ctx, query, state, expiresAt)
	if err != nil {
		logger.Error("AuthRepository:SaveOAuthState:Error:", err)
		return err
	}
	return nil
}

// ConsumeOAuthState deletes the state row and reports whether it existed and
// had not expired. Single statement so a state cannot be replayed.
func (r *AuthRepository) ConsumeOAuthState(ctx context.Context, state string) (bool, error) {
	query := `DELETE FROM oauth_states WHERE state = $1 AND expires_at > NOW()`
	res, err := r.DB.ExecResultContext(ctx, query, state)
	if err != nil {
		logger.Error("AuthRepository:ConsumeOAuthState:Error:", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

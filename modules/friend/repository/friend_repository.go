package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campus-events-api/core/database"
	"campus-events-api/core/logger"
	"campus-events-api/modules/friend/entity"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("friend request not found")

type FriendRepository struct {
	DB database.Database
}

type FriendRepositoryInterface interface {
	Create(ctx context.Context, request *entity.FriendRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FriendRequest, error)
	GetBetween(ctx context.Context, a, b uuid.UUID) (*entity.FriendRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListPendingFor(ctx context.Context, userID uuid.UUID) ([]entity.FriendRequest, error)
	ListFriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	DeleteFriendship(ctx context.Context, a, b uuid.UUID) error
}

func NewFriendRepository(db database.Database) *FriendRepository {
	return &FriendRepository{DB: db}
}

func (r *FriendRepository) Create(ctx context.Context, request *entity.FriendRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now

	query := `
		INSERT INTO friend_requests (id, requester_id, addressee_id, status, created_at, updated_at)
		VALUES (:id, :requester_id, :addressee_id, :status, :created_at, :updated_at)
	`
	if _, err := r.DB.NamedExecContext(ctx, query, request); err != nil {
		logger.Error("FriendRepository:Create:Error:", err)
		return err
	}
	return nil
}

func (r *FriendRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FriendRequest, error) {
	var request entity.FriendRequest
	query := `SELECT * FROM friend_requests WHERE id = $1`
	err := r.DB.GetContext(ctx, &request, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		logger.Error("FriendRepository:GetByID:Error:", err)
		return nil, err
	}
	return &request, nil
}

// GetBetween finds the request linking two users, in either direction.
func (r *FriendRepository) GetBetween(ctx context.Context, a, b uuid.UUID) (*entity.FriendRequest, error) {
	var request entity.FriendRequest
	query := `
		SELECT * FROM friend_requests
		WHERE (requester_id = $1 AND addressee_id = $2)
		   OR (requester_id = $2 AND addressee_id = $1)
	`
	err := r.DB.GetContext(ctx, &request, query, a, b)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		logger.Error("FriendRepository:GetBetween:Error:", err)
		return nil, err
	}
	return &request, nil
}

func (r *FriendRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE friend_requests SET status = $1, updated_at = NOW() WHERE id = $2`
	res, err := r.DB.ExecResultContext(ctx, query, status, id)
	if err != nil {
		logger.Error("FriendRepository:UpdateStatus:Error:", err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FriendRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM friend_requests WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id); err != nil {
		logger.Error("FriendRepository:Delete:Error:", err)
		return err
	}
	return nil
}

func (r *FriendRepository) ListPendingFor(ctx context.Context, userID uuid.UUID) ([]entity.FriendRequest, error) {
	var requests []entity.FriendRequest
	query := `
		SELECT * FROM friend_requests
		WHERE addressee_id = $1 AND status = $2
		ORDER BY created_at DESC
	`
	if err := r.DB.SelectContext(ctx, &requests, query, userID, entity.StatusPending); err != nil {
		logger.Error("FriendRepository:ListPendingFor:Error:", err)
		return nil, err
	}
	return requests, nil
}

// ListFriendIDs returns the other side of every accepted request involving the
// user.
func (r *FriendRepository) ListFriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `
		SELECT CASE WHEN requester_id = $1 THEN addressee_id ELSE requester_id END
		FROM friend_requests
		WHERE (requester_id = $1 OR addressee_id = $1) AND status = $2
	`
	if err := r.DB.SelectContext(ctx, &ids, query, userID, entity.StatusAccepted); err != nil {
		logger.Error("FriendRepository:ListFriendIDs:Error:", err)
		return nil, err
	}
	return ids, nil
}

func (r *FriendRepository) DeleteFriendship(ctx context.Context, a, b uuid.UUID) error {
	query := `
		DELETE FROM friend_requests
		WHERE status = $3
		  AND ((requester_id = $1 AND addressee_id = $2)
		    OR (requester_id = $2 AND addressee_id = $1))
	`
	res, err := r.DB.ExecResultContext(ctx, query, a, b, entity.StatusAccepted)
	if err != nil {
		logger.Error("FriendRepository:DeleteFriendship:Error:", err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"

	"campus-events-api/core/database"
	"campus-events-api/core/logger"

	"github.com/google/uuid"
)

// AttendanceRepository owns the join/leave/interest state. Join and Leave are
// single transactions over the event row and the attendance table, so the
// joined-set and the attendees counter can never disagree, regardless of how
// many callers race on the same (user, event) pair.
type AttendanceRepository struct {
	DB database.Database
}

func NewAttendanceRepository(db database.Database) *AttendanceRepository {
	return &AttendanceRepository{DB: db}
}

// AttendanceRepositoryInterface is the attendance storage contract. Tests
// substitute an in-memory implementation with the same transition semantics.
type AttendanceRepositoryInterface interface {
	Join(ctx context.Context, userID, eventID uuid.UUID) error
	Leave(ctx context.Context, userID, eventID uuid.UUID) error
	IsAttending(ctx context.Context, userID, eventID uuid.UUID) (bool, error)
	GetJoinedEventIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	GetAttendeeIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error)

	ToggleInterest(ctx context.Context, userID, eventID uuid.UUID) (bool, error)
	GetInterestedUserIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error)
	GetInterestedEventIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// Join is the atomic not-joined -> joined transition: lock the event row,
// check capacity, insert the attendance row, bump the counter. Any failed
// precondition rolls back with a domain error.
func (r *AttendanceRepository) Join(ctx context.Context, userID, eventID uuid.UUID) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("AttendanceRepository:Join:Begin:Error:", err)
		return err
	}
	defer tx.Rollback()

	var ev struct {
		Attendees    int `db:"attendees"`
		MaxAttendees int `db:"max_attendees"`
	}
	err = tx.GetContext(ctx, &ev, `SELECT attendees, max_attendees FROM events WHERE id = $1 FOR UPDATE`, eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		logger.Error("AttendanceRepository:Join:Lock:Error:", err)
		return err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO event_attendance (user_id, event_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, event_id) DO NOTHING
	`, userID, eventID)
	if err != nil {
		logger.Error("AttendanceRepository:Join:Insert:Error:", err)
		return err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if inserted == 0 {
		return ErrAlreadyJoined
	}

	if ev.Attendees >= ev.MaxAttendees {
		return ErrEventFull
	}

	if _, err := tx.ExecContext(ctx, `UPDATE events SET attendees = attendees + 1, updated_at = NOW() WHERE id = $1`, eventID); err != nil {
		logger.Error("AttendanceRepository:Join:Increment:Error:", err)
		return err
	}

	return tx.Commit()
}

// Leave is the atomic joined -> not-joined inverse. Leaving a pair that was
// never joined is rejected with ErrNotJoined and touches nothing.
func (r *AttendanceRepository) Leave(ctx context.Context, userID, eventID uuid.UUID) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("AttendanceRepository:Leave:Begin:Error:", err)
		return err
	}
	defer tx.Rollback()

	var lockedID uuid.UUID
	err = tx.GetContext(ctx, &lockedID, `SELECT id FROM events WHERE id = $1 FOR UPDATE`, eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		logger.Error("AttendanceRepository:Leave:Lock:Error:", err)
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM event_attendance WHERE user_id = $1 AND event_id = $2`, userID, eventID)
	if err != nil {
		logger.Error("AttendanceRepository:Leave:Delete:Error:", err)
		return err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotJoined
	}

	if _, err := tx.ExecContext(ctx, `UPDATE events SET attendees = GREATEST(attendees - 1, 0), updated_at = NOW() WHERE id = $1`, eventID); err != nil {
		logger.Error("AttendanceRepository:Leave:Decrement:Error:", err)
		return err
	}

	return tx.Commit()
}

func (r *AttendanceRepository) IsAttending(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM event_attendance WHERE user_id = $1 AND event_id = $2)`
	if err := r.DB.GetContext(ctx, &exists, query, userID, eventID); err != nil {
		logger.Error("AttendanceRepository:IsAttending:Error:", err)
		return false, err
	}
	return exists, nil
}

func (r *AttendanceRepository) GetJoinedEventIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `SELECT event_id FROM event_attendance WHERE user_id = $1 ORDER BY created_at`
	if err := r.DB.SelectContext(ctx, &ids, query, userID); err != nil {
		logger.Error("AttendanceRepository:GetJoinedEventIDs:Error:", err)
		return nil, err
	}
	return ids, nil
}

func (r *AttendanceRepository) GetAttendeeIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `SELECT user_id FROM event_attendance WHERE event_id = $1 ORDER BY created_at`
	if err := r.DB.SelectContext(ctx, &ids, query, eventID); err != nil {
		logger.Error("AttendanceRepository:GetAttendeeIDs:Error:", err)
		return nil, err
	}
	return ids, nil
}

// ===================== Interest =====================

// ToggleInterest flips the interest mark for the pair and reports the new
// state. Interest is keyed by user id, not display name, and carries no
// capacity constraint.
func (r *AttendanceRepository) ToggleInterest(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	res, err := r.DB.ExecResultContext(ctx, `
		INSERT INTO event_interest (user_id, event_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, event_id) DO NOTHING
	`, userID, eventID)
	if err != nil {
		logger.Error("AttendanceRepository:ToggleInterest:Insert:Error:", err)
		return false, err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if inserted > 0 {
		return true, nil
	}

	err = r.DB.ExecContext(ctx, `DELETE FROM event_interest WHERE user_id = $1 AND event_id = $2`, userID, eventID)
	if err != nil {
		logger.Error("AttendanceRepository:ToggleInterest:Delete:Error:", err)
		return false, err
	}
	return false, nil
}

func (r *AttendanceRepository) GetInterestedUserIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `SELECT user_id FROM event_interest WHERE event_id = $1 ORDER BY created_at`
	if err := r.DB.SelectContext(ctx, &ids, query, eventID); err != nil {
		logger.Error("AttendanceRepository:GetInterestedUserIDs:Error:", err)
		return nil, err
	}
	return ids, nil
}

func (r *AttendanceRepository) GetInterestedEventIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `SELECT event_id FROM event_interest WHERE user_id = $1 ORDER BY created_at`
	if err := r.DB.SelectContext(ctx, &ids, query, userID); err != nil {
		logger.Error("AttendanceRepository:GetInterestedEventIDs:Error:", err)
		return nil, err
	}
	return ids, nil
}

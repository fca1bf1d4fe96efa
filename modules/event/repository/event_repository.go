package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campus-events-api/core/database"
	"campus-events-api/core/logger"
	"campus-events-api/core/params"
	"campus-events-api/modules/event/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Domain errors surfaced by the attendance transitions. Services map these to
// the application error codes.
var (
	ErrNotFound      = errors.New("event not found")
	ErrEventFull     = errors.New("event capacity reached")
	ErrAlreadyJoined = errors.New("user already joined event")
	ErrNotJoined     = errors.New("user has not joined event")
)

// EventRepository handles event database operations.
type EventRepository struct {
	DB database.Database
}

func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{DB: db}
}

// EventRepositoryInterface defines the event storage contract.
type EventRepositoryInterface interface {
	CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	GetEventByCode(ctx context.Context, code string) (*entity.Event, error)
	ListEvents(ctx context.Context, p params.QueryParams) (*entity.PaginatedEventEntity, error)
	GetEventsByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Event, error)
	ListUpcomingEvents(ctx context.Context, limit int) ([]entity.Event, error)
	UpdateEvent(ctx context.Context, event *entity.Event) error

	GetRatings(ctx context.Context, eventID uuid.UUID) ([]entity.Rating, error)
	UpsertRating(ctx context.Context, rating *entity.Rating) error
}

const eventColumns = `id, code, slug, title, description, location, organizer, category,
	starts_at, address, lat, lng, image_url, attendees, max_attendees, price, tags,
	created_by, created_at, updated_at`

func (r *EventRepository) CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (id, code, slug, title, description, location, organizer, category,
		                    starts_at, address, lat, lng, image_url, attendees, max_attendees,
		                    price, tags, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING ` + eventColumns

	var created entity.Event
	err := r.DB.GetContext(ctx, &created, query,
		event.ID, event.Code, event.Slug, event.Title, event.Description, event.Location,
		event.Organizer, event.Category, event.StartsAt, event.Address, event.Lat, event.Lng,
		event.ImageURL, event.Attendees, event.MaxAttendees, event.Price, event.Tags, event.CreatedBy)
	if err != nil {
		logger.Error("EventRepository:CreateEvent:Error:", err)
		return nil, err
	}
	return &created, nil
}

func (r *EventRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetEventByID:Error:", err)
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) GetEventByCode(ctx context.Context, code string) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE code = $1`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetEventByCode:Error:", err)
		return nil, err
	}
	return &event, nil
}

// ListEvents returns a page of events filtered by category and a search term
// matched against the localized title and the address.
func (r *EventRepository) ListEvents(ctx context.Context, p params.QueryParams) (*entity.PaginatedEventEntity, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argn := 0

	if p.Category != "" {
		argn++
		where += fmt.Sprintf(" AND category = $%d", argn)
		args = append(args, p.Category)
	}
	if p.Search != "" {
		argn++
		where += fmt.Sprintf(" AND (title::text ILIKE $%d OR address ILIKE $%d)", argn, argn)
		args = append(args, "%"+p.Search+"%")
	}

	var totalItems int
	if err := r.DB.GetContext(ctx, &totalItems, `SELECT COUNT(*) FROM events`+where, args...); err != nil {
		logger.Error("EventRepository:ListEvents:Count:Error:", err)
		return nil, err
	}

	offset := (p.PageNumber - 1) * p.PageSize
	query := `SELECT ` + eventColumns + ` FROM events` + where +
		fmt.Sprintf(` ORDER BY starts_at ASC LIMIT $%d OFFSET $%d`, argn+1, argn+2)
	args = append(args, p.PageSize, offset)

	var events []entity.Event
	if err := r.DB.SelectContext(ctx, &events, query, args...); err != nil {
		logger.Error("EventRepository:ListEvents:Select:Error:", err)
		return nil, err
	}

	return &entity.PaginatedEventEntity{
		Items:      events,
		TotalItems: totalItems,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

func (r *EventRepository) GetEventsByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ANY($1) ORDER BY starts_at ASC`

	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}

	var events []entity.Event
	if err := r.DB.SelectContext(ctx, &events, query, pq.Array(strs)); err != nil {
		logger.Error("EventRepository:GetEventsByIDs:Error:", err)
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) ListUpcomingEvents(ctx context.Context, limit int) ([]entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE starts_at > NOW() ORDER BY starts_at ASC LIMIT $1`

	var events []entity.Event
	if err := r.DB.SelectContext(ctx, &events, query, limit); err != nil {
		logger.Error("EventRepository:ListUpcomingEvents:Error:", err)
		return nil, err
	}
	return events, nil
}

// UpdateEvent rewrites the mutable event fields. The attendees counter is owned
// by the attendance transitions and never written here.
func (r *EventRepository) UpdateEvent(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET slug = $2, title = $3, description = $4, location = $5, organizer = $6,
		    category = $7, starts_at = $8, address = $9, lat = $10, lng = $11,
		    image_url = $12, max_attendees = $13, price = $14, tags = $15, updated_at = NOW()
		WHERE id = $1
	`
	err := r.DB.ExecContext(ctx, query,
		event.ID, event.Slug, event.Title, event.Description, event.Location, event.Organizer,
		event.Category, event.StartsAt, event.Address, event.Lat, event.Lng,
		event.ImageURL, event.MaxAttendees, event.Price, event.Tags)
	if err != nil {
		logger.Error("EventRepository:UpdateEvent:Error:", err)
		return err
	}
	return nil
}

// ===================== Ratings =====================

func (r *EventRepository) GetRatings(ctx context.Context, eventID uuid.UUID) ([]entity.Rating, error) {
	query := `
		SELECT event_id, user_id, rating, comment, created_at
		FROM event_ratings
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	var ratings []entity.Rating
	if err := r.DB.SelectContext(ctx, &ratings, query, eventID); err != nil {
		logger.Error("EventRepository:GetRatings:Error:", err)
		return nil, err
	}
	return ratings, nil
}

func (r *EventRepository) UpsertRating(ctx context.Context, rating *entity.Rating) error {
	query := `
		INSERT INTO event_ratings (event_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id, user_id) DO UPDATE SET rating = $3, comment = $4
	`
	err := r.DB.ExecContext(ctx, query, rating.EventID, rating.UserID, rating.Rating, rating.Comment)
	if err != nil {
		logger.Error("EventRepository:UpsertRating:Error:", err)
		return err
	}
	return nil
}

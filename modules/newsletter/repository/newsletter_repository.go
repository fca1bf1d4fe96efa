package repository

import (
	"context"
	"errors"
	"time"

	"campus-events-api/core/database"
	"campus-events-api/core/logger"
	"campus-events-api/modules/newsletter/entity"

	"github.com/google/uuid"
)

var (
	ErrAlreadySubscribed = errors.New("email already subscribed")
	ErrNotSubscribed     = errors.New("email not subscribed")
)

type NewsletterRepository struct {
	DB database.Database
}

type NewsletterRepositoryInterface interface {
	Subscribe(ctx context.Context, email string) (*entity.Subscriber, error)
	Unsubscribe(ctx context.Context, email string) error
	ListAll(ctx context.Context) ([]entity.Subscriber, error)
}

func NewNewsletterRepository(db database.Database) *NewsletterRepository {
	return &NewsletterRepository{DB: db}
}

// Subscribe inserts the email once; a duplicate is ErrAlreadySubscribed.
func (r *NewsletterRepository) Subscribe(ctx context.Context, email string) (*entity.Subscriber, error) {
	subscriber := &entity.Subscriber{
		ID:        uuid.New(),
		Email:     email,
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO newsletter_subscribers (id, email, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO NOTHING
	`
	res, err := r.DB.ExecResultContext(ctx, query, subscriber.ID, subscriber.Email, subscriber.CreatedAt)
	if err != nil {
		logger.Error("NewsletterRepository:Subscribe:Error:", err)
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAlreadySubscribed
	}
	return subscriber, nil
}

func (r *NewsletterRepository) Unsubscribe(ctx context.Context, email string) error {
	query := `DELETE FROM newsletter_subscribers WHERE email = $1`
	res, err := r.DB.ExecResultContext(ctx, query, email)
	if err != nil {
		logger.Error("NewsletterRepository:Unsubscribe:Error:", err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotSubscribed
	}
	return nil
}

func (r *NewsletterRepository) ListAll(ctx context.Context) ([]entity.Subscriber, error) {
	var subscribers []entity.Subscriber
	query := `SELECT * FROM newsletter_subscribers ORDER BY created_at`
	if err := r.DB.SelectContext(ctx, &subscribers, query); err != nil {
		logger.Error("NewsletterRepository:ListAll:Error:", err)
		return nil, err
	}
	return subscribers, nil
}

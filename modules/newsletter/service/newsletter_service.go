package service

import (
	"context"
	"strings"

	"campus-events-api/core/errors"
	"campus-events-api/modules/newsletter/dto"
	"campus-events-api/modules/newsletter/repository"
)

// NewsletterService handles digest subscriptions.
type NewsletterService struct {
	repo repository.NewsletterRepositoryInterface
}

type NewsletterServiceInterface interface {
	Subscribe(ctx context.Context, req *dto.SubscribeRequest) (*dto.SubscriberResponse, *errors.AppError)
	Unsubscribe(ctx context.Context, email string) *errors.AppError
}

func NewNewsletterService(repo repository.NewsletterRepositoryInterface) *NewsletterService {
	return &NewsletterService{repo: repo}
}

// Subscribe registers an email once; re-subscribing the same email is a closed
// conflict, not a silent success.
func (s *NewsletterService) Subscribe(ctx context.Context, req *dto.SubscribeRequest) (*dto.SubscriberResponse, *errors.AppError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "a valid email is required", nil)
	}

	subscriber, err := s.repo.Subscribe(ctx, email)
	if err == repository.ErrAlreadySubscribed {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "email already subscribed", err)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to subscribe", err)
	}

	return &dto.SubscriberResponse{
		Email:        subscriber.Email,
		SubscribedAt: subscriber.CreatedAt,
	}, nil
}

func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) *errors.AppError {
	email = strings.ToLower(strings.TrimSpace(email))
	err := s.repo.Unsubscribe(ctx, email)
	if err == repository.ErrNotSubscribed {
		return errors.NewAppError(errors.ErrNotFound, "email is not subscribed", err)
	}
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to unsubscribe", err)
	}
	return nil
}

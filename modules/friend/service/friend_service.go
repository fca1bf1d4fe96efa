package service

import (
	"context"

	"campus-events-api/core/errors"
	"campus-events-api/core/logger"
	authrepo "campus-events-api/modules/auth/repository"
	"campus-events-api/modules/friend/dto"
	"campus-events-api/modules/friend/entity"
	"campus-events-api/modules/friend/repository"
	notifdto "campus-events-api/modules/notification/dto"
	notifentity "campus-events-api/modules/notification/entity"

	"github.com/google/uuid"
)

// Notifier is the slice of the notification service the friend flow needs.
type Notifier interface {
	Create(ctx context.Context, req *notifdto.CreateNotificationRequest) error
}

// FriendService handles the friend request lifecycle.
type FriendService struct {
	repo     repository.FriendRepositoryInterface
	users    authrepo.AuthRepositoryInterface
	notifier Notifier
}

type FriendServiceInterface interface {
	SendRequest(ctx context.Context, requesterID, addresseeID uuid.UUID) (*dto.FriendRequestResponse, *errors.AppError)
	Accept(ctx context.Context, userID, requestID uuid.UUID) (*dto.FriendRequestResponse, *errors.AppError)
	Decline(ctx context.Context, userID, requestID uuid.UUID) (*dto.FriendRequestResponse, *errors.AppError)
	ListPending(ctx context.Context, userID uuid.UUID) ([]dto.FriendRequestResponse, *errors.AppError)
	ListFriends(ctx context.Context, userID uuid.UUID) ([]dto.FriendResponse, *errors.AppError)
	RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) *errors.AppError
}

func NewFriendService(repo repository.FriendRepositoryInterface, users authrepo.AuthRepositoryInterface, notifier Notifier) *FriendService {
	return &FriendService{repo: repo, users: users, notifier: notifier}
}

func (s *FriendService) notify(ctx context.Context, req *notifdto.CreateNotificationRequest) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Create(ctx, req); err != nil {
		logger.Error("FriendService:notify:Error:", err)
	}
}

// SendRequest creates a pending request. A pair can hold at most one request;
// sending again, in either direction, is a conflict.
func (s *FriendService) SendRequest(ctx context.Context, requesterID, addresseeID uuid.UUID) (*dto.FriendRequestResponse, *errors.AppError) {
	if requesterID == addresseeID {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "cannot friend yourself", nil)
	}

	addressee, err := s.users.GetUserByID(ctx, addresseeID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to look up user", err)
	}
	if addressee == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}

	existing, err := s.repo.GetBetween(ctx, requesterID, addresseeID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to look up friend request", err)
	}
	if existing != nil && existing.Status != entity.StatusDeclined {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "friend request already exists", nil)
	}
	if existing != nil {
		// a declined pair can try again; the old row goes away first
		if err := s.repo.Delete(ctx, existing.ID); err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to reset friend request", err)
		}
	}

	request := &entity.FriendRequest{
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      entity.StatusPending,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to send friend request", err)
	}

	requester, _ := s.users.GetUserByID(ctx, requesterID)
	name := "Someone"
	if requester != nil {
		name = requester.Name
	}
	s.notify(ctx, &notifdto.CreateNotificationRequest{
		UserID:  addresseeID,
		Title:   "New friend request",
		Message: name + " sent you a friend request",
		Type:    notifentity.TypeFriendRequest,
		Data:    map[string]interface{}{"request_id": request.ID.String()},
	})

	return dto.ToFriendRequestResponse(request), nil
}

// Accept moves a pending request to accepted and bumps both friend counters.
// Only the addressee can accept.
func (s *FriendService) Accept(ctx context.Context, userID, requestID uuid.UUID) (*dto.FriendRequestResponse, *errors.AppError) {
	request, appErr := s.pendingRequestFor(ctx, userID, requestID)
	if appErr != nil {
		return nil, appErr
	}

	if err := s.repo.UpdateStatus(ctx, requestID, entity.StatusAccepted); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to accept friend request", err)
	}
	request.Status = entity.StatusAccepted

	if err := s.users.AdjustFriendsCount(ctx, request.RequesterID, 1); err != nil {
		logger.Error("FriendService:Accept:AdjustFriendsCount:Error:", err)
	}
	if err := s.users.AdjustFriendsCount(ctx, request.AddresseeID, 1); err != nil {
		logger.Error("FriendService:Accept:AdjustFriendsCount:Error:", err)
	}

	accepter, _ := s.users.GetUserByID(ctx, userID)
	name := "Someone"
	if accepter != nil {
		name = accepter.Name
	}
	s.notify(ctx, &notifdto.CreateNotificationRequest{
		UserID:  request.RequesterID,
		Title:   "Friend request accepted",
		Message: name + " accepted your friend request",
		Type:    notifentity.TypeFriendAccepted,
		Data:    map[string]interface{}{"user_id": userID.String()},
	})

	return dto.ToFriendRequestResponse(request), nil
}

// Decline moves a pending request to declined. Only the addressee can decline.
func (s *FriendService) Decline(ctx context.Context, userID, requestID uuid.UUID) (*dto.FriendRequestResponse, *errors.AppError) {
	request, appErr := s.pendingRequestFor(ctx, userID, requestID)
	if appErr != nil {
		return nil, appErr
	}

	if err := s.repo.UpdateStatus(ctx, requestID, entity.StatusDeclined); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to decline friend request", err)
	}
	request.Status = entity.StatusDeclined
	return dto.ToFriendRequestResponse(request), nil
}

func (s *FriendService) pendingRequestFor(ctx context.Context, userID, requestID uuid.UUID) (*entity.FriendRequest, *errors.AppError) {
	request, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load friend request", err)
	}
	if request == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "friend request not found", nil)
	}
	if request.AddresseeID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "only the addressee can answer a friend request", nil)
	}
	if request.Status != entity.StatusPending {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "friend request already answered", nil)
	}
	return request, nil
}

func (s *FriendService) ListPending(ctx context.Context, userID uuid.UUID) ([]dto.FriendRequestResponse, *errors.AppError) {
	requests, err := s.repo.ListPendingFor(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list friend requests", err)
	}

	result := make([]dto.FriendRequestResponse, 0, len(requests))
	for i := range requests {
		result = append(result, *dto.ToFriendRequestResponse(&requests[i]))
	}
	return result, nil
}

func (s *FriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]dto.FriendResponse, *errors.AppError) {
	ids, err := s.repo.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list friends", err)
	}

	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load friend profiles", err)
	}

	result := make([]dto.FriendResponse, 0, len(users))
	for i := range users {
		result = append(result, dto.ToFriendResponse(&users[i]))
	}
	return result, nil
}

// RemoveFriend deletes an accepted friendship and decrements both counters.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) *errors.AppError {
	err := s.repo.DeleteFriendship(ctx, userID, friendID)
	if err == repository.ErrNotFound {
		return errors.NewAppError(errors.ErrNotFound, "friendship not found", err)
	}
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to remove friend", err)
	}

	if err := s.users.AdjustFriendsCount(ctx, userID, -1); err != nil {
		logger.Error("FriendService:RemoveFriend:AdjustFriendsCount:Error:", err)
	}
	if err := s.users.AdjustFriendsCount(ctx, friendID, -1); err != nil {
		logger.Error("FriendService:RemoveFriend:AdjustFriendsCount:Error:", err)
	}
	return nil
}

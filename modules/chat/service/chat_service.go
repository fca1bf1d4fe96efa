package service

import (
	"context"
	"strings"
	"time"

	"campus-events-api/core/errors"
	"campus-events-api/core/logger"
	authrepo "campus-events-api/modules/auth/repository"
	"campus-events-api/modules/chat/dto"
	"campus-events-api/modules/chat/entity"
	"campus-events-api/modules/chat/repository"
	eventrepo "campus-events-api/modules/event/repository"

	"github.com/google/uuid"
)

const defaultPageLimit = 50

// ChatService handles per-event group chat. Membership follows attendance:
// only attendees can read or post.
type ChatService struct {
	repo       repository.ChatRepositoryInterface
	attendance eventrepo.AttendanceRepositoryInterface
	users      authrepo.AuthRepositoryInterface
}

type ChatServiceInterface interface {
	PostMessage(ctx context.Context, userID, eventID uuid.UUID, req *dto.PostMessageRequest) (*dto.ChatMessageResponse, *errors.AppError)
	ListMessages(ctx context.Context, userID, eventID uuid.UUID, before time.Time, limit int) ([]dto.ChatMessageResponse, *errors.AppError)
}

func NewChatService(repo repository.ChatRepositoryInterface, attendance eventrepo.AttendanceRepositoryInterface, users authrepo.AuthRepositoryInterface) *ChatService {
	return &ChatService{repo: repo, attendance: attendance, users: users}
}

func (s *ChatService) requireAttendance(ctx context.Context, userID, eventID uuid.UUID) *errors.AppError {
	attending, err := s.attendance.IsAttending(ctx, userID, eventID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "failed to resolve attendance", err)
	}
	if !attending {
		return errors.NewAppError(errors.ErrNotJoined, "join the event to use its chat", nil)
	}
	return nil
}

// PostMessage appends a text message. A user's first message also produces a
// system "joined the chat" line and bumps their chat counter.
func (s *ChatService) PostMessage(ctx context.Context, userID, eventID uuid.UUID, req *dto.PostMessageRequest) (*dto.ChatMessageResponse, *errors.AppError) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "message body is required", nil)
	}
	if appErr := s.requireAttendance(ctx, userID, eventID); appErr != nil {
		return nil, appErr
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load user", err)
	}
	name := "Someone"
	if user != nil {
		name = user.Name
	}

	posted, err := s.repo.HasPosted(ctx, eventID, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to check chat history", err)
	}
	if !posted {
		system := &entity.ChatMessage{
			EventID: eventID,
			Body:    name + " joined the chat",
			Kind:    entity.KindSystem,
		}
		if err := s.repo.CreateMessage(ctx, system); err != nil {
			logger.Error("ChatService:PostMessage:SystemMessage:Error:", err)
		}
		if err := s.users.AdjustGroupChatsJoined(ctx, userID, 1); err != nil {
			logger.Error("ChatService:PostMessage:AdjustGroupChatsJoined:Error:", err)
		}
	}

	message := &entity.ChatMessage{
		EventID: eventID,
		UserID:  &userID,
		Body:    body,
		Kind:    entity.KindText,
	}
	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to post message", err)
	}

	resp := dto.ToChatMessageResponse(message, name)
	return &resp, nil
}

// ListMessages returns a backwards page of the event's chat.
func (s *ChatService) ListMessages(ctx context.Context, userID, eventID uuid.UUID, before time.Time, limit int) ([]dto.ChatMessageResponse, *errors.AppError) {
	if appErr := s.requireAttendance(ctx, userID, eventID); appErr != nil {
		return nil, appErr
	}
	if before.IsZero() {
		before = time.Now()
	}
	if limit < 1 || limit > defaultPageLimit {
		limit = defaultPageLimit
	}

	messages, err := s.repo.ListByEvent(ctx, eventID, before, limit)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load messages", err)
	}

	// resolve author names in one query
	authorIDs := make([]uuid.UUID, 0, len(messages))
	seen := map[uuid.UUID]bool{}
	for _, m := range messages {
		if m.UserID != nil && !seen[*m.UserID] {
			seen[*m.UserID] = true
			authorIDs = append(authorIDs, *m.UserID)
		}
	}
	names := map[uuid.UUID]string{}
	if len(authorIDs) > 0 {
		users, err := s.users.GetUsersByIDs(ctx, authorIDs)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load authors", err)
		}
		for _, u := range users {
			names[u.ID] = u.Name
		}
	}

	result := make([]dto.ChatMessageResponse, 0, len(messages))
	for i := range messages {
		m := &messages[i]
		name := ""
		if m.UserID != nil {
			name = names[*m.UserID]
		}
		result = append(result, dto.ToChatMessageResponse(m, name))
	}
	return result, nil
}

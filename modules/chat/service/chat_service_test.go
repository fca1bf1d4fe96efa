package service

import (
	"context"
	"testing"
	"time"

	"campus-events-api/core/errors"
	authentity "campus-events-api/modules/auth/entity"
	"campus-events-api/modules/chat/dto"
	"campus-events-api/modules/chat/entity"
	eventrepo "campus-events-api/modules/event/repository"

	"github.com/google/uuid"
)

type fakeChatRepo struct {
	messages []*entity.ChatMessage
}

func (r *fakeChatRepo) CreateMessage(_ context.Context, message *entity.ChatMessage) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	cp := *message
	r.messages = append(r.messages, &cp)
	return nil
}

func (r *fakeChatRepo) ListByEvent(_ context.Context, eventID uuid.UUID, before time.Time, limit int) ([]entity.ChatMessage, error) {
	out := []entity.ChatMessage{}
	for i := len(r.messages) - 1; i >= 0 && len(out) < limit; i-- {
		m := r.messages[i]
		if m.EventID == eventID && m.CreatedAt.Before(before) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) HasPosted(_ context.Context, eventID, userID uuid.UUID) (bool, error) {
	for _, m := range r.messages {
		if m.EventID == eventID && m.UserID != nil && *m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// fakeAttendance answers membership from a fixed set.
type fakeAttendance struct {
	attending map[uuid.UUID]bool
}

func (a *fakeAttendance) Join(_ context.Context, _, _ uuid.UUID) error  { return nil }
func (a *fakeAttendance) Leave(_ context.Context, _, _ uuid.UUID) error { return nil }

func (a *fakeAttendance) IsAttending(_ context.Context, userID, _ uuid.UUID) (bool, error) {
	return a.attending[userID], nil
}

func (a *fakeAttendance) GetJoinedEventIDs(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func (a *fakeAttendance) GetAttendeeIDs(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func (a *fakeAttendance) ToggleInterest(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return false, nil
}

func (a *fakeAttendance) GetInterestedUserIDs(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func (a *fakeAttendance) GetInterestedEventIDs(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

var _ eventrepo.AttendanceRepositoryInterface = (*fakeAttendance)(nil)

type fakeUsers struct {
	users map[uuid.UUID]*authentity.User
}

func (d *fakeUsers) GetUserByEmail(_ context.Context, _ string) (*authentity.User, error) {
	return nil, nil
}

func (d *fakeUsers) GetUserByID(_ context.Context, id uuid.UUID) (*authentity.User, error) {
	return d.users[id], nil
}

func (d *fakeUsers) GetUsersByIDs(_ context.Context, ids []uuid.UUID) ([]authentity.User, error) {
	out := []authentity.User{}
	for _, id := range ids {
		if u, ok := d.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (d *fakeUsers) CreateUser(_ context.Context, user *authentity.User) (*authentity.User, error) {
	d.users[user.ID] = user
	return user, nil
}

func (d *fakeUsers) UpdateUser(_ context.Context, user *authentity.User) error {
	d.users[user.ID] = user
	return nil
}

func (d *fakeUsers) AdjustFriendsCount(_ context.Context, userID uuid.UUID, delta int) error {
	if u, ok := d.users[userID]; ok {
		u.FriendsCount += delta
	}
	return nil
}

func (d *fakeUsers) AdjustGroupChatsJoined(_ context.Context, userID uuid.UUID, delta int) error {
	if u, ok := d.users[userID]; ok {
		u.GroupChatsJoined += delta
	}
	return nil
}

func (d *fakeUsers) SaveOAuthState(_ context.Context, _ string, _ time.Time) error { return nil }

func (d *fakeUsers) ConsumeOAuthState(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func newChatFixture() (*ChatService, *fakeChatRepo, *fakeUsers, uuid.UUID, uuid.UUID) {
	attendee := uuid.New()
	eventID := uuid.New()
	user := &authentity.User{Name: "Alice"}
	user.ID = attendee
	users := &fakeUsers{users: map[uuid.UUID]*authentity.User{attendee: user}}
	repo := &fakeChatRepo{}
	svc := NewChatService(repo, &fakeAttendance{attending: map[uuid.UUID]bool{attendee: true}}, users)
	return svc, repo, users, attendee, eventID
}

func TestPostMessageRequiresAttendance(t *testing.T) {
	svc, _, _, _, eventID := newChatFixture()

	_, appErr := svc.PostMessage(context.Background(), uuid.New(), eventID, &dto.PostMessageRequest{Body: "hi"})
	if appErr == nil || appErr.Code != errors.ErrNotJoined {
		t.Fatalf("expected ErrNotJoined for non-attendee, got %v", appErr)
	}
}

func TestFirstMessageAddsSystemLine(t *testing.T) {
	svc, repo, users, attendee, eventID := newChatFixture()
	ctx := context.Background()

	resp, appErr := svc.PostMessage(ctx, attendee, eventID, &dto.PostMessageRequest{Body: "hello"})
	if appErr != nil {
		t.Fatalf("PostMessage: %v", appErr)
	}
	if resp.Kind != entity.KindText || resp.UserName != "Alice" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	if len(repo.messages) != 2 {
		t.Fatalf("expected system line plus message, got %d messages", len(repo.messages))
	}
	if repo.messages[0].Kind != entity.KindSystem || repo.messages[0].UserID != nil {
		t.Fatalf("first row should be an authorless system message: %+v", repo.messages[0])
	}
	if repo.messages[0].Body != "Alice joined the chat" {
		t.Fatalf("unexpected system body %q", repo.messages[0].Body)
	}
	if users.users[attendee].GroupChatsJoined != 1 {
		t.Fatalf("group chat counter not bumped")
	}

	// second message adds no system line and no counter bump
	if _, appErr := svc.PostMessage(ctx, attendee, eventID, &dto.PostMessageRequest{Body: "again"}); appErr != nil {
		t.Fatalf("PostMessage: %v", appErr)
	}
	if len(repo.messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(repo.messages))
	}
	if users.users[attendee].GroupChatsJoined != 1 {
		t.Fatalf("counter bumped twice")
	}
}

func TestPostEmptyMessageRejected(t *testing.T) {
	svc, _, _, attendee, eventID := newChatFixture()

	_, appErr := svc.PostMessage(context.Background(), attendee, eventID, &dto.PostMessageRequest{Body: "   "})
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for blank body, got %v", appErr)
	}
}

func TestListMessagesResolvesAuthors(t *testing.T) {
	svc, _, _, attendee, eventID := newChatFixture()
	ctx := context.Background()

	if _, appErr := svc.PostMessage(ctx, attendee, eventID, &dto.PostMessageRequest{Body: "hello"}); appErr != nil {
		t.Fatalf("PostMessage: %v", appErr)
	}

	messages, appErr := svc.ListMessages(ctx, attendee, eventID, time.Time{}, 0)
	if appErr != nil {
		t.Fatalf("ListMessages: %v", appErr)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	// newest first: the text message precedes the system line
	if messages[0].Kind != entity.KindText || messages[0].UserName != "Alice" {
		t.Fatalf("author not resolved: %+v", messages[0])
	}
	if messages[1].Kind != entity.KindSystem || messages[1].UserName != "" {
		t.Fatalf("system line should have no author: %+v", messages[1])
	}

	// reading is members-only too
	_, appErr = svc.ListMessages(ctx, uuid.New(), eventID, time.Time{}, 0)
	if appErr == nil || appErr.Code != errors.ErrNotJoined {
		t.Fatalf("expected ErrNotJoined for non-attendee, got %v", appErr)
	}
}

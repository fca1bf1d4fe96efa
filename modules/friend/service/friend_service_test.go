package service

import (
	"context"
	"testing"
	"time"

	"campus-events-api/core/errors"
	authentity "campus-events-api/modules/auth/entity"
	"campus-events-api/modules/friend/entity"
	"campus-events-api/modules/friend/repository"
	notifdto "campus-events-api/modules/notification/dto"

	"github.com/google/uuid"
)

type fakeFriendRepo struct {
	requests map[uuid.UUID]*entity.FriendRequest
}

func newFakeFriendRepo() *fakeFriendRepo {
	return &fakeFriendRepo{requests: map[uuid.UUID]*entity.FriendRequest{}}
}

func (r *fakeFriendRepo) Create(_ context.Context, request *entity.FriendRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	request.CreatedAt = time.Now()
	cp := *request
	r.requests[request.ID] = &cp
	return nil
}

func (r *fakeFriendRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.FriendRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *fakeFriendRepo) GetBetween(_ context.Context, a, b uuid.UUID) (*entity.FriendRequest, error) {
	for _, req := range r.requests {
		if (req.RequesterID == a && req.AddresseeID == b) || (req.RequesterID == b && req.AddresseeID == a) {
			cp := *req
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeFriendRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	req, ok := r.requests[id]
	if !ok {
		return repository.ErrNotFound
	}
	req.Status = status
	return nil
}

func (r *fakeFriendRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.requests, id)
	return nil
}

func (r *fakeFriendRepo) ListPendingFor(_ context.Context, userID uuid.UUID) ([]entity.FriendRequest, error) {
	out := []entity.FriendRequest{}
	for _, req := range r.requests {
		if req.AddresseeID == userID && req.Status == entity.StatusPending {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeFriendRepo) ListFriendIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	for _, req := range r.requests {
		if req.Status != entity.StatusAccepted {
			continue
		}
		if req.RequesterID == userID {
			out = append(out, req.AddresseeID)
		} else if req.AddresseeID == userID {
			out = append(out, req.RequesterID)
		}
	}
	return out, nil
}

func (r *fakeFriendRepo) DeleteFriendship(_ context.Context, a, b uuid.UUID) error {
	for id, req := range r.requests {
		if req.Status != entity.StatusAccepted {
			continue
		}
		if (req.RequesterID == a && req.AddresseeID == b) || (req.RequesterID == b && req.AddresseeID == a) {
			delete(r.requests, id)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeUserDirectory struct {
	users map[uuid.UUID]*authentity.User
}

func newFakeUserDirectory(names map[uuid.UUID]string) *fakeUserDirectory {
	d := &fakeUserDirectory{users: map[uuid.UUID]*authentity.User{}}
	for id, name := range names {
		u := &authentity.User{Name: name, University: "SNU"}
		u.ID = id
		d.users[id] = u
	}
	return d
}

func (d *fakeUserDirectory) GetUserByEmail(_ context.Context, email string) (*authentity.User, error) {
	for _, u := range d.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (d *fakeUserDirectory) GetUserByID(_ context.Context, id uuid.UUID) (*authentity.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (d *fakeUserDirectory) GetUsersByIDs(_ context.Context, ids []uuid.UUID) ([]authentity.User, error) {
	out := []authentity.User{}
	for _, id := range ids {
		if u, ok := d.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (d *fakeUserDirectory) CreateUser(_ context.Context, user *authentity.User) (*authentity.User, error) {
	d.users[user.ID] = user
	return user, nil
}

func (d *fakeUserDirectory) UpdateUser(_ context.Context, user *authentity.User) error {
	d.users[user.ID] = user
	return nil
}

func (d *fakeUserDirectory) AdjustFriendsCount(_ context.Context, userID uuid.UUID, delta int) error {
	if u, ok := d.users[userID]; ok {
		u.FriendsCount += delta
	}
	return nil
}

func (d *fakeUserDirectory) AdjustGroupChatsJoined(_ context.Context, userID uuid.UUID, delta int) error {
	if u, ok := d.users[userID]; ok {
		u.GroupChatsJoined += delta
	}
	return nil
}

func (d *fakeUserDirectory) SaveOAuthState(_ context.Context, _ string, _ time.Time) error {
	return nil
}

func (d *fakeUserDirectory) ConsumeOAuthState(_ context.Context, _ string) (bool, error) {
	return false, nil
}

type recordingNotifier struct {
	created []*notifdto.CreateNotificationRequest
}

func (n *recordingNotifier) Create(_ context.Context, req *notifdto.CreateNotificationRequest) error {
	n.created = append(n.created, req)
	return nil
}

func newFriendFixture() (*FriendService, *fakeUserDirectory, *recordingNotifier, uuid.UUID, uuid.UUID) {
	alice := uuid.New()
	bob := uuid.New()
	users := newFakeUserDirectory(map[uuid.UUID]string{alice: "Alice", bob: "Bob"})
	notifier := &recordingNotifier{}
	svc := NewFriendService(newFakeFriendRepo(), users, notifier)
	return svc, users, notifier, alice, bob
}

func TestSendFriendRequest(t *testing.T) {
	svc, _, notifier, alice, bob := newFriendFixture()
	ctx := context.Background()

	resp, appErr := svc.SendRequest(ctx, alice, bob)
	if appErr != nil {
		t.Fatalf("SendRequest: %v", appErr)
	}
	if resp.Status != entity.StatusPending {
		t.Fatalf("expected pending request, got %q", resp.Status)
	}
	if len(notifier.created) != 1 || notifier.created[0].UserID != bob {
		t.Fatalf("addressee not notified")
	}

	// duplicate in either direction is a conflict
	_, appErr = svc.SendRequest(ctx, alice, bob)
	if appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists resending, got %v", appErr)
	}
	_, appErr = svc.SendRequest(ctx, bob, alice)
	if appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists for reverse request, got %v", appErr)
	}

	_, appErr = svc.SendRequest(ctx, alice, alice)
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for self-friend, got %v", appErr)
	}

	_, appErr = svc.SendRequest(ctx, alice, uuid.New())
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", appErr)
	}
}

func TestAcceptFriendRequest(t *testing.T) {
	svc, users, notifier, alice, bob := newFriendFixture()
	ctx := context.Background()

	sent, appErr := svc.SendRequest(ctx, alice, bob)
	if appErr != nil {
		t.Fatalf("SendRequest: %v", appErr)
	}
	requestID := uuid.MustParse(sent.ID)

	// only the addressee can answer
	_, appErr = svc.Accept(ctx, alice, requestID)
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("expected ErrForbidden for requester accepting, got %v", appErr)
	}

	accepted, appErr := svc.Accept(ctx, bob, requestID)
	if appErr != nil {
		t.Fatalf("Accept: %v", appErr)
	}
	if accepted.Status != entity.StatusAccepted {
		t.Fatalf("expected accepted status, got %q", accepted.Status)
	}
	if users.users[alice].FriendsCount != 1 || users.users[bob].FriendsCount != 1 {
		t.Fatalf("friend counters not bumped: alice=%d bob=%d",
			users.users[alice].FriendsCount, users.users[bob].FriendsCount)
	}
	if len(notifier.created) != 2 || notifier.created[1].UserID != alice {
		t.Fatalf("requester not notified of acceptance")
	}

	// answering twice is a conflict
	_, appErr = svc.Accept(ctx, bob, requestID)
	if appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists for double accept, got %v", appErr)
	}

	friends, appErr := svc.ListFriends(ctx, alice)
	if appErr != nil {
		t.Fatalf("ListFriends: %v", appErr)
	}
	if len(friends) != 1 || friends[0].Name != "Bob" {
		t.Fatalf("unexpected friend list: %+v", friends)
	}
}

func TestDeclineFriendRequest(t *testing.T) {
	svc, users, _, alice, bob := newFriendFixture()
	ctx := context.Background()

	sent, _ := svc.SendRequest(ctx, alice, bob)
	requestID := uuid.MustParse(sent.ID)

	declined, appErr := svc.Decline(ctx, bob, requestID)
	if appErr != nil {
		t.Fatalf("Decline: %v", appErr)
	}
	if declined.Status != entity.StatusDeclined {
		t.Fatalf("expected declined status, got %q", declined.Status)
	}
	if users.users[alice].FriendsCount != 0 {
		t.Fatalf("decline must not bump counters")
	}

	// a declined pair can try again
	if _, appErr := svc.SendRequest(ctx, alice, bob); appErr != nil {
		t.Fatalf("resend after decline: %v", appErr)
	}
}

func TestRemoveFriend(t *testing.T) {
	svc, users, _, alice, bob := newFriendFixture()
	ctx := context.Background()

	sent, _ := svc.SendRequest(ctx, alice, bob)
	if _, appErr := svc.Accept(ctx, bob, uuid.MustParse(sent.ID)); appErr != nil {
		t.Fatalf("Accept: %v", appErr)
	}

	if appErr := svc.RemoveFriend(ctx, alice, bob); appErr != nil {
		t.Fatalf("RemoveFriend: %v", appErr)
	}
	if users.users[alice].FriendsCount != 0 || users.users[bob].FriendsCount != 0 {
		t.Fatalf("friend counters not decremented")
	}

	appErr := svc.RemoveFriend(ctx, alice, bob)
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("expected ErrNotFound removing twice, got %v", appErr)
	}
}

func TestListPending(t *testing.T) {
	svc, _, _, alice, bob := newFriendFixture()
	ctx := context.Background()

	if _, appErr := svc.SendRequest(ctx, alice, bob); appErr != nil {
		t.Fatalf("SendRequest: %v", appErr)
	}

	pending, appErr := svc.ListPending(ctx, bob)
	if appErr != nil {
		t.Fatalf("ListPending: %v", appErr)
	}
	if len(pending) != 1 || pending[0].RequesterID != alice.String() {
		t.Fatalf("unexpected pending list: %+v", pending)
	}

	// the requester has no incoming requests
	pending, _ = svc.ListPending(ctx, alice)
	if len(pending) != 0 {
		t.Fatalf("requester should not see own request as incoming")
	}
}

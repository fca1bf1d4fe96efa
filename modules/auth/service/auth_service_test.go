package service

import (
	"context"
	"os"
	"testing"
	"time"

	"campus-events-api/core/config"
	"campus-events-api/core/errors"
	"campus-events-api/modules/auth/dto"
	"campus-events-api/modules/auth/entity"

	"github.com/google/uuid"
)

func TestMain(m *testing.M) {
	if _, err := config.Load(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// fakeAuthRepo keeps users in memory with the same uniqueness semantics as the
// SQL repository.
type fakeAuthRepo struct {
	byID    map[uuid.UUID]*entity.User
	byEmail map[string]*entity.User
	states  map[string]time.Time
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		byID:    map[uuid.UUID]*entity.User{},
		byEmail: map[string]*entity.User{},
		states:  map[string]time.Time{},
	}
}

func (r *fakeAuthRepo) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeAuthRepo) GetUserByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeAuthRepo) GetUsersByIDs(_ context.Context, ids []uuid.UUID) ([]entity.User, error) {
	out := []entity.User{}
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeAuthRepo) CreateUser(_ context.Context, user *entity.User) (*entity.User, error) {
	cp := *user
	r.byID[user.ID] = &cp
	r.byEmail[user.Email] = &cp
	out := cp
	return &out, nil
}

func (r *fakeAuthRepo) UpdateUser(_ context.Context, user *entity.User) error {
	cp := *user
	r.byID[user.ID] = &cp
	r.byEmail[user.Email] = &cp
	return nil
}

func (r *fakeAuthRepo) AdjustFriendsCount(_ context.Context, userID uuid.UUID, delta int) error {
	if u, ok := r.byID[userID]; ok {
		u.FriendsCount += delta
	}
	return nil
}

func (r *fakeAuthRepo) AdjustGroupChatsJoined(_ context.Context, userID uuid.UUID, delta int) error {
	if u, ok := r.byID[userID]; ok {
		u.GroupChatsJoined += delta
	}
	return nil
}

func (r *fakeAuthRepo) SaveOAuthState(_ context.Context, state string, expiresAt time.Time) error {
	r.states[state] = expiresAt
	return nil
}

func (r *fakeAuthRepo) ConsumeOAuthState(_ context.Context, state string) (bool, error) {
	expiresAt, ok := r.states[state]
	if !ok || expiresAt.Before(time.Now()) {
		return false, nil
	}
	delete(r.states, state)
	return true, nil
}

type fakeCache struct {
	blacklist map[string]bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{blacklist: map[string]bool{}}
}

func (c *fakeCache) AddToTokenBlacklist(_ context.Context, token string) error {
	c.blacklist[token] = true
	return nil
}

func (c *fakeCache) IsTokenBlacklisted(_ context.Context, token string) (bool, error) {
	return c.blacklist[token], nil
}

func registerTestUser(t *testing.T, svc *AuthService, email string) *dto.AuthResponse {
	t.Helper()
	resp, appErr := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:       "Huimin",
		Email:      email,
		Password:   "password123",
		Age:        22,
		University: "SNU",
	})
	if appErr != nil {
		t.Fatalf("Register: %v", appErr)
	}
	return resp
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeAuthRepo(), newFakeCache(), nil)

	registerTestUser(t, svc, "huimin@snu.ac.kr")

	_, appErr := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Another",
		Email:    "Huimin@snu.ac.kr", // same address, different case
		Password: "otherpassword",
	})
	if appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", appErr)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	svc := NewAuthService(newFakeAuthRepo(), newFakeCache(), nil)
	registerTestUser(t, svc, "huimin@snu.ac.kr")
	ctx := context.Background()

	resp, appErr := svc.Login(ctx, &dto.LoginRequest{Email: "huimin@snu.ac.kr", Password: "password123"})
	if appErr != nil {
		t.Fatalf("Login: %v", appErr)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Fatalf("missing tokens in login response")
	}
	if resp.User.Email != "huimin@snu.ac.kr" {
		t.Fatalf("unexpected user email %q", resp.User.Email)
	}

	// wrong password and unknown email yield the same closed failure
	_, appErr = svc.Login(ctx, &dto.LoginRequest{Email: "huimin@snu.ac.kr", Password: "wrong"})
	if appErr == nil || appErr.Code != errors.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", appErr)
	}
	_, appErr = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@snu.ac.kr", Password: "password123"})
	if appErr == nil || appErr.Code != errors.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", appErr)
	}
}

func TestRefreshToken(t *testing.T) {
	svc := NewAuthService(newFakeAuthRepo(), newFakeCache(), nil)
	registered := registerTestUser(t, svc, "huimin@snu.ac.kr")

	resp, appErr := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: registered.Tokens.RefreshToken,
	})
	if appErr != nil {
		t.Fatalf("RefreshToken: %v", appErr)
	}
	if resp.Tokens.AccessToken == "" {
		t.Fatalf("missing access token after refresh")
	}

	_, appErr = svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: "garbage"})
	if appErr == nil || appErr.Code != errors.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for bad refresh token, got %v", appErr)
	}
}

func TestLogoutBlacklistsToken(t *testing.T) {
	c := newFakeCache()
	svc := NewAuthService(newFakeAuthRepo(), c, nil)
	registered := registerTestUser(t, svc, "huimin@snu.ac.kr")

	if appErr := svc.Logout(context.Background(), registered.Tokens.AccessToken); appErr != nil {
		t.Fatalf("Logout: %v", appErr)
	}
	blacklisted, _ := c.IsTokenBlacklisted(context.Background(), registered.Tokens.AccessToken)
	if !blacklisted {
		t.Fatalf("token not blacklisted after logout")
	}
}

func TestUpdateProfileShallowMerge(t *testing.T) {
	svc := NewAuthService(newFakeAuthRepo(), newFakeCache(), nil)
	registered := registerTestUser(t, svc, "huimin@snu.ac.kr")
	userID := uuid.MustParse(registered.User.ID)
	ctx := context.Background()

	hobby := "bouldering"
	resp, appErr := svc.UpdateProfile(ctx, userID, &dto.UpdateProfileRequest{Hobby: &hobby})
	if appErr != nil {
		t.Fatalf("UpdateProfile: %v", appErr)
	}
	if resp.Hobby != "bouldering" {
		t.Fatalf("hobby not updated: %q", resp.Hobby)
	}
	// untouched fields survive the partial update
	if resp.Name != "Huimin" || resp.University != "SNU" || resp.Age != 22 {
		t.Fatalf("partial update clobbered other fields: %+v", resp)
	}

	_, appErr = svc.UpdateProfile(ctx, uuid.New(), &dto.UpdateProfileRequest{Hobby: &hobby})
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", appErr)
	}
}

package service

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"campus-events-api/core/errors"
	"campus-events-api/core/params"
	"campus-events-api/modules/event/dto"
	"campus-events-api/modules/event/entity"
	"campus-events-api/modules/event/repository"

	"github.com/google/uuid"
)

// fakeStore backs in-memory repositories with the same transition semantics
// as the SQL implementations, so services can be tested without a database.
type fakeStore struct {
	mu       sync.Mutex
	events   map[uuid.UUID]*entity.Event
	joined   map[uuid.UUID]map[uuid.UUID]bool
	interest map[uuid.UUID]map[uuid.UUID]bool
	ratings  map[uuid.UUID]map[uuid.UUID]entity.Rating
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:   map[uuid.UUID]*entity.Event{},
		joined:   map[uuid.UUID]map[uuid.UUID]bool{},
		interest: map[uuid.UUID]map[uuid.UUID]bool{},
		ratings:  map[uuid.UUID]map[uuid.UUID]entity.Rating{},
	}
}

type fakeEventRepo struct{ store *fakeStore }

func (r *fakeEventRepo) CreateEvent(_ context.Context, event *entity.Event) (*entity.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *event
	r.store.events[event.ID] = &cp
	r.store.joined[event.ID] = map[uuid.UUID]bool{}
	r.store.interest[event.ID] = map[uuid.UUID]bool{}
	out := cp
	return &out, nil
}

func (r *fakeEventRepo) GetEventByID(_ context.Context, id uuid.UUID) (*entity.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ev, ok := r.store.events[id]
	if !ok {
		return nil, nil
	}
	cp := *ev
	return &cp, nil
}

func (r *fakeEventRepo) GetEventByCode(_ context.Context, code string) (*entity.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, ev := range r.store.events {
		if ev.Code == code {
			cp := *ev
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeEventRepo) ListEvents(_ context.Context, p params.QueryParams) (*entity.PaginatedEventEntity, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	items := []entity.Event{}
	for _, ev := range r.store.events {
		if p.Category != "" && string(ev.Category) != p.Category {
			continue
		}
		if p.Search != "" {
			match := false
			for _, v := range ev.Title {
				if strings.Contains(strings.ToLower(v), strings.ToLower(p.Search)) {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		items = append(items, *ev)
	}
	return &entity.PaginatedEventEntity{
		Items:      items,
		TotalItems: len(items),
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

func (r *fakeEventRepo) GetEventsByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []entity.Event{}
	for _, id := range ids {
		if ev, ok := r.store.events[id]; ok {
			out = append(out, *ev)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListUpcomingEvents(_ context.Context, limit int) ([]entity.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []entity.Event{}
	now := time.Now()
	for _, ev := range r.store.events {
		if ev.StartsAt.After(now) && len(out) < limit {
			out = append(out, *ev)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) UpdateEvent(_ context.Context, event *entity.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.events[event.ID]
	if !ok {
		return repository.ErrNotFound
	}
	// the attendees counter is owned by the attendance transitions
	attendees := stored.Attendees
	cp := *event
	cp.Attendees = attendees
	r.store.events[event.ID] = &cp
	return nil
}

func (r *fakeEventRepo) GetRatings(_ context.Context, eventID uuid.UUID) ([]entity.Rating, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []entity.Rating{}
	for _, rating := range r.store.ratings[eventID] {
		out = append(out, rating)
	}
	return out, nil
}

func (r *fakeEventRepo) UpsertRating(_ context.Context, rating *entity.Rating) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.ratings[rating.EventID] == nil {
		r.store.ratings[rating.EventID] = map[uuid.UUID]entity.Rating{}
	}
	r.store.ratings[rating.EventID][rating.UserID] = *rating
	return nil
}

type fakeAttendanceRepo struct{ store *fakeStore }

func (r *fakeAttendanceRepo) Join(_ context.Context, userID, eventID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ev, ok := r.store.events[eventID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.store.joined[eventID][userID] {
		return repository.ErrAlreadyJoined
	}
	if ev.Attendees >= ev.MaxAttendees {
		return repository.ErrEventFull
	}
	r.store.joined[eventID][userID] = true
	ev.Attendees++
	return nil
}

func (r *fakeAttendanceRepo) Leave(_ context.Context, userID, eventID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ev, ok := r.store.events[eventID]
	if !ok {
		return repository.ErrNotFound
	}
	if !r.store.joined[eventID][userID] {
		return repository.ErrNotJoined
	}
	delete(r.store.joined[eventID], userID)
	if ev.Attendees > 0 {
		ev.Attendees--
	}
	return nil
}

func (r *fakeAttendanceRepo) IsAttending(_ context.Context, userID, eventID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.joined[eventID][userID], nil
}

func (r *fakeAttendanceRepo) GetJoinedEventIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []uuid.UUID{}
	for eventID, users := range r.store.joined {
		if users[userID] {
			out = append(out, eventID)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) GetAttendeeIDs(_ context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []uuid.UUID{}
	for userID := range r.store.joined[eventID] {
		out = append(out, userID)
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ToggleInterest(_ context.Context, userID, eventID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.interest[eventID] == nil {
		r.store.interest[eventID] = map[uuid.UUID]bool{}
	}
	if r.store.interest[eventID][userID] {
		delete(r.store.interest[eventID], userID)
		return false, nil
	}
	r.store.interest[eventID][userID] = true
	return true, nil
}

func (r *fakeAttendanceRepo) GetInterestedUserIDs(_ context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []uuid.UUID{}
	for userID := range r.store.interest[eventID] {
		out = append(out, userID)
	}
	return out, nil
}

func (r *fakeAttendanceRepo) GetInterestedEventIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []uuid.UUID{}
	for eventID, users := range r.store.interest {
		if users[userID] {
			out = append(out, eventID)
		}
	}
	return out, nil
}

type fakeScheduler struct {
	mu    sync.Mutex
	calls []uuid.UUID
}

func (s *fakeScheduler) EnqueueEventReminder(eventID uuid.UUID, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, eventID)
	return nil
}

func newTestService(store *fakeStore) (*EventService, *fakeScheduler) {
	sched := &fakeScheduler{}
	svc := NewEventService(&fakeEventRepo{store: store}, &fakeAttendanceRepo{store: store}, sched, nil, func() string { return "abc1234" })
	return svc, sched
}

func createTestEvent(t *testing.T, svc *EventService, creator uuid.UUID, maxAttendees int) *dto.EventResponse {
	t.Helper()
	resp, appErr := svc.CreateEvent(context.Background(), creator, &dto.CreateEventRequest{
		Title:        map[string]string{"en": "Han River Picnic", "ko": "한강 피크닉"},
		Description:  map[string]string{"en": "Bring snacks"},
		Category:     "social",
		StartsAt:     time.Now().Add(48 * time.Hour),
		MaxAttendees: maxAttendees,
	}, "en")
	if appErr != nil {
		t.Fatalf("CreateEvent: %v", appErr)
	}
	return resp
}

func TestCreateEventAutoJoinsCreator(t *testing.T) {
	svc, sched := newTestService(newFakeStore())
	creator := uuid.New()

	resp := createTestEvent(t, svc, creator, 10)

	if resp.Attendees != 1 {
		t.Fatalf("expected creator auto-join, attendees=%d", resp.Attendees)
	}
	if !resp.IsAttending {
		t.Fatalf("expected is_attending=true for creator")
	}
	if resp.Code == "" || resp.Slug != "han-river-picnic" {
		t.Fatalf("missing code or slug: code=%q slug=%q", resp.Code, resp.Slug)
	}
	if len(sched.calls) != 1 {
		t.Fatalf("expected one reminder scheduled, got %d", len(sched.calls))
	}
}

func TestJoinEventTransitions(t *testing.T) {
	svc, _ := newTestService(newFakeStore())
	creator := uuid.New()
	user := uuid.New()
	ev := createTestEvent(t, svc, creator, 10)
	eventID := uuid.MustParse(ev.ID)
	ctx := context.Background()

	if appErr := svc.JoinEvent(ctx, user, eventID); appErr != nil {
		t.Fatalf("JoinEvent: %v", appErr)
	}
	got, appErr := svc.GetEvent(ctx, eventID, user, "en")
	if appErr != nil {
		t.Fatalf("GetEvent: %v", appErr)
	}
	if got.Attendees != 2 || !got.IsAttending {
		t.Fatalf("after join: attendees=%d is_attending=%v", got.Attendees, got.IsAttending)
	}

	// joining twice is a closed failure, not a counter bump
	appErr = svc.JoinEvent(ctx, user, eventID)
	if appErr == nil || appErr.Code != errors.ErrAlreadyJoined {
		t.Fatalf("expected ErrAlreadyJoined, got %v", appErr)
	}
	got, _ = svc.GetEvent(ctx, eventID, user, "en")
	if got.Attendees != 2 {
		t.Fatalf("double join changed attendees: %d", got.Attendees)
	}

	if appErr := svc.LeaveEvent(ctx, user, eventID); appErr != nil {
		t.Fatalf("LeaveEvent: %v", appErr)
	}
	got, _ = svc.GetEvent(ctx, eventID, user, "en")
	if got.Attendees != 1 || got.IsAttending {
		t.Fatalf("after leave: attendees=%d is_attending=%v", got.Attendees, got.IsAttending)
	}

	appErr = svc.LeaveEvent(ctx, user, eventID)
	if appErr == nil || appErr.Code != errors.ErrNotJoined {
		t.Fatalf("expected ErrNotJoined, got %v", appErr)
	}
}

func TestJoinFullEvent(t *testing.T) {
	svc, _ := newTestService(newFakeStore())
	creator := uuid.New()
	ev := createTestEvent(t, svc, creator, 1)
	eventID := uuid.MustParse(ev.ID)

	appErr := svc.JoinEvent(context.Background(), uuid.New(), eventID)
	if appErr == nil || appErr.Code != errors.ErrEventFull {
		t.Fatalf("expected ErrEventFull, got %v", appErr)
	}
}

func TestJoinUnknownEvent(t *testing.T) {
	svc, _ := newTestService(newFakeStore())

	appErr := svc.JoinEvent(context.Background(), uuid.New(), uuid.New())
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", appErr)
	}
}

func TestAnonymousJoinRejected(t *testing.T) {
	svc, _ := newTestService(newFakeStore())
	ev := createTestEvent(t, svc, uuid.New(), 10)

	appErr := svc.JoinEvent(context.Background(), uuid.Nil, uuid.MustParse(ev.ID))
	if appErr == nil || appErr.Code != errors.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", appErr)
	}
}

func TestConcurrentJoinsNeverOverbook(t *testing.T) {
	svc, _ := newTestService(newFakeStore())
	creator := uuid.New()
	const capacity = 5
	const userCount = 20

	ev := createTestEvent(t, svc, creator, capacity)
	eventID := uuid.MustParse(ev.ID)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(userCount)

	var successCount int64
	var failFullCount int64

	for i := 0; i < userCount; i++ {
		go func() {
			defer wg.Done()
			appErr := svc.JoinEvent(ctx, uuid.New(), eventID)
			if appErr == nil {
				atomic.AddInt64(&successCount, 1)
				return
			}
			if appErr.Code == errors.ErrEventFull {
				atomic.AddInt64(&failFullCount, 1)
				return
			}
			t.Errorf("JoinEvent unexpected error: %v", appErr)
		}()
	}

	wg.Wait()

	got, appErr := svc.GetEvent(ctx, eventID, creator, "en")
	if appErr != nil {
		t.Fatalf("GetEvent: %v", appErr)
	}
	if got.Attendees > capacity {
		t.Fatalf("overbooking detected: attendees=%d capacity=%d", got.Attendees, capacity)
	}
	// creator holds one seat, so capacity-1 joins can succeed
	if successCount != capacity-1 {
		t.Fatalf("expected exactly %d successful joins, got %d (full=%d)", capacity-1, successCount, failFullCount)
	}
}

func TestToggleInterestInvolution(t *testing.T) {
	svc, _ := newTestService(newFakeStore())
	user := uuid.New()
	ev := createTestEvent(t, svc, uuid.New(), 10)
	eventID := uuid.MustParse(ev.ID)
	ctx := context.Background()

	resp, appErr := svc.ToggleInterest(ctx, user, eventID)
	if appErr != nil {
		t.Fatalf("ToggleInterest: %v", appErr)
	}
	if !resp.IsInterested {
		t.Fatalf("first toggle should mark interest")
	}

	got, _ := svc.GetEvent(ctx, eventID, user, "en")
	if !got.IsInterested || got.InterestedCount != 1 {
		t.Fatalf("after toggle: is_interested=%v count=%d", got.IsInterested, got.InterestedCount)
	}

	resp, appErr = svc.ToggleInterest(ctx, user, eventID)
	if appErr != nil {
		t.Fatalf("ToggleInterest: %v", appErr)
	}
	if resp.IsInterested {
		t.Fatalf("second toggle should clear interest")
	}

	got, _ = svc.GetEvent(ctx, eventID, user, "en")
	if got.IsInterested || got.InterestedCount != 0 {
		t.Fatalf("after second toggle: is_interested=%v count=%d", got.IsInterested, got.InterestedCount)
	}
}

func TestLocaleResolution(t *testing.T) {
	svc, _ := newTestService(newFakeStore())
	ev := createTestEvent(t, svc, uuid.New(), 10)
	eventID := uuid.MustParse(ev.ID)
	ctx := context.Background()

	en, _ := svc.GetEvent(ctx, eventID, uuid.Nil, "en")
	if en.Title != "Han River Picnic" {
		t.Fatalf("en title: %q", en.Title)
	}

	ko, _ := svc.GetEvent(ctx, eventID, uuid.Nil, "ko")
	if ko.Title != "한강 피크닉" {
		t.Fatalf("ko title: %q", ko.Title)
	}

	// description only has en, so ko falls back instead of vanishing
	if ko.Description != "Bring snacks" {
		t.Fatalf("ko description fallback: %q", ko.Description)
	}
}

func TestStateSurvivesServiceRestart(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store)
	user := uuid.New()
	ev := createTestEvent(t, svc, uuid.New(), 10)
	eventID := uuid.MustParse(ev.ID)
	ctx := context.Background()

	if appErr := svc.JoinEvent(ctx, user, eventID); appErr != nil {
		t.Fatalf("JoinEvent: %v", appErr)
	}
	if _, appErr := svc.ToggleInterest(ctx, user, eventID); appErr != nil {
		t.Fatalf("ToggleInterest: %v", appErr)
	}

	// a new service over the same store sees the same state
	reloaded, _ := newTestService(store)
	got, appErr := reloaded.GetEvent(ctx, eventID, user, "en")
	if appErr != nil {
		t.Fatalf("GetEvent after restart: %v", appErr)
	}
	if !got.IsAttending || !got.IsInterested || got.Attendees != 2 {
		t.Fatalf("state lost across restart: attending=%v interested=%v attendees=%d",
			got.IsAttending, got.IsInterested, got.Attendees)
	}
}

func TestRateEventUpsert(t *testing.T) {
	svc, _ := newTestService(newFakeStore())
	user := uuid.New()
	ev := createTestEvent(t, svc, uuid.New(), 10)
	eventID := uuid.MustParse(ev.ID)
	ctx := context.Background()

	if appErr := svc.RateEvent(ctx, user, eventID, &dto.RateEventRequest{Rating: 3}); appErr != nil {
		t.Fatalf("RateEvent: %v", appErr)
	}
	if appErr := svc.RateEvent(ctx, user, eventID, &dto.RateEventRequest{Rating: 5, Comment: "great"}); appErr != nil {
		t.Fatalf("RateEvent update: %v", appErr)
	}

	got, _ := svc.GetEvent(ctx, eventID, user, "en")
	if len(got.Ratings) != 1 {
		t.Fatalf("expected one rating after upsert, got %d", len(got.Ratings))
	}
	if got.AverageRating != 5 {
		t.Fatalf("expected average 5, got %v", got.AverageRating)
	}

	appErr := svc.RateEvent(ctx, user, eventID, &dto.RateEventRequest{Rating: 6})
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for out-of-range rating, got %v", appErr)
	}
}

func TestUpdateEventCreatorOnly(t *testing.T) {
	svc, _ := newTestService(newFakeStore())
	creator := uuid.New()
	stranger := uuid.New()
	ev := createTestEvent(t, svc, creator, 10)
	eventID := uuid.MustParse(ev.ID)
	ctx := context.Background()

	newAddress := "Yeouido Hangang Park"
	_, appErr := svc.UpdateEvent(ctx, eventID, stranger, &dto.UpdateEventRequest{Address: &newAddress}, "en")
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-creator, got %v", appErr)
	}

	got, appErr := svc.UpdateEvent(ctx, eventID, creator, &dto.UpdateEventRequest{Address: &newAddress}, "en")
	if appErr != nil {
		t.Fatalf("UpdateEvent: %v", appErr)
	}
	if got.Address != newAddress {
		t.Fatalf("address not updated: %q", got.Address)
	}

	tooSmall := 0
	_, appErr = svc.UpdateEvent(ctx, eventID, creator, &dto.UpdateEventRequest{MaxAttendees: &tooSmall}, "en")
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput shrinking below attendees, got %v", appErr)
	}
}

func TestListEventsFlagsAndFilters(t *testing.T) {
	svc, _ := newTestService(newFakeStore())
	creator := uuid.New()
	user := uuid.New()
	ev := createTestEvent(t, svc, creator, 10)
	eventID := uuid.MustParse(ev.ID)
	ctx := context.Background()

	if appErr := svc.JoinEvent(ctx, user, eventID); appErr != nil {
		t.Fatalf("JoinEvent: %v", appErr)
	}

	page, appErr := svc.ListEvents(ctx, user, "en", params.QueryParams{PageNumber: 1, PageSize: 20})
	if appErr != nil {
		t.Fatalf("ListEvents: %v", appErr)
	}
	if len(page.Items) != 1 || !page.Items[0].IsAttending {
		t.Fatalf("expected joined flag in list, items=%d", len(page.Items))
	}

	filtered, appErr := svc.ListEvents(ctx, user, "en", params.QueryParams{PageNumber: 1, PageSize: 20, Category: "sports"})
	if appErr != nil {
		t.Fatalf("ListEvents filtered: %v", appErr)
	}
	if len(filtered.Items) != 0 {
		t.Fatalf("category filter leaked %d items", len(filtered.Items))
	}

	searched, appErr := svc.ListEvents(ctx, user, "en", params.QueryParams{PageNumber: 1, PageSize: 20, Search: "picnic"})
	if appErr != nil {
		t.Fatalf("ListEvents search: %v", appErr)
	}
	if len(searched.Items) != 1 {
		t.Fatalf("search missed the event, items=%d", len(searched.Items))
	}
}

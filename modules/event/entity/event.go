package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"campus-events-api/core/constants"
	"campus-events-api/core/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// LocalizedText maps a locale code to a string, stored as JSONB. A single
// column replaces the per-field "title"/"titleEn" duplication; resolution to
// one language happens at the presentation boundary.
type LocalizedText map[string]string

func (t LocalizedText) Value() (driver.Value, error) {
	if t == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(t)
}

func (t *LocalizedText) Scan(value any) error {
	if value == nil {
		*t = LocalizedText{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, t)
}

// Resolve returns the text for the locale, falling back to the default locale
// and then to any available value.
func (t LocalizedText) Resolve(locale string) string {
	if v, ok := t[locale]; ok && v != "" {
		return v
	}
	if v, ok := t[constants.DefaultLocale]; ok && v != "" {
		return v
	}
	for _, v := range t {
		if v != "" {
			return v
		}
	}
	return ""
}

// Category is one of the six fixed event categories.
type Category string

const (
	CategoryAcademic Category = constants.EventCategoryAcademic
	CategoryCultural Category = constants.EventCategoryCultural
	CategoryClub     Category = constants.EventCategoryClub
	CategoryLanguage Category = constants.EventCategoryLanguage
	CategorySports   Category = constants.EventCategorySports
	CategorySocial   Category = constants.EventCategorySocial
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryAcademic, CategoryCultural, CategoryClub, CategoryLanguage, CategorySports, CategorySocial:
		return true
	}
	return false
}

// Event is a schedulable activity with capacity and social metadata.
type Event struct {
	Code         string         `db:"code" json:"code"`
	Slug         string         `db:"slug" json:"slug"`
	Title        LocalizedText  `db:"title" json:"title"`
	Description  LocalizedText  `db:"description" json:"description"`
	Location     LocalizedText  `db:"location" json:"location"`
	Organizer    LocalizedText  `db:"organizer" json:"organizer"`
	Category     Category       `db:"category" json:"category"`
	StartsAt     time.Time      `db:"starts_at" json:"starts_at"`
	Address      string         `db:"address" json:"address"`
	Lat          float64        `db:"lat" json:"lat"`
	Lng          float64        `db:"lng" json:"lng"`
	ImageURL     string         `db:"image_url" json:"image_url"`
	Attendees    int            `db:"attendees" json:"attendees"`
	MaxAttendees int            `db:"max_attendees" json:"max_attendees"`
	Price        float64        `db:"price" json:"price"`
	Tags         pq.StringArray `db:"tags" json:"tags"`
	CreatedBy    *uuid.UUID     `db:"created_by" json:"created_by,omitempty"`
	entity.BaseEntity
}

// Rating is one user's rating of an event, at most one per (event, user).
type Rating struct {
	EventID   uuid.UUID `db:"event_id" json:"event_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Rating    int       `db:"rating" json:"rating"`
	Comment   string    `db:"comment" json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Attendance marks that a user attends an event. Row existence is the joined
// state; the event's attendees counter must move with it in one transaction.
type Attendance struct {
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	EventID   uuid.UUID `db:"event_id" json:"event_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type PaginatedEventEntity = entity.Pagination[Event]

package dto

import (
	"time"

	"campus-events-api/modules/event/entity"
)

// ===================== Request DTOs =====================

type CreateEventRequest struct {
	Title        map[string]string `json:"title" validate:"required"`
	Description  map[string]string `json:"description"`
	Location     map[string]string `json:"location"`
	Organizer    map[string]string `json:"organizer"`
	Category     string            `json:"category" validate:"required"`
	StartsAt     time.Time         `json:"starts_at" validate:"required"`
	Address      string            `json:"address"`
	Lat          float64           `json:"lat"`
	Lng          float64           `json:"lng"`
	ImageURL     string            `json:"image_url"`
	MaxAttendees int               `json:"max_attendees" validate:"required,min=1"`
	Price        float64           `json:"price"`
	Tags         []string          `json:"tags"`
}

// UpdateEventRequest carries a partial update; nil fields are left untouched.
type UpdateEventRequest struct {
	Title        map[string]string `json:"title"`
	Description  map[string]string `json:"description"`
	Location     map[string]string `json:"location"`
	Organizer    map[string]string `json:"organizer"`
	Category     *string           `json:"category"`
	StartsAt     *time.Time        `json:"starts_at"`
	Address      *string           `json:"address"`
	Lat          *float64          `json:"lat"`
	Lng          *float64          `json:"lng"`
	ImageURL     *string           `json:"image_url"`
	MaxAttendees *int              `json:"max_attendees"`
	Price        *float64          `json:"price"`
	Tags         []string          `json:"tags"`
}

type RateEventRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type ImageUploadRequest struct {
	ContentType string `json:"content_type" validate:"required"`
}

// ===================== Response DTOs =====================

// EventResponse is an event with the requesting user's attendance and interest
// flags attached, localized text resolved for the requested locale.
type EventResponse struct {
	ID              string           `json:"id"`
	Code            string           `json:"code"`
	Slug            string           `json:"slug"`
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	Location        string           `json:"location,omitempty"`
	Organizer       string           `json:"organizer,omitempty"`
	Category        string           `json:"category"`
	StartsAt        time.Time        `json:"starts_at"`
	Address         string           `json:"address,omitempty"`
	Lat             float64          `json:"lat"`
	Lng             float64          `json:"lng"`
	ImageURL        string           `json:"image_url,omitempty"`
	Attendees       int              `json:"attendees"`
	MaxAttendees    int              `json:"max_attendees"`
	Price           float64          `json:"price"`
	Tags            []string         `json:"tags"`
	IsAttending     bool             `json:"is_attending"`
	IsInterested    bool             `json:"is_interested"`
	InterestedCount int              `json:"interested_count"`
	AverageRating   float64          `json:"average_rating,omitempty"`
	Ratings         []RatingResponse `json:"ratings,omitempty"`
	CreatedBy       string           `json:"created_by,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

type RatingResponse struct {
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type AttendeesResponse struct {
	EventID   string   `json:"event_id"`
	Attendees []string `json:"attendees"`
	Count     int      `json:"count"`
}

type InterestResponse struct {
	EventID      string `json:"event_id"`
	IsInterested bool   `json:"is_interested"`
}

type ImageUploadResponse struct {
	UploadURL string `json:"upload_url"`
	ImageURL  string `json:"image_url"`
}

type PaginatedEventResponse struct {
	Items      []EventResponse `json:"items"`
	TotalItems int             `json:"total_items"`
	PageNumber int             `json:"page_number"`
	PageSize   int             `json:"page_size"`
}

// ===================== Mappers =====================

func ToEventResponse(e *entity.Event, locale string) *EventResponse {
	resp := &EventResponse{
		ID:           e.ID.String(),
		Code:         e.Code,
		Slug:         e.Slug,
		Title:        e.Title.Resolve(locale),
		Description:  e.Description.Resolve(locale),
		Location:     e.Location.Resolve(locale),
		Organizer:    e.Organizer.Resolve(locale),
		Category:     string(e.Category),
		StartsAt:     e.StartsAt,
		Address:      e.Address,
		Lat:          e.Lat,
		Lng:          e.Lng,
		ImageURL:     e.ImageURL,
		Attendees:    e.Attendees,
		MaxAttendees: e.MaxAttendees,
		Price:        e.Price,
		Tags:         e.Tags,
		CreatedAt:    e.CreatedAt,
	}
	if e.CreatedBy != nil {
		resp.CreatedBy = e.CreatedBy.String()
	}
	return resp
}

func ToRatingResponse(r *entity.Rating) RatingResponse {
	return RatingResponse{
		UserID:    r.UserID.String(),
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

package validator

import (
	"campus-events-api/core/constants"
	"campus-events-api/core/controller"
	"campus-events-api/modules/event/dto"
	"campus-events-api/modules/event/entity"
)

type ValidationResult struct {
	Errors []controller.ValidationError
}

func (v *ValidationResult) HasError() bool {
	return len(v.Errors) > 0
}

func (v *ValidationResult) add(field, message string) {
	v.Errors = append(v.Errors, controller.ValidationError{Field: field, Message: message})
}

func ValidateCreateEventRequest(req *dto.CreateEventRequest) *ValidationResult {
	result := &ValidationResult{}

	if entity.LocalizedText(req.Title).Resolve(constants.DefaultLocale) == "" {
		result.add("title", "title is required")
	}
	if !entity.Category(req.Category).IsValid() {
		result.add("category", "unknown category")
	}
	if req.StartsAt.IsZero() {
		result.add("starts_at", "starts_at is required")
	}
	if req.MaxAttendees < 1 {
		result.add("max_attendees", "must be at least 1")
	}
	if req.Price < 0 {
		result.add("price", "must not be negative")
	}

	return result
}

func ValidateRateEventRequest(req *dto.RateEventRequest) *ValidationResult {
	result := &ValidationResult{}

	if req.Rating < 1 || req.Rating > 5 {
		result.add("rating", "must be between 1 and 5")
	}

	return result
}

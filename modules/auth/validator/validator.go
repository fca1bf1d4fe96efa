package validator

import (
	"strings"

	"campus-events-api/core/controller"
	"campus-events-api/modules/auth/dto"
)

// ValidationResult collects field errors for a request.
type ValidationResult struct {
	Errors []controller.ValidationError `json:"errors"`
}

func (r *ValidationResult) HasError() bool {
	return len(r.Errors) > 0
}

func (r *ValidationResult) add(field, message string) {
	r.Errors = append(r.Errors, controller.NewValidationError(field, message))
}

func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}

func ValidateRegisterRequest(req *dto.RegisterRequest) *ValidationResult {
	result := &ValidationResult{}
	if strings.TrimSpace(req.Name) == "" {
		result.add("name", "name is required")
	}
	if !isValidEmail(strings.TrimSpace(req.Email)) {
		result.add("email", "a valid email is required")
	}
	if len(req.Password) < 8 {
		result.add("password", "password must be at least 8 characters")
	}
	if req.Age < 0 || req.Age > 120 {
		result.add("age", "age is out of range")
	}
	return result
}

func ValidateLoginRequest(req *dto.LoginRequest) *ValidationResult {
	result := &ValidationResult{}
	if strings.TrimSpace(req.Email) == "" {
		result.add("email", "email is required")
	}
	if req.Password == "" {
		result.add("password", "password is required")
	}
	return result
}

func ValidateUpdateProfileRequest(req *dto.UpdateProfileRequest) *ValidationResult {
	result := &ValidationResult{}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		result.add("name", "name cannot be empty")
	}
	if req.Age != nil && (*req.Age < 0 || *req.Age > 120) {
		result.add("age", "age is out of range")
	}
	return result
}

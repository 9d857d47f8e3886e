package user

import "strings"

// UpdateProfileDTO carries the editable profile fields. Nil means "leave as is".
type UpdateProfileDTO struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (dto *UpdateProfileDTO) Validate() error {
	if dto.Name == nil && dto.Email == nil {
		return &ValidationError{Field: "body", Message: "no fields to update"}
	}
	if dto.Name != nil && strings.TrimSpace(*dto.Name) == "" {
		return &ValidationError{Field: "name", Message: "name cannot be empty"}
	}
	if dto.Email != nil {
		email := strings.TrimSpace(*dto.Email)
		if email == "" || !strings.Contains(email, "@") {
			return &ValidationError{Field: "email", Message: "invalid email"}
		}
	}
	return nil
}

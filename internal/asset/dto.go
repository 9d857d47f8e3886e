package asset

import "strings"

type CreateAssetDTO struct {
	Tag         string `json:"tag"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Criticality string `json:"criticality"`
}

type UpdateStatusDTO struct {
	Status string `json:"status"`
}

type AssetsResponse struct {
	Assets []*Asset `json:"assets"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (dto *CreateAssetDTO) Validate() error {
	if strings.TrimSpace(dto.Tag) == "" {
		return &ValidationError{Field: "tag", Message: "tag is required"}
	}
	if strings.TrimSpace(dto.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if dto.Criticality == "" {
		dto.Criticality = CriticalityMedium
	}
	if !ValidCriticality(dto.Criticality) {
		return &ValidationError{Field: "criticality", Message: "criticality must be low, medium or high"}
	}
	return nil
}

func (dto *UpdateStatusDTO) Validate() error {
	if !ValidStatus(dto.Status) {
		return &ValidationError{Field: "status", Message: "status must be operational, down or under_maintenance"}
	}
	return nil
}

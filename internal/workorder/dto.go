package workorder

import (
	"errors"
	"strings"
	"time"
)

type CreateWorkOrderDTO struct {
	AssetID     int64      `json:"asset_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	AssignedTo  *int64     `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

func (dto *CreateWorkOrderDTO) Validate() error {
	if dto.AssetID <= 0 {
		return errors.New("asset_id is required")
	}
	if strings.TrimSpace(dto.Title) == "" {
		return errors.New("title is required")
	}
	if len(dto.Title) > 200 {
		return errors.New("title must be less than 200 characters")
	}
	if dto.Priority == "" {
		dto.Priority = PriorityMedium
	}
	if !ValidPriority(dto.Priority) {
		return errors.New("priority must be low, medium, high or critical")
	}
	return nil
}

type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (dto UpdateStatusDTO) Validate() error {
	if !ValidStatus(dto.Status) {
		return errors.New("status must be open, in_progress, completed or cancelled")
	}
	return nil
}

type AssignDTO struct {
	AssignedTo int64 `json:"assigned_to"`
}

func (dto AssignDTO) Validate() error {
	if dto.AssignedTo <= 0 {
		return errors.New("assigned_to is required")
	}
	return nil
}

package user

import (
	"context"
	"fmt"
	"strings"
)

type Repository interface {
	GetByID(ctx context.Context, userID int64) (*Profile, error)
	UpdateProfile(ctx context.Context, userID int64, name, email *string) (*Profile, error)
	SetFirstLogin(ctx context.Context, userID int64, firstLogin bool) (*Profile, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, userID int64) (*Profile, error) {
	p, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return p, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, dto UpdateProfileDTO) (*Profile, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if dto.Name != nil {
		trimmed := strings.TrimSpace(*dto.Name)
		dto.Name = &trimmed
	}
	if dto.Email != nil {
		trimmed := strings.TrimSpace(*dto.Email)
		dto.Email = &trimmed
	}
	p, err := s.repo.UpdateProfile(ctx, userID, dto.Name, dto.Email)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

// CompleteOnboarding clears the first-login flag once the user has walked
// through the initial setup screens.
func (s *Service) CompleteOnboarding(ctx context.Context, userID int64) (*Profile, error) {
	p, err := s.repo.SetFirstLogin(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("complete onboarding: %w", err)
	}
	return p, nil
}

package workorder

import (
	"context"
	"log/slog"
	"time"

	"github.com/hmaulana/maintenance-management/internal/core/events"
)

type Repository interface {
	Create(w *WorkOrder) error
	GetByID(id int64) (*WorkOrder, error)
	GetAll(limit, offset int) ([]*WorkOrder, error)
	GetByAssignee(userID int64, limit, offset int) ([]*WorkOrder, error)
	GetByAsset(assetID int64, limit, offset int) ([]*WorkOrder, error)
	Update(w *WorkOrder) error
	UpdateAssignee(id int64, userID int64) error
}

type Service struct {
	repo   Repository
	bus    *events.Bus
	logger *slog.Logger
}

func NewService(repo Repository, bus *events.Bus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

func (s *Service) Create(ctx context.Context, createdBy int64, dto CreateWorkOrderDTO) (*WorkOrder, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("work order validation failed", "error", err, "created_by", createdBy)
		return nil, err
	}

	now := time.Now()
	w := &WorkOrder{
		AssetID:     dto.AssetID,
		Title:       dto.Title,
		Description: dto.Description,
		Priority:    dto.Priority,
		Status:      StatusOpen,
		AssignedTo:  dto.AssignedTo,
		CreatedBy:   createdBy,
		DueDate:     dto.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(w); err != nil {
		s.logger.Error("failed to create work order", "error", err, "created_by", createdBy)
		return nil, err
	}

	s.logger.Info("work order created",
		"work_order_id", w.ID,
		"asset_id", w.AssetID,
		"priority", w.Priority,
		"created_by", createdBy)

	if s.bus != nil {
		s.bus.Publish(ctx, events.NewWorkOrderCreatedEvent(w.ID, w.AssetID, SourceManual))
	}

	return w, nil
}

// CreateFromAlert opens a high-priority work order for an alert. Called by
// the alert event handler, not from HTTP.
func (s *Service) CreateFromAlert(ctx context.Context, alertID, assetID int64, title, description string) (*WorkOrder, error) {
	now := time.Now()
	w := &WorkOrder{
		AssetID:       assetID,
		Title:         title,
		Description:   description,
		Priority:      PriorityCritical,
		Status:        StatusOpen,
		CreatedBy:     0,
		SourceAlertID: &alertID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(w); err != nil {
		s.logger.Error("failed to create work order from alert", "error", err, "alert_id", alertID)
		return nil, err
	}

	s.logger.Info("work order created from alert",
		"work_order_id", w.ID,
		"alert_id", alertID,
		"asset_id", assetID)

	if s.bus != nil {
		s.bus.Publish(ctx, events.NewWorkOrderCreatedEvent(w.ID, w.AssetID, SourceAlert))
	}

	return w, nil
}

func (s *Service) GetByID(id int64) (*WorkOrder, error) {
	w, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, ErrWorkOrderNotFound
	}
	return w, nil
}

func (s *Service) GetAll(limit, offset int) ([]*WorkOrder, error) {
	orders, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to get work orders", "error", err)
		return nil, err
	}
	return orders, nil
}

// GetMyWorkOrders lists the queue for a single assignee, newest first.
func (s *Service) GetMyWorkOrders(userID int64, limit, offset int) ([]*WorkOrder, error) {
	orders, err := s.repo.GetByAssignee(userID, limit, offset)
	if err != nil {
		s.logger.Error("failed to get assigned work orders", "error", err, "user_id", userID)
		return nil, err
	}
	return orders, nil
}

func (s *Service) GetByAsset(assetID int64, limit, offset int) ([]*WorkOrder, error) {
	orders, err := s.repo.GetByAsset(assetID, limit, offset)
	if err != nil {
		s.logger.Error("failed to get work orders for asset", "error", err, "asset_id", assetID)
		return nil, err
	}
	return orders, nil
}

// UpdateStatus applies a status transition. When ownOnly is set the caller
// may only touch work orders assigned to them; the router sets it for
// technicians.
func (s *Service) UpdateStatus(id int64, userID int64, ownOnly bool, dto UpdateStatusDTO) (*WorkOrder, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	w, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if ownOnly && !w.IsAssignedTo(userID) {
		s.logger.Warn("status update denied: not the assignee",
			"work_order_id", id,
			"user_id", userID)
		return nil, ErrNotAssignee
	}

	if !w.CanTransition(dto.Status) {
		s.logger.Warn("invalid work order transition",
			"work_order_id", id,
			"from", w.Status,
			"to", dto.Status)
		return nil, ErrInvalidTransition
	}

	w.Transition(dto.Status)
	if err := s.repo.Update(w); err != nil {
		s.logger.Error("failed to update work order status", "error", err, "work_order_id", id)
		return nil, err
	}

	s.logger.Info("work order status updated",
		"work_order_id", id,
		"status", dto.Status,
		"user_id", userID)

	return w, nil
}

func (s *Service) Assign(id int64, dto AssignDTO) (*WorkOrder, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	w, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateAssignee(id, dto.AssignedTo); err != nil {
		s.logger.Error("failed to assign work order", "error", err, "work_order_id", id)
		return nil, err
	}

	w.AssignedTo = &dto.AssignedTo
	s.logger.Info("work order assigned", "work_order_id", id, "assigned_to", dto.AssignedTo)
	return w, nil
}

package alert

import (
	"context"
	"log/slog"
	"time"

	"github.com/hmaulana/maintenance-management/internal/core/events"
)

type Repository interface {
	Create(a *Alert) error
	GetByID(id int64) (*Alert, error)
	GetAll(status string, limit, offset int) ([]*Alert, error)
	Update(a *Alert) error
}

// AssetResolver maps the feed's asset tags onto internal asset IDs.
type AssetResolver interface {
	ResolveTag(tag string) (int64, error)
}

type Service struct {
	repo   Repository
	assets AssetResolver
	bus    *events.Bus
	logger *slog.Logger
}

func NewService(repo Repository, assets AssetResolver, bus *events.Bus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		assets: assets,
		bus:    bus,
		logger: logger,
	}
}

// Ingest records an incoming sensor alert. Critical alerts are published
// synchronously so the work-order automation has run before the feed gets
// its acknowledgement.
func (s *Service) Ingest(ctx context.Context, req SensorAlertRequest) (*Alert, error) {
	if err := req.Validate(); err != nil {
		s.logger.Error("sensor alert validation failed", "error", err, "asset_tag", req.AssetTag)
		return nil, err
	}

	assetID, err := s.assets.ResolveTag(req.AssetTag)
	if err != nil {
		s.logger.Warn("sensor alert for unknown asset", "asset_tag", req.AssetTag, "source", req.Source)
		return nil, ErrUnknownAsset
	}

	now := time.Now()
	a := &Alert{
		AssetID:   assetID,
		Source:    req.Source,
		Severity:  req.Severity,
		Message:   req.Message,
		Status:    StatusOpen,
		Reading:   req.Reading,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(a); err != nil {
		s.logger.Error("failed to store alert", "error", err, "asset_id", assetID)
		return nil, err
	}

	s.logger.Info("alert ingested",
		"alert_id", a.ID,
		"asset_id", assetID,
		"severity", a.Severity,
		"source", a.Source)

	event := events.NewAlertRaisedEvent(a.ID, a.AssetID, a.Severity, a.Message)
	if a.Severity == SeverityCritical {
		if err := s.bus.PublishSync(ctx, event); err != nil {
			s.logger.Error("critical alert automation failed", "error", err, "alert_id", a.ID)
		}
	} else {
		s.bus.Publish(ctx, event)
	}

	return a, nil
}

func (s *Service) GetByID(id int64) (*Alert, error) {
	a, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAlertNotFound
	}
	return a, nil
}

// GetAll lists alerts, optionally filtered to one status.
func (s *Service) GetAll(status string, limit, offset int) ([]*Alert, error) {
	alerts, err := s.repo.GetAll(status, limit, offset)
	if err != nil {
		s.logger.Error("failed to get alerts", "error", err)
		return nil, err
	}
	return alerts, nil
}

func (s *Service) Acknowledge(ctx context.Context, id, userID int64) (*Alert, error) {
	a, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a.Status == StatusResolved {
		return nil, ErrAlreadyResolved
	}

	a.Acknowledge(userID)
	if err := s.repo.Update(a); err != nil {
		s.logger.Error("failed to acknowledge alert", "error", err, "alert_id", id)
		return nil, err
	}

	s.logger.Info("alert acknowledged", "alert_id", id, "user_id", userID)
	s.bus.Publish(ctx, events.NewAlertAcknowledgedEvent(id, userID))
	return a, nil
}

func (s *Service) Resolve(ctx context.Context, id, userID int64) (*Alert, error) {
	a, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a.Status == StatusResolved {
		return nil, ErrAlreadyResolved
	}

	a.Resolve()
	if err := s.repo.Update(a); err != nil {
		s.logger.Error("failed to resolve alert", "error", err, "alert_id", id)
		return nil, err
	}

	s.logger.Info("alert resolved", "alert_id", id, "user_id", userID)
	return a, nil
}

package asset

import (
	"log/slog"

	assetDatamodel "github.com/hmaulana/maintenance-management/internal/core/datamodel/asset"
)

type RepositoryAPI interface {
	GetAll() ([]*assetDatamodel.Asset, error)
	GetByID(id int64) (*assetDatamodel.Asset, error)
	GetByTag(tag string) (*assetDatamodel.Asset, error)
	Create(asset *assetDatamodel.Asset) error
	Update(asset *assetDatamodel.Asset) error
	Retire(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAllAssets() ([]*Asset, error) {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get assets from repository", "error", err)
		return nil, err
	}

	var assets []*Asset
	for _, record := range records {
		domainAsset := FromDataModel(record)
		if domainAsset.IsActive {
			assets = append(assets, domainAsset)
		}
	}

	s.logger.Info("retrieved assets", "count", len(assets))
	return assets, nil
}

func (s *Service) GetByID(id int64) (*Asset, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}
	return FromDataModel(record), nil
}

func (s *Service) Create(dto CreateAssetDTO) (*Asset, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByTag(dto.Tag)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateTag
	}

	domainAsset := NewAsset(dto.Tag, dto.Name, dto.Location, dto.Criticality)
	record := ToDataModel(domainAsset)
	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create asset", "tag", dto.Tag, "error", err)
		return nil, err
	}

	s.logger.Info("asset created", "asset_id", record.ID, "tag", record.Tag)
	return FromDataModel(record), nil
}

func (s *Service) UpdateStatus(id int64, dto UpdateStatusDTO) (*Asset, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}

	record.Status = dto.Status
	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update asset status", "asset_id", id, "error", err)
		return nil, err
	}

	s.logger.Info("asset status updated", "asset_id", id, "status", dto.Status)
	return FromDataModel(record), nil
}

// Retire flags the asset inactive. Historical work orders keep referring to it.
func (s *Service) Retire(id int64) error {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrNotFound
	}
	if err := s.repo.Retire(id); err != nil {
		s.logger.Error("failed to retire asset", "asset_id", id, "error", err)
		return err
	}
	s.logger.Info("asset retired", "asset_id", id)
	return nil
}

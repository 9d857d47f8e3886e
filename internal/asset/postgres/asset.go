package postgres

import (
	"github.com/hmaulana/maintenance-management/internal/asset"
	assetDatamodel "github.com/hmaulana/maintenance-management/internal/core/datamodel/asset"
	"gorm.io/gorm"
)

type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) asset.RepositoryAPI {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) GetAll() ([]*assetDatamodel.Asset, error) {
	var assets []*assetDatamodel.Asset
	err := r.db.Order("tag ASC").Find(&assets).Error
	return assets, err
}

func (r *AssetRepository) GetByID(id int64) (*assetDatamodel.Asset, error) {
	var record assetDatamodel.Asset
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *AssetRepository) GetByTag(tag string) (*assetDatamodel.Asset, error) {
	var record assetDatamodel.Asset
	err := r.db.Where("tag = ?", tag).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *AssetRepository) Create(record *assetDatamodel.Asset) error {
	return r.db.Create(record).Error
}

func (r *AssetRepository) Update(record *assetDatamodel.Asset) error {
	return r.db.Save(record).Error
}

func (r *AssetRepository) Retire(id int64) error {
	return r.db.Model(&assetDatamodel.Asset{}).Where("id = ?", id).Update("is_active", false).Error
}

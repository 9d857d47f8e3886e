package postgres_test

import (
	"testing"
	"time"

	"github.com/hmaulana/maintenance-management/internal/asset"
	assetPostgres "github.com/hmaulana/maintenance-management/internal/asset/postgres"
	assetDatamodel "github.com/hmaulana/maintenance-management/internal/core/datamodel/asset"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAssetPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Asset Postgres Suite")
}

// SQLiteAsset mirrors the asset table without postgres-only defaults
type SQLiteAsset struct {
	ID          int64     `gorm:"primaryKey"`
	Tag         string    `gorm:"column:tag;uniqueIndex;not null"`
	Name        string    `gorm:"column:name;not null"`
	Location    string    `gorm:"column:location"`
	Status      string    `gorm:"column:status"`
	Criticality string    `gorm:"column:criticality"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (SQLiteAsset) TableName() string {
	return "assets"
}

var _ = Describe("Asset Repository", func() {
	var (
		db   *gorm.DB
		repo asset.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteAsset{})
		Expect(err).NotTo(HaveOccurred())

		repo = assetPostgres.NewAssetRepository(db)
	})

	Describe("Create and GetByTag", func() {
		It("round-trips an asset", func() {
			record := &assetDatamodel.Asset{
				Tag:         "PUMP-001",
				Name:        "Feed pump",
				Location:    "Hall A",
				Status:      asset.StatusOperational,
				Criticality: asset.CriticalityHigh,
				IsActive:    true,
			}
			Expect(repo.Create(record)).To(Succeed())
			Expect(record.ID).NotTo(BeZero())

			found, err := repo.GetByTag("PUMP-001")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).NotTo(BeNil())
			Expect(found.Name).To(Equal("Feed pump"))
		})

		It("returns nil for an unknown tag", func() {
			found, err := repo.GetByTag("NOPE-000")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())
		})
	})

	Describe("GetAll", func() {
		It("orders assets by tag", func() {
			Expect(repo.Create(&assetDatamodel.Asset{Tag: "FAN-002", Name: "Exhaust fan", IsActive: true})).To(Succeed())
			Expect(repo.Create(&assetDatamodel.Asset{Tag: "CONV-001", Name: "Conveyor", IsActive: true})).To(Succeed())

			assets, err := repo.GetAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(assets).To(HaveLen(2))
			Expect(assets[0].Tag).To(Equal("CONV-001"))
			Expect(assets[1].Tag).To(Equal("FAN-002"))
		})
	})

	Describe("Update", func() {
		It("persists a status change", func() {
			record := &assetDatamodel.Asset{Tag: "PUMP-001", Name: "Feed pump", Status: asset.StatusOperational, IsActive: true}
			Expect(repo.Create(record)).To(Succeed())

			record.Status = asset.StatusDown
			Expect(repo.Update(record)).To(Succeed())

			found, err := repo.GetByID(record.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Status).To(Equal(asset.StatusDown))
		})
	})

	Describe("Retire", func() {
		It("clears the active flag without deleting the row", func() {
			record := &assetDatamodel.Asset{Tag: "PUMP-001", Name: "Feed pump", IsActive: true}
			Expect(repo.Create(record)).To(Succeed())

			Expect(repo.Retire(record.ID)).To(Succeed())

			found, err := repo.GetByID(record.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).NotTo(BeNil())
			Expect(found.IsActive).To(BeFalse())
		})
	})
})

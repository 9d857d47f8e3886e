package asset_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/hmaulana/maintenance-management/internal/asset"
	assetDatamodel "github.com/hmaulana/maintenance-management/internal/core/datamodel/asset"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAssetService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Asset Service Suite")
}

// MockRepository implements asset.RepositoryAPI for testing
type MockRepository struct {
	assets     map[int64]*assetDatamodel.Asset
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		assets: make(map[int64]*assetDatamodel.Asset),
		nextID: 1,
	}
}

func (m *MockRepository) GetAll() ([]*assetDatamodel.Asset, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*assetDatamodel.Asset
	for _, a := range m.assets {
		result = append(result, a)
	}
	return result, nil
}

func (m *MockRepository) GetByID(id int64) (*assetDatamodel.Asset, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.assets[id], nil
}

func (m *MockRepository) GetByTag(tag string) (*assetDatamodel.Asset, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, a := range m.assets {
		if a.Tag == tag {
			return a, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) Create(record *assetDatamodel.Asset) error {
	if m.shouldFail {
		return m.failError
	}
	record.ID = m.nextID
	m.nextID++
	m.assets[record.ID] = record
	return nil
}

func (m *MockRepository) Update(record *assetDatamodel.Asset) error {
	if m.shouldFail {
		return m.failError
	}
	m.assets[record.ID] = record
	return nil
}

func (m *MockRepository) Retire(id int64) error {
	if m.shouldFail {
		return m.failError
	}
	if a, ok := m.assets[id]; ok {
		a.IsActive = false
	}
	return nil
}

var _ = Describe("Asset Service", func() {
	var (
		service  *asset.Service
		mockRepo *MockRepository
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = asset.NewService(mockRepo, testLogger)
	})

	Describe("Create", func() {
		It("creates an operational asset with medium criticality by default", func() {
			created, err := service.Create(asset.CreateAssetDTO{Tag: "PUMP-001", Name: "Feed pump", Location: "Hall A"})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Status).To(Equal(asset.StatusOperational))
			Expect(created.Criticality).To(Equal(asset.CriticalityMedium))
			Expect(created.IsActive).To(BeTrue())
		})

		It("rejects a duplicate tag", func() {
			_, err := service.Create(asset.CreateAssetDTO{Tag: "PUMP-001", Name: "Feed pump"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(asset.CreateAssetDTO{Tag: "PUMP-001", Name: "Another pump"})
			Expect(err).To(MatchError(asset.ErrDuplicateTag))
		})

		It("rejects a missing tag", func() {
			_, err := service.Create(asset.CreateAssetDTO{Name: "Nameless"})
			var vErr *asset.ValidationError
			Expect(errors.As(err, &vErr)).To(BeTrue())
			Expect(vErr.Field).To(Equal("tag"))
		})

		It("rejects an unknown criticality", func() {
			_, err := service.Create(asset.CreateAssetDTO{Tag: "X", Name: "X", Criticality: "extreme"})
			var vErr *asset.ValidationError
			Expect(errors.As(err, &vErr)).To(BeTrue())
		})
	})

	Describe("GetAllAssets", func() {
		It("filters out retired assets", func() {
			created, err := service.Create(asset.CreateAssetDTO{Tag: "PUMP-001", Name: "Feed pump"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Create(asset.CreateAssetDTO{Tag: "FAN-002", Name: "Exhaust fan"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Retire(created.ID)).To(Succeed())

			assets, err := service.GetAllAssets()
			Expect(err).NotTo(HaveOccurred())
			Expect(assets).To(HaveLen(1))
			Expect(assets[0].Tag).To(Equal("FAN-002"))
		})

		It("propagates repository failures", func() {
			mockRepo.shouldFail = true
			mockRepo.failError = errors.New("db down")

			_, err := service.GetAllAssets()
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UpdateStatus", func() {
		It("moves an asset between valid statuses", func() {
			created, err := service.Create(asset.CreateAssetDTO{Tag: "PUMP-001", Name: "Feed pump"})
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.UpdateStatus(created.ID, asset.UpdateStatusDTO{Status: asset.StatusDown})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(asset.StatusDown))
		})

		It("rejects an unknown status", func() {
			created, err := service.Create(asset.CreateAssetDTO{Tag: "PUMP-001", Name: "Feed pump"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.UpdateStatus(created.ID, asset.UpdateStatusDTO{Status: "exploded"})
			var vErr *asset.ValidationError
			Expect(errors.As(err, &vErr)).To(BeTrue())
		})

		It("returns not found for a missing asset", func() {
			_, err := service.UpdateStatus(999, asset.UpdateStatusDTO{Status: asset.StatusDown})
			Expect(err).To(MatchError(asset.ErrNotFound))
		})
	})

	Describe("Retire", func() {
		It("returns not found for a missing asset", func() {
			Expect(service.Retire(999)).To(MatchError(asset.ErrNotFound))
		})
	})
})

package alert_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/hmaulana/maintenance-management/internal/alert"
	"github.com/hmaulana/maintenance-management/internal/core/events"
	"github.com/hmaulana/maintenance-management/internal/workorder"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAlertService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Alert Service Suite")
}

type MockRepository struct {
	alerts     map[int64]*alert.Alert
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		alerts: make(map[int64]*alert.Alert),
		nextID: 1,
	}
}

func (m *MockRepository) Create(a *alert.Alert) error {
	if m.shouldFail {
		return m.failError
	}
	a.ID = m.nextID
	m.nextID++
	clone := *a
	m.alerts[a.ID] = &clone
	return nil
}

func (m *MockRepository) GetByID(id int64) (*alert.Alert, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	a, ok := m.alerts[id]
	if !ok {
		return nil, nil
	}
	clone := *a
	return &clone, nil
}

func (m *MockRepository) GetAll(status string, limit, offset int) ([]*alert.Alert, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*alert.Alert
	for _, a := range m.alerts {
		if status == "" || a.Status == status {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *MockRepository) Update(a *alert.Alert) error {
	if m.shouldFail {
		return m.failError
	}
	clone := *a
	m.alerts[a.ID] = &clone
	return nil
}

type MockAssetResolver struct {
	tags map[string]int64
}

func (m *MockAssetResolver) ResolveTag(tag string) (int64, error) {
	if id, ok := m.tags[tag]; ok {
		return id, nil
	}
	return 0, errors.New("unknown tag")
}

type MockWorkOrderCreator struct {
	created []int64
	fail    bool
}

func (m *MockWorkOrderCreator) CreateFromAlert(_ context.Context, alertID, assetID int64, title, description string) (*workorder.WorkOrder, error) {
	if m.fail {
		return nil, errors.New("work order creation failed")
	}
	m.created = append(m.created, alertID)
	return &workorder.WorkOrder{ID: 100, AssetID: assetID, Title: title, Description: description}, nil
}

var _ = Describe("Alert Service", func() {
	var (
		service    *alert.Service
		mockRepo   *MockRepository
		resolver   *MockAssetResolver
		bus        *events.Bus
		workOrders *MockWorkOrderCreator
		ctx        context.Context
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		resolver = &MockAssetResolver{tags: map[string]int64{"PUMP-001": 3}}
		testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewBus(testLogger)
		workOrders = &MockWorkOrderCreator{}
		alert.NewEventHandler(workOrders, testLogger).RegisterEventHandlers(bus)
		service = alert.NewService(mockRepo, resolver, bus, testLogger)
		ctx = context.Background()
	})

	Describe("Ingest", func() {
		It("stores an open alert resolved to the asset", func() {
			a, err := service.Ingest(ctx, alert.SensorAlertRequest{
				AssetTag: "PUMP-001",
				Source:   "vibration-sensor-7",
				Severity: alert.SeverityWarning,
				Message:  "vibration above threshold",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(a.AssetID).To(Equal(int64(3)))
			Expect(a.Status).To(Equal(alert.StatusOpen))
		})

		It("rejects an unknown asset tag", func() {
			_, err := service.Ingest(ctx, alert.SensorAlertRequest{
				AssetTag: "GHOST-999",
				Source:   "s",
				Severity: alert.SeverityInfo,
				Message:  "m",
			})
			Expect(err).To(MatchError(alert.ErrUnknownAsset))
		})

		It("rejects an unknown severity", func() {
			_, err := service.Ingest(ctx, alert.SensorAlertRequest{
				AssetTag: "PUMP-001",
				Source:   "s",
				Severity: "catastrophic",
				Message:  "m",
			})
			Expect(err).To(HaveOccurred())
		})

		It("opens a work order synchronously for a critical alert", func() {
			a, err := service.Ingest(ctx, alert.SensorAlertRequest{
				AssetTag: "PUMP-001",
				Source:   "temperature-sensor-2",
				Severity: alert.SeverityCritical,
				Message:  "bearing temperature critical",
			})
			Expect(err).NotTo(HaveOccurred())
			// PublishSync: automation has run by the time Ingest returns.
			Expect(workOrders.created).To(Equal([]int64{a.ID}))
		})

		It("does not open work orders for warnings", func() {
			_, err := service.Ingest(ctx, alert.SensorAlertRequest{
				AssetTag: "PUMP-001",
				Source:   "s",
				Severity: alert.SeverityWarning,
				Message:  "m",
			})
			Expect(err).NotTo(HaveOccurred())
			Consistently(func() []int64 { return workOrders.created }).Should(BeEmpty())
		})

		It("still stores the alert when automation fails", func() {
			workOrders.fail = true
			a, err := service.Ingest(ctx, alert.SensorAlertRequest{
				AssetTag: "PUMP-001",
				Source:   "s",
				Severity: alert.SeverityCritical,
				Message:  "m",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(a.ID).NotTo(BeZero())
		})
	})

	Describe("Acknowledge", func() {
		var alertID int64

		BeforeEach(func() {
			a, err := service.Ingest(ctx, alert.SensorAlertRequest{
				AssetTag: "PUMP-001",
				Source:   "s",
				Severity: alert.SeverityWarning,
				Message:  "m",
			})
			Expect(err).NotTo(HaveOccurred())
			alertID = a.ID
		})

		It("records the acknowledging user", func() {
			a, err := service.Acknowledge(ctx, alertID, 9)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Status).To(Equal(alert.StatusAcknowledged))
			Expect(a.AcknowledgedBy).NotTo(BeNil())
			Expect(*a.AcknowledgedBy).To(Equal(int64(9)))
		})

		It("refuses to acknowledge a resolved alert", func() {
			_, err := service.Resolve(ctx, alertID, 9)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Acknowledge(ctx, alertID, 9)
			Expect(err).To(MatchError(alert.ErrAlreadyResolved))
		})

		It("returns not found for a missing alert", func() {
			_, err := service.Acknowledge(ctx, 999, 9)
			Expect(err).To(MatchError(alert.ErrAlertNotFound))
		})
	})

	Describe("Resolve", func() {
		It("is not idempotent", func() {
			a, err := service.Ingest(ctx, alert.SensorAlertRequest{
				AssetTag: "PUMP-001",
				Source:   "s",
				Severity: alert.SeverityWarning,
				Message:  "m",
			})
			Expect(err).NotTo(HaveOccurred())

			resolved, err := service.Resolve(ctx, a.ID, 9)
			Expect(err).NotTo(HaveOccurred())
			Expect(resolved.ResolvedAt).NotTo(BeNil())

			_, err = service.Resolve(ctx, a.ID, 9)
			Expect(err).To(MatchError(alert.ErrAlreadyResolved))
		})
	})

	Describe("GetAll", func() {
		It("filters by status", func() {
			a, err := service.Ingest(ctx, alert.SensorAlertRequest{
				AssetTag: "PUMP-001", Source: "s", Severity: alert.SeverityWarning, Message: "first",
			})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Ingest(ctx, alert.SensorAlertRequest{
				AssetTag: "PUMP-001", Source: "s", Severity: alert.SeverityWarning, Message: "second",
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Acknowledge(ctx, a.ID, 9)
			Expect(err).NotTo(HaveOccurred())

			open, err := service.GetAll(alert.StatusOpen, 20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(open).To(HaveLen(1))
			Expect(open[0].Message).To(Equal("second"))
		})
	})
})

package workorder_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/hmaulana/maintenance-management/internal/core/events"
	"github.com/hmaulana/maintenance-management/internal/workorder"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestWorkOrderService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "WorkOrder Service Suite")
}

type MockRepository struct {
	orders     map[int64]*workorder.WorkOrder
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		orders: make(map[int64]*workorder.WorkOrder),
		nextID: 1,
	}
}

func (m *MockRepository) Create(w *workorder.WorkOrder) error {
	if m.shouldFail {
		return m.failError
	}
	w.ID = m.nextID
	m.nextID++
	clone := *w
	m.orders[w.ID] = &clone
	return nil
}

func (m *MockRepository) GetByID(id int64) (*workorder.WorkOrder, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	w, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	clone := *w
	return &clone, nil
}

func (m *MockRepository) GetAll(limit, offset int) ([]*workorder.WorkOrder, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*workorder.WorkOrder
	for _, w := range m.orders {
		result = append(result, w)
	}
	return result, nil
}

func (m *MockRepository) GetByAssignee(userID int64, limit, offset int) ([]*workorder.WorkOrder, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*workorder.WorkOrder
	for _, w := range m.orders {
		if w.IsAssignedTo(userID) {
			result = append(result, w)
		}
	}
	return result, nil
}

func (m *MockRepository) GetByAsset(assetID int64, limit, offset int) ([]*workorder.WorkOrder, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*workorder.WorkOrder
	for _, w := range m.orders {
		if w.AssetID == assetID {
			result = append(result, w)
		}
	}
	return result, nil
}

func (m *MockRepository) Update(w *workorder.WorkOrder) error {
	if m.shouldFail {
		return m.failError
	}
	clone := *w
	m.orders[w.ID] = &clone
	return nil
}

func (m *MockRepository) UpdateAssignee(id int64, userID int64) error {
	if m.shouldFail {
		return m.failError
	}
	if w, ok := m.orders[id]; ok {
		w.AssignedTo = &userID
	}
	return nil
}

var _ = Describe("WorkOrder Service", func() {
	var (
		service  *workorder.Service
		mockRepo *MockRepository
		bus      *events.Bus
		ctx      context.Context
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewBus(testLogger)
		service = workorder.NewService(mockRepo, bus, testLogger)
		ctx = context.Background()
	})

	Describe("Create", func() {
		It("opens a work order with medium priority by default", func() {
			order, err := service.Create(ctx, 7, workorder.CreateWorkOrderDTO{
				AssetID: 1,
				Title:   "Replace bearing",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(order.Status).To(Equal(workorder.StatusOpen))
			Expect(order.Priority).To(Equal(workorder.PriorityMedium))
			Expect(order.CreatedBy).To(Equal(int64(7)))
		})

		It("publishes a created event with the manual source", func() {
			received := make(chan events.Event, 1)
			bus.Subscribe(events.EventTypeWorkOrderCreated, func(_ context.Context, e events.Event) error {
				received <- e
				return nil
			})

			_, err := service.Create(ctx, 7, workorder.CreateWorkOrderDTO{AssetID: 1, Title: "Replace bearing"})
			Expect(err).NotTo(HaveOccurred())

			Eventually(received).Should(Receive(WithTransform(func(e events.Event) string {
				return e.(*events.WorkOrderCreatedEvent).Source
			}, Equal(workorder.SourceManual))))
		})

		It("rejects a missing title", func() {
			_, err := service.Create(ctx, 7, workorder.CreateWorkOrderDTO{AssetID: 1})
			Expect(err).To(HaveOccurred())
		})

		It("rejects an unknown priority", func() {
			_, err := service.Create(ctx, 7, workorder.CreateWorkOrderDTO{AssetID: 1, Title: "x", Priority: "urgent"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("CreateFromAlert", func() {
		It("opens a critical work order carrying the alert reference", func() {
			order, err := service.CreateFromAlert(ctx, 42, 3, "Overheat on PUMP-001", "temperature above threshold")
			Expect(err).NotTo(HaveOccurred())
			Expect(order.Priority).To(Equal(workorder.PriorityCritical))
			Expect(order.SourceAlertID).NotTo(BeNil())
			Expect(*order.SourceAlertID).To(Equal(int64(42)))
		})
	})

	Describe("UpdateStatus", func() {
		var orderID int64

		BeforeEach(func() {
			assignee := int64(9)
			order, err := service.Create(ctx, 7, workorder.CreateWorkOrderDTO{
				AssetID:    1,
				Title:      "Replace bearing",
				AssignedTo: &assignee,
			})
			Expect(err).NotTo(HaveOccurred())
			orderID = order.ID
		})

		It("walks open through in_progress to completed", func() {
			order, err := service.UpdateStatus(orderID, 9, false, workorder.UpdateStatusDTO{Status: workorder.StatusInProgress})
			Expect(err).NotTo(HaveOccurred())
			Expect(order.StartedAt).NotTo(BeNil())

			order, err = service.UpdateStatus(orderID, 9, false, workorder.UpdateStatusDTO{Status: workorder.StatusCompleted})
			Expect(err).NotTo(HaveOccurred())
			Expect(order.Status).To(Equal(workorder.StatusCompleted))
			Expect(order.CompletedAt).NotTo(BeNil())
		})

		It("refuses to complete an order that was never started", func() {
			_, err := service.UpdateStatus(orderID, 9, false, workorder.UpdateStatusDTO{Status: workorder.StatusCompleted})
			Expect(err).To(MatchError(workorder.ErrInvalidTransition))
		})

		It("refuses to reopen a completed order", func() {
			_, err := service.UpdateStatus(orderID, 9, false, workorder.UpdateStatusDTO{Status: workorder.StatusInProgress})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.UpdateStatus(orderID, 9, false, workorder.UpdateStatusDTO{Status: workorder.StatusCompleted})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.UpdateStatus(orderID, 9, false, workorder.UpdateStatusDTO{Status: workorder.StatusInProgress})
			Expect(err).To(MatchError(workorder.ErrInvalidTransition))
		})

		It("blocks a restricted caller touching someone else's order", func() {
			_, err := service.UpdateStatus(orderID, 99, true, workorder.UpdateStatusDTO{Status: workorder.StatusInProgress})
			Expect(err).To(MatchError(workorder.ErrNotAssignee))
		})

		It("lets a restricted caller move their own order", func() {
			order, err := service.UpdateStatus(orderID, 9, true, workorder.UpdateStatusDTO{Status: workorder.StatusInProgress})
			Expect(err).NotTo(HaveOccurred())
			Expect(order.Status).To(Equal(workorder.StatusInProgress))
		})

		It("returns not found for a missing order", func() {
			_, err := service.UpdateStatus(999, 9, false, workorder.UpdateStatusDTO{Status: workorder.StatusInProgress})
			Expect(err).To(MatchError(workorder.ErrWorkOrderNotFound))
		})
	})

	Describe("GetMyWorkOrders", func() {
		It("returns only the caller's assignments", func() {
			mine := int64(9)
			other := int64(10)
			_, err := service.Create(ctx, 7, workorder.CreateWorkOrderDTO{AssetID: 1, Title: "a", AssignedTo: &mine})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Create(ctx, 7, workorder.CreateWorkOrderDTO{AssetID: 1, Title: "b", AssignedTo: &other})
			Expect(err).NotTo(HaveOccurred())

			orders, err := service.GetMyWorkOrders(mine, 20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(orders).To(HaveLen(1))
			Expect(orders[0].Title).To(Equal("a"))
		})
	})

	Describe("Assign", func() {
		It("sets the assignee", func() {
			order, err := service.Create(ctx, 7, workorder.CreateWorkOrderDTO{AssetID: 1, Title: "Replace bearing"})
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.Assign(order.ID, workorder.AssignDTO{AssignedTo: 9})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.IsAssignedTo(9)).To(BeTrue())
		})

		It("propagates repository failures on create", func() {
			mockRepo.shouldFail = true
			mockRepo.failError = errors.New("db down")

			_, err := service.Create(ctx, 7, workorder.CreateWorkOrderDTO{AssetID: 1, Title: "x"})
			Expect(err).To(HaveOccurred())
		})
	})
})

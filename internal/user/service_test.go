package user_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hmaulana/maintenance-management/internal/core/identity"
	"github.com/hmaulana/maintenance-management/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

type MockRepository struct {
	profiles   map[int64]*user.Profile
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{profiles: make(map[int64]*user.Profile)}
}

func (m *MockRepository) GetByID(_ context.Context, userID int64) (*user.Profile, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, user.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *MockRepository) UpdateProfile(_ context.Context, userID int64, name, email *string) (*user.Profile, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, user.ErrNotFound
	}
	if name != nil {
		p.Name = *name
	}
	if email != nil {
		p.Email = *email
	}
	p.UpdatedAt = time.Now()
	copied := *p
	return &copied, nil
}

func (m *MockRepository) SetFirstLogin(_ context.Context, userID int64, firstLogin bool) (*user.Profile, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, user.ErrNotFound
	}
	p.FirstLogin = firstLogin
	copied := *p
	return &copied, nil
}

func strPtr(s string) *string { return &s }

var _ = Describe("User Service", func() {
	var (
		repo    *MockRepository
		service *user.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = NewMockRepository()
		repo.profiles[1] = &user.Profile{
			ID:         1,
			Email:      "tono@plantworks.example",
			Name:       "Tono Wibowo",
			Role:       identity.RoleTechnician,
			FirstLogin: true,
			IsActive:   true,
		}
		service = user.NewService(repo)
		ctx = context.Background()
	})

	Describe("GetByID", func() {
		It("returns the stored profile", func() {
			p, err := service.GetByID(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Email).To(Equal("tono@plantworks.example"))
			Expect(p.Role).To(Equal(identity.RoleTechnician))
		})

		It("wraps not-found errors from the repository", func() {
			_, err := service.GetByID(ctx, 99)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, user.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("UpdateProfile", func() {
		It("applies only the provided fields", func() {
			p, err := service.UpdateProfile(ctx, 1, user.UpdateProfileDTO{Name: strPtr("Tono W.")})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Name).To(Equal("Tono W."))
			Expect(p.Email).To(Equal("tono@plantworks.example"))
		})

		It("trims whitespace before persisting", func() {
			p, err := service.UpdateProfile(ctx, 1, user.UpdateProfileDTO{Name: strPtr("  Tono W.  ")})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Name).To(Equal("Tono W."))
		})

		It("rejects an empty update", func() {
			_, err := service.UpdateProfile(ctx, 1, user.UpdateProfileDTO{})
			var validationErr *user.ValidationError
			Expect(errors.As(err, &validationErr)).To(BeTrue())
			Expect(validationErr.Field).To(Equal("body"))
		})

		It("rejects a malformed email", func() {
			_, err := service.UpdateProfile(ctx, 1, user.UpdateProfileDTO{Email: strPtr("not-an-email")})
			var validationErr *user.ValidationError
			Expect(errors.As(err, &validationErr)).To(BeTrue())
			Expect(validationErr.Field).To(Equal("email"))
		})

		It("does not touch the repository when validation fails", func() {
			_, err := service.UpdateProfile(ctx, 1, user.UpdateProfileDTO{Name: strPtr("   ")})
			Expect(err).To(HaveOccurred())

			p, err := service.GetByID(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Name).To(Equal("Tono Wibowo"))
		})
	})

	Describe("CompleteOnboarding", func() {
		It("clears the first-login flag", func() {
			p, err := service.CompleteOnboarding(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.FirstLogin).To(BeFalse())
		})

		It("propagates repository failures", func() {
			repo.shouldFail = true
			repo.failError = errors.New("connection reset")
			_, err := service.CompleteOnboarding(ctx, 1)
			Expect(err).To(HaveOccurred())
		})
	})
})

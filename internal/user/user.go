package user

import (
	"errors"
	"time"

	userDatamodel "github.com/hmaulana/maintenance-management/internal/core/datamodel/user"
	"github.com/hmaulana/maintenance-management/internal/core/identity"
)

// Profile is the user as presented to the dashboard: the identity fields the
// session carries plus account bookkeeping.
type Profile struct {
	ID         int64         `json:"id"`
	Email      string        `json:"email"`
	Name       string        `json:"name"`
	Role       identity.Role `json:"role"`
	FirstLogin bool          `json:"first_login"`
	IsActive   bool          `json:"is_active"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

var ErrNotFound = errors.New("user not found")

func FromDataModel(u *userDatamodel.User) *Profile {
	return &Profile{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       identity.Role(u.Role),
		FirstLogin: u.FirstLogin,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// Identity projects the profile onto the session's user shape.
func (p *Profile) Identity() *identity.User {
	return &identity.User{
		ID:         p.ID,
		Email:      p.Email,
		Name:       p.Name,
		Role:       p.Role,
		FirstLogin: p.FirstLogin,
	}
}

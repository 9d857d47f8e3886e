package identity

// Package identity holds the domain-level identity types shared by the
// session manager, the permission policy, and the route guard. It is pure
// and free of transport or storage concerns.

import (
	"encoding/json"
	"fmt"
)

// Role is the closed set of application roles. Any other value is invalid
// and must be rejected wherever untrusted data is decoded into a Role.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleEngineer   Role = "engineer"
	RoleTechnician Role = "technician"
)

// Roles lists every member of the closed set, in a stable order.
var Roles = []Role{RoleAdmin, RoleEngineer, RoleTechnician}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEngineer, RoleTechnician:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// ParseRole converts untrusted input into a Role, rejecting anything
// outside the closed set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unrecognized role %q", s)
	}
	return r, nil
}

// User is the identity record held by an authenticated session.
// FirstLogin stays true until the user completes onboarding.
type User struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	FirstLogin bool   `json:"first_login"`
}

// DecodeUser parses a serialized user coming from an untrusted boundary
// (session store, network) and validates its role against the closed set.
func DecodeUser(data []byte) (*User, error) {
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	if !u.Role.Valid() {
		return nil, fmt.Errorf("decode user: unrecognized role %q", u.Role)
	}
	return &u, nil
}

// Encode serializes the user for persistence in the session store.
func (u *User) Encode() ([]byte, error) {
	return json.Marshal(u)
}

// Clone returns a copy so callers cannot mutate session-owned state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}

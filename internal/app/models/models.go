package models

import "strings"

// Role is a membership a user can hold. A user may hold several at once.
type Role string

const (
	RoleFounder  Role = "founder"
	RoleInvestor Role = "investor"
	RoleMentor   Role = "mentor"
)

// AllRoles lists every known role in display order.
var AllRoles = []Role{RoleFounder, RoleInvestor, RoleMentor}

// ParseRole converts user input into a Role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllRoles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

// RoleSet is the set of memberships held by one user.
type RoleSet map[Role]struct{}

// NewRoleSet builds a set from the given roles.
func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

// Has reports whether the set contains r.
func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

// Add inserts r into the set.
func (s RoleSet) Add(r Role) {
	s[r] = struct{}{}
}

// Slice returns the roles in display order.
func (s RoleSet) Slice() []Role {
	out := make([]Role, 0, len(s))
	for _, r := range AllRoles {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

// StartupStatus is the lifecycle state of a startup
type StartupStatus string

const (
	StartupStatusActive   StartupStatus = "Active"
	StartupStatusAcquired StartupStatus = "Acquired"
	StartupStatusClosed   StartupStatus = "Closed"
)

// Valid reports whether the status is one of the known values.
func (s StartupStatus) Valid() bool {
	switch s {
	case StartupStatusActive, StartupStatusAcquired, StartupStatusClosed:
		return true
	}
	return false
}

package domain

import (
	"encoding"
	"encoding/json"
	"errors"
	"sort"
)

// Role is a capability a signed in person holds within a team.
type Role int

const (
	RolePersonManager Role = iota
	RoleFineTemplateManager
	RoleFineManager
	RoleTeamPropertiesManager
	RoleUserRoleManager
	RoleTeamManager
)

var roleNames = map[Role]string{
	RolePersonManager:         "person-manager",
	RoleFineTemplateManager:   "fine-template-manager",
	RoleFineManager:           "fine-manager",
	RoleTeamPropertiesManager: "team-properties-manager",
	RoleUserRoleManager:       "user-role-manager",
	RoleTeamManager:           "team-manager",
}

// ErrInvalidRole is returned when a role name is not known.
var ErrInvalidRole = errors.New("invalid role")

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return "unknown"
}

// ParseRole parses a role name.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return Role(-1), ErrInvalidRole
}

var (
	_ encoding.TextMarshaler   = Role(0)
	_ encoding.TextUnmarshaler = (*Role)(nil)
)

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if _, ok := roleNames[r]; !ok {
		return nil, ErrInvalidRole
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// AllRoles returns every role. The founder of a team gets all of them.
func AllRoles() RoleSet {
	set := RoleSet{}
	for r := range roleNames {
		set[r] = struct{}{}
	}
	return set
}

// RoleSet is an unordered set of roles. It is encoded as a sorted JSON array.
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Contains reports whether every given role is in the set.
func (s RoleSet) Contains(roles ...Role) bool {
	for _, r := range roles {
		if _, ok := s[r]; !ok {
			return false
		}
	}
	return true
}

func (s RoleSet) Slice() []Role {
	out := make([]Role, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s RoleSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

func (s *RoleSet) UnmarshalJSON(data []byte) error {
	var roles []Role
	if err := json.Unmarshal(data, &roles); err != nil {
		return err
	}
	*s = NewRoleSet(roles...)
	return nil
}

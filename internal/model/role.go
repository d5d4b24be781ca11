package model

import "strings"

// Role is the closed set of account roles.  Authorization decisions go
// through the capability methods below rather than comparing raw strings
// at call sites.
type Role string

const (
	RoleUser      Role = "user"
	RoleAttendee  Role = "attendee"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

// ParseRole normalizes a raw role string and reports whether it names a
// known role.  The empty string is not a role; callers decide their own
// default.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleUser:
		return RoleUser, true
	case RoleAttendee:
		return RoleAttendee, true
	case RoleOrganizer:
		return RoleOrganizer, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// IsAdmin reports whether the role carries full administrative rights.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// CanOrganize reports whether the role may create and manage events.
// Admins organize implicitly.
func (r Role) CanOrganize() bool { return r == RoleOrganizer || r == RoleAdmin }

// Valid reports whether the role is one of the closed set.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

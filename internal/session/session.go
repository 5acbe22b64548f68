package session

import "strings"

// Role identifies which portal section a user belongs to.
type Role string

// The closed set of portal roles.
const (
	RoleAdmin     Role = "admin"
	RoleEmployer  Role = "employer"
	RoleJobSeeker Role = "job_seeker"
)

// ParseRole maps a raw role string onto the closed role set. Anything
// unrecognised falls back to job_seeker; this is deliberate policy so a
// malformed role never locks a user out of the default portal.
func ParseRole(raw string) Role {
	switch Role(strings.TrimSpace(strings.ToLower(raw))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleEmployer:
		return RoleEmployer
	default:
		return RoleJobSeeker
	}
}

// LandingPath returns the page a user of this role is sent to after
// authenticating or when redirected out of the auth section.
func (r Role) LandingPath() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleEmployer:
		return "/employer/dashboard"
	default:
		return "/"
	}
}

// SectionPrefix returns the role-restricted path prefix owned by this role.
func (r Role) SectionPrefix() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleEmployer:
		return "/employer"
	default:
		return "/job-seeker"
	}
}

// User is the identity record carried inside the session.
type User struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

// Session is the client-held authentication state for one browser context:
// the upstream bearer token plus the user record it was issued for. The two
// travel together inside a single signed cookie; a record with one but not
// the other is corrupted and treated as logged out.
type Session struct {
	ID    string `json:"sid"`
	Token string `json:"token"`
	User  User   `json:"user"`
}

// LoggedIn reports whether the session carries a usable credential.
func (s Session) LoggedIn() bool {
	return s.Token != "" && s.User.Email != ""
}

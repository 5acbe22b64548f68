package guard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amezghal/careergate/internal/session"
)

func TestDecideLoggedOut(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		allow    bool
		location string
	}{
		{name: "home is public", path: "/", allow: true},
		{name: "login page is public", path: "/auth/login", allow: true},
		{name: "register page is public", path: "/auth/register", allow: true},
		{name: "admin section needs auth", path: "/admin/dashboard", allow: false, location: "/"},
		{name: "employer section needs auth", path: "/employer/jobs", allow: false, location: "/"},
		{name: "job seeker section needs auth", path: "/job-seeker/profile", allow: false, location: "/"},
		{name: "unknown paths need auth", path: "/some/page", allow: false, location: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(false, session.RoleJobSeeker, tt.path)
			require.Equal(t, tt.allow, d.Allow)
			require.Equal(t, tt.location, d.Location)
		})
	}
}

func TestDecideAuthPagesRedirectWhenLoggedIn(t *testing.T) {
	tests := []struct {
		role    session.Role
		landing string
	}{
		{role: session.RoleJobSeeker, landing: "/"},
		{role: session.RoleEmployer, landing: "/employer/dashboard"},
		{role: session.RoleAdmin, landing: "/admin/dashboard"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			for _, path := range []string{"/auth/login", "/auth/register"} {
				d := Decide(true, tt.role, path)
				require.False(t, d.Allow)
				require.Equal(t, tt.landing, d.Location)
			}
		})
	}
}

func TestDecideWrongRoleRedirectsToOwnLanding(t *testing.T) {
	tests := []struct {
		name    string
		role    session.Role
		path    string
		landing string
	}{
		{name: "seeker in admin section", role: session.RoleJobSeeker, path: "/admin/users", landing: "/"},
		{name: "seeker in employer section", role: session.RoleJobSeeker, path: "/employer/jobs", landing: "/"},
		{name: "employer in admin section", role: session.RoleEmployer, path: "/admin/dashboard", landing: "/employer/dashboard"},
		{name: "employer in seeker section", role: session.RoleEmployer, path: "/job-seeker/profile", landing: "/employer/dashboard"},
		{name: "admin in employer section", role: session.RoleAdmin, path: "/employer/dashboard", landing: "/admin/dashboard"},
		{name: "admin in seeker section", role: session.RoleAdmin, path: "/job-seeker/applications", landing: "/admin/dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(true, tt.role, tt.path)
			require.False(t, d.Allow)
			require.Equal(t, tt.landing, d.Location)
		})
	}
}

func TestDecideMatchingRoleAllowed(t *testing.T) {
	require.True(t, Decide(true, session.RoleAdmin, "/admin/dashboard").Allow)
	require.True(t, Decide(true, session.RoleAdmin, "/admin/users").Allow)
	require.True(t, Decide(true, session.RoleEmployer, "/employer/jobs").Allow)
	require.True(t, Decide(true, session.RoleJobSeeker, "/job-seeker/profile").Allow)

	// Shared pages stay reachable for every role.
	for _, role := range []session.Role{session.RoleAdmin, session.RoleEmployer, session.RoleJobSeeker} {
		require.True(t, Decide(true, role, "/").Allow)
		require.True(t, Decide(true, role, "/jobs/42").Allow)
	}
}

func TestDecideBareSectionRootRewritesToDashboard(t *testing.T) {
	d := Decide(true, session.RoleAdmin, "/admin")
	require.False(t, d.Allow)
	require.Equal(t, "/admin/dashboard", d.Location)

	d = Decide(true, session.RoleEmployer, "/employer/")
	require.False(t, d.Allow)
	require.Equal(t, "/employer/dashboard", d.Location)

	// Wrong role at a bare root still bounces to the caller's own landing.
	d = Decide(true, session.RoleJobSeeker, "/admin")
	require.False(t, d.Allow)
	require.Equal(t, "/", d.Location)
}

func TestDecidePrefixMatchingIsSegmentAware(t *testing.T) {
	// "/admin-tools" is not inside "/admin".
	require.True(t, Decide(true, session.RoleJobSeeker, "/admin-tools").Allow)
	require.True(t, Decide(true, session.RoleEmployer, "/job-seekers").Allow)
}

func TestDecideTrailingSlashNormalised(t *testing.T) {
	d := Decide(true, session.RoleJobSeeker, "/admin/users/")
	require.False(t, d.Allow)
	require.Equal(t, "/", d.Location)

	require.True(t, Decide(false, session.RoleJobSeeker, "").Allow)
}

// Every (loggedIn, role, path) input yields either an allow or a redirect
// whose target itself resolves to allow, so a redirect chain always
// terminates after one hop.
func TestDecideRedirectTargetsTerminate(t *testing.T) {
	paths := []string{
		"/", "/auth/login", "/auth/register",
		"/admin", "/admin/dashboard", "/admin/users",
		"/employer", "/employer/dashboard", "/employer/jobs",
		"/job-seeker", "/job-seeker/dashboard", "/job-seeker/profile",
		"/jobs/1", "/companies/2",
	}
	roles := []session.Role{session.RoleAdmin, session.RoleEmployer, session.RoleJobSeeker}

	for _, loggedIn := range []bool{true, false} {
		for _, role := range roles {
			for _, path := range paths {
				d := Decide(loggedIn, role, path)
				if d.Allow {
					continue
				}
				next := Decide(loggedIn, role, d.Location)
				require.True(t, next.Allow,
					"loggedIn=%v role=%s path=%s redirected to %s which redirects again",
					loggedIn, role, path, d.Location)
			}
		}
	}
}

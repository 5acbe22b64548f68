package guard

import (
	"strings"

	"github.com/amezghal/careergate/internal/session"
)

// Path constants used by the decision table.
const (
	HomePath   = "/"
	AuthPrefix = "/auth"
)

var sectionPrefixes = []string{"/admin", "/employer", "/job-seeker"}

// Decision is the outcome of classifying one navigation request.
type Decision struct {
	Allow    bool
	Location string // redirect target when Allow is false
}

func allow() Decision             { return Decision{Allow: true} }
func redirect(to string) Decision { return Decision{Location: to} }

// Decide classifies a navigation request from the persisted session state.
// It is a pure function over (loggedIn, role, path): no I/O, no memory
// between calls, evaluated synchronously before the target page renders.
//
// Wrong-role access always redirects to the caller's own landing path; the
// per-section special cases of the old frontend were dropped in favour of
// one rule.
func Decide(loggedIn bool, role session.Role, path string) Decision {
	path = normalizePath(path)

	if !loggedIn {
		if path == HomePath || underPrefix(path, AuthPrefix) {
			return allow()
		}
		return redirect(HomePath)
	}

	if underPrefix(path, AuthPrefix) {
		return redirect(role.LandingPath())
	}

	for _, prefix := range sectionPrefixes {
		if path == prefix {
			// Bare section root rewrites to its dashboard.
			if prefix != role.SectionPrefix() {
				return redirect(role.LandingPath())
			}
			return redirect(prefix + "/dashboard")
		}
		if underPrefix(path, prefix) && prefix != role.SectionPrefix() {
			return redirect(role.LandingPath())
		}
	}

	return allow()
}

func normalizePath(path string) string {
	if path == "" {
		return HomePath
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// underPrefix reports whether path sits at or below prefix as a path
// segment, so "/admin-tools" does not count as under "/admin".
func underPrefix(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}

package access

import (
	"strings"

	"github.com/BruksfildServices01/room-scheduler/internal/domain/identity"
)

const SignInPath = "/signin"

var (
	privatePrefixes = []string{"/dashboard"}
	authPages       = []string{"/signin", "/signin/admin", "/signup"}
)

// Decision is the outcome of a navigation check. Redirect is empty when
// the navigation is allowed.
type Decision struct {
	Allow    bool
	Redirect string
}

func allow() Decision { return Decision{Allow: true} }

func redirect(to string) Decision { return Decision{Redirect: to} }

// Decide evaluates the navigation rules in order. A nil or inactive
// principal is treated as unauthenticated.
func Decide(path string, p *identity.Principal) Decision {
	path = cleanPath(path)
	segments := splitSegments(path)

	isRoot := path == "/"
	isPrivate := hasPrefix(path, privatePrefixes)
	isAuth := isAuthPage(path)

	if p == nil || !p.IsActive {
		if isPrivate || isRoot {
			return redirect(SignInPath)
		}
		return allow()
	}

	home := p.Home()

	if isAuth || isRoot {
		return redirect(home)
	}

	isDashboard := len(segments) > 0 && segments[0] == "dashboard"
	if isDashboard && (len(segments) < 2 || segments[1] != p.ID) {
		return redirect(home)
	}

	if p.IsAdmin() {
		return allow()
	}

	if hasSegment(segments, "logs") && !p.Has(identity.PermissionLogs) {
		return redirect(home)
	}

	if hasSegment(segments, "users") || hasSegment(segments, "clients") {
		return redirect(home)
	}

	if isDashboard && !hasSegment(segments, "profile") && !p.Has(identity.PermissionAppointments) {
		return redirect(p.ProfilePath())
	}

	return allow()
}

func cleanPath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return "/"
		}
	}
	return path
}

func splitSegments(path string) []string {
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func hasPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

func hasSegment(segments []string, name string) bool {
	for _, s := range segments {
		if s == name {
			return true
		}
	}
	return false
}

func isAuthPage(path string) bool {
	for _, page := range authPages {
		if path == page {
			return true
		}
	}
	return false
}

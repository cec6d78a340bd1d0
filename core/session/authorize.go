package session

import (
	"strings"

	"github.com/trainhub/trainhub/core/user"
)

// Console paths.
const (
	PathRoot           = "/"
	PathLogin          = "/login"
	PathSignup         = "/signup"
	PathDashboard      = "/dashboard"
	PathUsers          = "/users"
	PathParticipants   = "/participants"
	PathTrainings      = "/trainings"
	PathTrainingDetail = "/trainings/:id"
	PathStatistics     = "/statistics"
	PathProfile        = "/profile"
	PathNotFound       = "/notfound"
)

// publicPaths may be visited without a session.
var publicPaths = map[string]bool{
	PathRoot:   true,
	PathLogin:  true,
	PathSignup: true,
}

// routeCapabilities is the single source of truth for which paths each role
// may visit. The route authorizer and the menu filter both read it, so they
// cannot drift apart.
var routeCapabilities = map[user.Role][]string{
	user.RoleAdmin: {
		PathDashboard, PathUsers, PathParticipants, PathTrainings,
		PathTrainingDetail, PathStatistics, PathProfile,
	},
	user.RoleManager: {
		PathStatistics, PathProfile,
	},
	user.RoleUser: {
		PathDashboard, PathParticipants, PathTrainings,
		PathTrainingDetail, PathProfile,
	},
}

// CanAccess reports whether the role's capability set contains the path.
// Unrecognized roles have no capabilities.
func CanAccess(role user.Role, path string) bool {
	for _, pattern := range routeCapabilities[role] {
		if pathMatches(pattern, path) {
			return true
		}
	}
	return false
}

// pathMatches compares path segments; a ":"-prefixed pattern segment matches
// any single non-empty segment.
func pathMatches(pattern, path string) bool {
	if pattern == path {
		return true
	}
	pat := strings.Split(strings.Trim(pattern, "/"), "/")
	seg := strings.Split(strings.Trim(path, "/"), "/")
	if len(pat) != len(seg) {
		return false
	}
	for i := range pat {
		if strings.HasPrefix(pat[i], ":") {
			if seg[i] == "" {
				return false
			}
			continue
		}
		if pat[i] != seg[i] {
			return false
		}
	}
	return true
}

// DecisionKind enumerates the possible authorization outcomes.
type DecisionKind uint8

const (
	// DecisionDefer means the session is still restoring: render nothing.
	DecisionDefer DecisionKind = iota
	DecisionAllow
	DecisionRedirect
	DecisionNotFound
)

// Decision is the explicit outcome of an authorization check. The rendering
// layer only acts on it; it never decides.
type Decision struct {
	Kind   DecisionKind
	Target string // redirect destination, set iff Kind == DecisionRedirect
}

func allow() Decision             { return Decision{Kind: DecisionAllow} }
func deferred() Decision          { return Decision{Kind: DecisionDefer} }
func notFound() Decision          { return Decision{Kind: DecisionNotFound} }
func redirectTo(path string) Decision {
	return Decision{Kind: DecisionRedirect, Target: path}
}

// Authorize decides what to do with a request for path given the session
// state. It is a total function: every (state, path) pair resolves.
func Authorize(st State, path string) Decision {
	if st.Status == LoadStatusLoading {
		return deferred()
	}
	if !st.Authenticated {
		if publicPaths[path] {
			return allow()
		}
		return redirectTo(PathLogin)
	}
	if !st.Role.Recognized() {
		// Unrecognized roles resolve every path to not-found. No automatic
		// logout happens here; the session stays soft-locked until the user
		// logs out themselves.
		return notFound()
	}
	if CanAccess(st.Role, path) {
		return allow()
	}
	return notFound()
}

// PostLoginPath is the one-time navigation target right after login.
func PostLoginPath(role user.Role) string {
	switch role {
	case user.RoleAdmin, user.RoleUser:
		return PathDashboard
	case user.RoleManager:
		return PathProfile
	}
	return PathNotFound
}

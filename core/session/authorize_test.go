package session

import (
	"testing"

	"github.com/trainhub/trainhub/core/user"
)

var allPaths = []string{
	PathDashboard, PathUsers, PathParticipants, PathTrainings,
	"/trainings/42", PathStatistics, PathProfile,
}

func TestCanAccess(t *testing.T) {
	wantByRole := map[user.Role]map[string]bool{
		user.RoleAdmin: {
			PathDashboard: true, PathUsers: true, PathParticipants: true,
			PathTrainings: true, "/trainings/42": true, PathStatistics: true,
			PathProfile: true,
		},
		user.RoleManager: {
			PathStatistics: true, PathProfile: true,
		},
		user.RoleUser: {
			PathDashboard: true, PathParticipants: true, PathTrainings: true,
			"/trainings/42": true, PathProfile: true,
		},
		user.RoleUnrecognized: {},
	}

	for role, want := range wantByRole {
		for _, path := range allPaths {
			if got := CanAccess(role, path); got != want[path] {
				t.Errorf("CanAccess(%v, %q) = %v, want %v", role, path, got, want[path])
			}
		}
	}
}

func Test_pathMatches(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{PathTrainings, PathTrainings, true},
		{PathTrainingDetail, "/trainings/42", true},
		{PathTrainingDetail, "/trainings/abc", true},
		{PathTrainingDetail, PathTrainings, false},
		{PathTrainingDetail, "/trainings/42/edit", false},
		{PathTrainingDetail, "/trainings/", false},
		{PathDashboard, PathTrainings, false},
	}
	for _, tt := range tests {
		if got := pathMatches(tt.pattern, tt.path); got != tt.want {
			t.Errorf("pathMatches(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
		}
	}
}

func TestAuthorize(t *testing.T) {
	loading := State{Status: LoadStatusLoading}
	anonymous := State{Status: LoadStatusReady}
	admin := State{Status: LoadStatusReady, Authenticated: true, Role: user.RoleAdmin}
	manager := State{Status: LoadStatusReady, Authenticated: true, Role: user.RoleManager}
	unknown := State{Status: LoadStatusReady, Authenticated: true, Role: user.RoleUnrecognized}

	tests := []struct {
		name string
		st   State
		path string
		want Decision
	}{
		// nothing is decided while the session is still restoring
		{name: "loading defers public path", st: loading, path: PathLogin, want: deferred()},
		{name: "loading defers private path", st: loading, path: PathDashboard, want: deferred()},

		{name: "anonymous public root", st: anonymous, path: PathRoot, want: allow()},
		{name: "anonymous public login", st: anonymous, path: PathLogin, want: allow()},
		{name: "anonymous public signup", st: anonymous, path: PathSignup, want: allow()},
		{name: "anonymous private path", st: anonymous, path: PathDashboard, want: redirectTo(PathLogin)},
		{name: "anonymous unknown path", st: anonymous, path: "/wat", want: redirectTo(PathLogin)},

		{name: "admin dashboard", st: admin, path: PathDashboard, want: allow()},
		{name: "admin training detail", st: admin, path: "/trainings/42", want: allow()},
		{name: "admin unknown path", st: admin, path: "/wat", want: notFound()},

		{name: "manager statistics", st: manager, path: PathStatistics, want: allow()},
		{name: "manager dashboard", st: manager, path: PathDashboard, want: notFound()},
		{name: "manager users", st: manager, path: PathUsers, want: notFound()},

		// a session with an unrecognized role is soft-locked, not logged out
		{name: "unrecognized role profile", st: unknown, path: PathProfile, want: notFound()},
		{name: "unrecognized role login", st: unknown, path: PathLogin, want: notFound()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Authorize(tt.st, tt.path); got != tt.want {
				t.Errorf("Authorize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPostLoginPath(t *testing.T) {
	tests := []struct {
		role user.Role
		want string
	}{
		{user.RoleAdmin, PathDashboard},
		{user.RoleUser, PathDashboard},
		{user.RoleManager, PathProfile},
		{user.RoleUnrecognized, PathNotFound},
	}
	for _, tt := range tests {
		if got := PostLoginPath(tt.role); got != tt.want {
			t.Errorf("PostLoginPath(%v) = %q, want %q", tt.role, got, tt.want)
		}
	}
}

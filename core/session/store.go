package session

import "github.com/trainhub/trainhub/core/user"

// Storage keys. These are the keys the original admin console kept its
// session under, preserved so a stored session survives the migration.
const (
	IdentityKey = "currentUser"
	TokenKey    = "token"
)

// Identity is the authenticated actor's profile as returned by the backend.
type Identity struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      user.Role `json:"role"`
}

func (id Identity) FullName() string {
	return id.FirstName + " " + id.LastName
}

// Store persists the authenticated identity and credential token across
// process restarts. Implementations are assumed single-writer; concurrent
// writers race with last-write-wins semantics.
type Store interface {
	// Save writes both values together; a reader never observes one without
	// the other.
	Save(ident Identity, token string) error
	// Restore returns the stored session, or ok=false when nothing usable is
	// stored. Malformed stored data is treated as absent, never as an error.
	Restore() (ident Identity, token string, ok bool)
	// Clear removes both values. Clearing an empty store is a no-op.
	Clear() error
}

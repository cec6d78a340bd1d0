package sessionstore

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/trainhub/trainhub/core/session"
	"github.com/trainhub/trainhub/core/user"
)

var testIdentity = session.Identity{
	ID:        1,
	Username:  "admin",
	FirstName: "Admin",
	LastName:  "User",
	Role:      user.RoleAdmin,
}

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	dir, err := ioutil.TempDir("", "trainhub-session")
	if err != nil {
		t.Fatalf("creating temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	return NewFileStore(filepath.Join(dir, "nested", "session.json"))
}

func TestFileStore_roundTrip(t *testing.T) {
	fs := newTestFileStore(t)

	if _, _, ok := fs.Restore(); ok {
		t.Error("Restore() ok = true on empty store")
	}

	if err := fs.Save(testIdentity, "tkn"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	ident, token, ok := fs.Restore()
	if !ok {
		t.Fatal("Restore() ok = false after Save()")
	}
	if ident != testIdentity {
		t.Errorf("identity = %+v, want %+v", ident, testIdentity)
	}
	if token != "tkn" {
		t.Errorf("token = %q, want %q", token, "tkn")
	}

	// a second save replaces the first
	other := testIdentity
	other.ID, other.Username, other.Role = 2, "sarah_m", user.RoleManager
	if err := fs.Save(other, "tkn2"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if ident, token, _ = fs.Restore(); ident != other || token != "tkn2" {
		t.Errorf("Restore() = %+v, %q; want %+v, %q", ident, token, other, "tkn2")
	}
}

func TestFileStore_Clear(t *testing.T) {
	fs := newTestFileStore(t)

	// clearing an empty store is a no-op
	if err := fs.Clear(); err != nil {
		t.Fatalf("Clear() on empty store error = %v", err)
	}

	if err := fs.Save(testIdentity, "tkn"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := fs.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, _, ok := fs.Restore(); ok {
		t.Error("Restore() ok = true after Clear()")
	}
	if err := fs.Clear(); err != nil {
		t.Fatalf("Clear() twice error = %v", err)
	}
}

func TestFileStore_malformedData(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: "not json"},
		{name: "missing token", data: `{"currentUser": "{\"id\":1}"}`},
		{name: "missing identity", data: `{"token": "tkn"}`},
		{name: "garbage identity", data: `{"currentUser": "wat", "token": "tkn"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newTestFileStore(t)
			if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
				t.Fatal(err)
			}
			if err := ioutil.WriteFile(fs.path, []byte(tt.data), 0o600); err != nil {
				t.Fatal(err)
			}
			// malformed stored data reads as an absent session
			if _, _, ok := fs.Restore(); ok {
				t.Error("Restore() ok = true, want false")
			}
		})
	}
}

func TestMemStore(t *testing.T) {
	ms := NewMemStore()

	if _, _, ok := ms.Restore(); ok {
		t.Error("Restore() ok = true on empty store")
	}
	if err := ms.Save(testIdentity, "tkn"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if ident, token, ok := ms.Restore(); !ok || ident != testIdentity || token != "tkn" {
		t.Errorf("Restore() = %+v, %q, %v", ident, token, ok)
	}
	if err := ms.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, _, ok := ms.Restore(); ok {
		t.Error("Restore() ok = true after Clear()")
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath("TrainHub")
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join("TrainHub", "session.json")) {
		t.Errorf("DefaultPath() = %q", path)
	}
}

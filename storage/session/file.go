// Package sessionstore provides session.Store implementations: a file-backed
// store for console processes and an in-memory store for tests.
package sessionstore

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/trainhub/trainhub/core/session"
)

// FileStore persists the session as a small JSON file holding the two
// well-known entries. It is the console-process analogue of origin-scoped
// browser storage: single writer assumed, last write wins.
type FileStore struct {
	path string
}

var _ session.Store = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath places the session file under the user's config directory.
func DefaultPath(appName string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "locating user config dir")
	}
	return filepath.Join(dir, appName, "session.json"), nil
}

func (fs *FileStore) Save(ident session.Identity, token string) error {
	identData, err := json.Marshal(ident)
	if err != nil {
		return errors.Wrap(err, "encoding identity")
	}
	data, err := json.Marshal(map[string]string{
		session.IdentityKey: string(identData),
		session.TokenKey:    token,
	})
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}

	if err = os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return errors.Wrap(err, "creating session dir")
	}
	// write-then-rename so a reader never observes a half-written session
	tmp := fs.path + ".tmp"
	if err = ioutil.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "writing session file")
	}
	return errors.Wrap(os.Rename(tmp, fs.path), "replacing session file")
}

func (fs *FileStore) Restore() (session.Identity, string, bool) {
	data, err := ioutil.ReadFile(fs.path)
	if err != nil {
		return session.Identity{}, "", false
	}

	var entries map[string]string
	if err = json.Unmarshal(data, &entries); err != nil {
		return session.Identity{}, "", false
	}
	identData, token := entries[session.IdentityKey], entries[session.TokenKey]
	if identData == "" || token == "" {
		return session.Identity{}, "", false
	}

	var ident session.Identity
	if err = json.Unmarshal([]byte(identData), &ident); err != nil {
		return session.Identity{}, "", false
	}
	return ident, token, true
}

func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing session file")
	}
	return nil
}

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/citefix/citefix-cli/internal/domain"
)

// Fixed keys in durable client storage. The three are written together on
// login and removed together on logout or invalidation.
const (
	keyToken  = "token"
	keyUser   = "user.json"
	keyUserID = "user_id"
)

// Credentials is the persisted (token, user) pair.
type Credentials struct {
	Token string
	User  domain.User
}

// Store persists credentials under per-key files in the client state
// directory, the durable-storage collaborator of the session manager.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Load reads the persisted credentials. It returns (nil, nil) when no
// complete pair is stored, and an error only when stored data is unreadable
// or corrupt; the caller treats that as an invalid session and purges.
func (s *Store) Load() (*Credentials, error) {
	token, err := os.ReadFile(filepath.Join(s.dir, keyToken))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}

	raw, err := os.ReadFile(filepath.Join(s.dir, keyUser))
	if errors.Is(err, fs.ErrNotExist) {
		// Half a pair, never trusted.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read user: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decode stored user: %w", err)
	}
	user.Normalize()

	return &Credentials{Token: string(token), User: user}, nil
}

// Save writes token, user and the user-id convenience key as one logical
// unit: consecutively, with no suspension between the writes.
func (s *Store) Save(creds Credentials) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	raw, err := json.Marshal(creds.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, keyToken), []byte(creds.Token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, keyUser), raw, 0o600); err != nil {
		return fmt.Errorf("write user: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, keyUserID), []byte(creds.User.ID), 0o600); err != nil {
		return fmt.Errorf("write user id: %w", err)
	}
	return nil
}

// Clear removes all persisted keys. Missing files are not an error.
func (s *Store) Clear() error {
	var firstErr error
	for _, key := range []string{keyToken, keyUser, keyUserID} {
		if err := os.Remove(filepath.Join(s.dir, key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			if firstErr == nil {
				firstErr = fmt.Errorf("remove %s: %w", key, err)
			}
		}
	}
	return firstErr
}

// UserID returns the separately stored user-id convenience key, or "".
func (s *Store) UserID() string {
	raw, err := os.ReadFile(filepath.Join(s.dir, keyUserID))
	if err != nil {
		return ""
	}
	return string(raw)
}

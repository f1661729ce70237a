package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Credentials holds the token pair issued at login.
type Credentials struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenStore persists credentials between calls. A remember-me login uses
// the file-backed store so the session survives restarts; otherwise the
// in-memory store is used and the session ends with the process.
type TokenStore interface {
	Save(creds Credentials) error
	Load() (Credentials, bool)
	Clear() error
}

// MemoryTokenStore keeps credentials for the lifetime of the process.
type MemoryTokenStore struct {
	mu    sync.Mutex
	creds Credentials
	set   bool
}

// NewMemoryTokenStore constructs an empty in-memory store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Save(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	s.set = true
	return nil
}

func (s *MemoryTokenStore) Load() (Credentials, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds, s.set
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = Credentials{}
	s.set = false
	return nil
}

// FileTokenStore persists credentials as a JSON file with owner-only
// permissions.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

// NewFileTokenStore constructs a store writing to the given path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Save(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, payload, 0o600)
}

func (s *FileTokenStore) Load() (Credentials, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := os.ReadFile(s.path)
	if err != nil {
		return Credentials{}, false
	}
	var creds Credentials
	if err := json.Unmarshal(payload, &creds); err != nil {
		return Credentials{}, false
	}
	return creds, creds.Token != ""
}

func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

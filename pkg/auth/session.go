package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Session is a saved Instagram session credential
type Session struct {
	Name      string    `json:"name"`
	SessionID string    `json:"session_id"`
	CSRFToken string    `json:"csrf_token,omitempty"`
	SavedAt   time.Time `json:"saved_at"`
}

// Store persists sessions by name
type Store interface {
	Save(s *Session) error
	Load(name string) (*Session, error)
	List() ([]*Session, error)
	Delete(name string) error
}

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidSession   = errors.New("invalid session")
	ErrStoreUnavailable = errors.New("session store unavailable")
)

// Manager handles session storage with fallback stores
type Manager struct {
	stores []Store
}

// NewManager stores sessions in the system keychain when available and in
// an encrypted file under dir otherwise
func NewManager(dir string, useKeyring bool) (*Manager, error) {
	var stores []Store

	if useKeyring {
		if ks, err := NewKeyringStore(); err == nil {
			stores = append(stores, ks)
		}
	}

	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			return nil, fmt.Errorf("failed to get config directory: %w", err)
		}
	}

	fs, err := NewEncryptedFileStore(filepath.Join(dir, "sessions.enc"), "")
	if err != nil {
		return nil, fmt.Errorf("failed to create encrypted store: %w", err)
	}
	stores = append(stores, fs)

	return &Manager{stores: stores}, nil
}

// NewManagerWithStores builds a manager over explicit stores
func NewManagerWithStores(stores ...Store) *Manager {
	return &Manager{stores: stores}
}

// Save writes the session to the first store that accepts it
func (m *Manager) Save(s *Session) error {
	if s == nil || strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidSession)
	}
	if strings.TrimSpace(s.SessionID) == "" {
		return fmt.Errorf("%w: session id is required", ErrInvalidSession)
	}

	s.SavedAt = time.Now()

	var lastErr error
	for _, store := range m.stores {
		if err := store.Save(s); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	if lastErr != nil {
		return fmt.Errorf("failed to save session: %w", lastErr)
	}
	return ErrStoreUnavailable
}

// Load returns the named session from the first store holding it
func (m *Manager) Load(name string) (*Session, error) {
	for _, store := range m.stores {
		if s, err := store.Load(name); err == nil && s != nil {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, name)
}

// List returns every saved session sorted by name. A session present in
// several stores is reported once, in its newest version.
func (m *Manager) List() ([]*Session, error) {
	byName := make(map[string]*Session)

	for _, store := range m.stores {
		sessions, err := store.List()
		if err != nil {
			continue
		}
		for _, s := range sessions {
			if existing, ok := byName[s.Name]; !ok || s.SavedAt.After(existing.SavedAt) {
				byName[s.Name] = s
			}
		}
	}

	out := make([]*Session, 0, len(byName))
	for _, s := range byName {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes the named session from every store
func (m *Manager) Delete(name string) error {
	deleted := false
	for _, store := range m.stores {
		if err := store.Delete(name); err == nil {
			deleted = true
		}
	}
	if !deleted {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, name)
	}
	return nil
}

// ConfigDir returns the igfollowers configuration directory, creating it
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "igfollowers")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// Masked returns a copy with the secrets masked
func (s *Session) Masked() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.SessionID = maskString(s.SessionID)
	if s.CSRFToken != "" {
		c.CSRFToken = maskString(s.CSRFToken)
	}
	return &c
}

// maskString masks all but the first 4 and last 4 characters of a string
func maskString(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

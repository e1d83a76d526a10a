package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"mobile-hospital-storefront/internal/domain"
)

// Storage keys. These are the only keys the storefront uses.
const (
	KeyUser  = "user"
	KeyToken = "accessToken"
	KeyCart  = "cart"
)

// Store is one visitor's persisted key/value state: identity, bearer
// credential and cart. Every write goes to disk before returning, so a
// restart never loses a committed mutation. Reads that hit malformed data
// report the key as absent; corrupt storage must never surface as an error.
type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]json.RawMessage
	subs   []func(key string)
}

// Open loads the store file at path, creating an empty store when the file is
// missing or unreadable as JSON.
func Open(path string) *Store {
	s := &Store{path: path, values: map[string]json.RawMessage{}}
	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var values map[string]json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil {
		return s
	}
	s.values = values
	return s
}

// Get returns the raw value stored under key.
func (s *Store) Get(key string) (json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// GetJSON decodes the value under key into v. Absent and malformed values
// both report false.
func (s *Store) GetJSON(key string, v interface{}) bool {
	raw, ok := s.Get(key)
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// SetJSON stores v under key and persists before returning.
func (s *Store) SetJSON(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	s.mu.Lock()
	s.values[key] = raw
	err = s.persistLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(key)
	return nil
}

// Remove deletes key and persists. Removing an absent key is a no-op.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	if _, ok := s.values[key]; !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.values, key)
	err := s.persistLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(key)
	return nil
}

// Subscribe registers fn to run after every committed mutation of any key.
// The identity shell uses this to react to cart and login changes without
// polling.
func (s *Store) Subscribe(fn func(key string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Identity returns the signed-in profile and bearer credential. Both records
// must be present and well formed; a half-written pair reads as signed out.
func (s *Store) Identity() (domain.Identity, string, bool) {
	var (
		identity domain.Identity
		token    string
	)
	if !s.GetJSON(KeyUser, &identity) || !s.GetJSON(KeyToken, &token) {
		return domain.Identity{}, "", false
	}
	if identity.Name == "" || token == "" {
		return domain.Identity{}, "", false
	}
	return identity, token, true
}

// SetIdentity stores the profile and credential in a single committed write
// so the pair can never desynchronize.
func (s *Store) SetIdentity(identity domain.Identity, token string) error {
	userRaw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyUser, err)
	}
	tokenRaw, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyToken, err)
	}
	s.mu.Lock()
	s.values[KeyUser] = userRaw
	s.values[KeyToken] = tokenRaw
	err = s.persistLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(KeyUser)
	s.notify(KeyToken)
	return nil
}

// ClearIdentity removes the profile and credential together.
func (s *Store) ClearIdentity() error {
	s.mu.Lock()
	delete(s.values, KeyUser)
	delete(s.values, KeyToken)
	err := s.persistLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(KeyUser)
	s.notify(KeyToken)
	return nil
}

// persistLocked writes the full record set atomically. Caller holds s.mu.
func (s *Store) persistLocked() error {
	raw, err := json.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

func (s *Store) notify(key string) {
	s.mu.Lock()
	subs := make([]func(string), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(key)
	}
}

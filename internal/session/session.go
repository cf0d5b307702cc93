// Package session persists the signed-in identity. Every backend keeps
// exactly one serialized {accessToken, user} record under a fixed key; Set
// replaces it wholesale and Clear removes it.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Domenick1991/airbooking-client/internal/domain"
)

// Store is the single source of truth for "is a user authenticated".
// Get returns (nil, nil) when nobody is signed in.
type Store interface {
	Get(ctx context.Context) (*domain.Session, error)
	Set(ctx context.Context, s domain.Session) error
	Clear(ctx context.Context) error
}

var ErrInvalidSession = errors.New("session has no access token")

func encode(s domain.Session) ([]byte, error) {
	if s.AccessToken == "" {
		return nil, ErrInvalidSession
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}

// decode treats an unreadable record as no session.
func decode(data []byte) *domain.Session {
	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil || s.AccessToken == "" {
		return nil
	}
	return &s
}

// MemoryStore keeps the session in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	current *domain.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(ctx context.Context) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil, nil
	}
	s := *m.current
	return &s, nil
}

func (m *MemoryStore) Set(ctx context.Context, s domain.Session) error {
	if s.AccessToken == "" {
		return ErrInvalidSession
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = &s
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
	return nil
}

var _ Store = (*MemoryStore)(nil)

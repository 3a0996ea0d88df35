// Package session holds the bearer token that identifies the signed-in user.
//
// A [Store] is passed explicitly to the API gateway rather than read from a process-wide
// global, so each client (and each test) decides where its token lives:
//   - [SQLiteStore] : durable, survives restarts (settings table, key [TokenKey])
//   - [MemoryStore] : in-process only
package session

import (
	"context"
	"sync"
)

// TokenKey is the well-known settings key the token is persisted under.
const TokenKey = "session.token"

// Store persists a single optional session token.
type Store interface {
	// Get returns the current token and whether one is set.
	Get(ctx context.Context) (string, bool, error)
	// Set replaces the current token.
	Set(ctx context.Context, token string) error
	// Clear removes the token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// MemoryStore is a [Store] kept in memory and safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a [MemoryStore], optionally seeded with a token.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Get(ctx context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != "", nil
}

func (s *MemoryStore) Set(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	return s.Set(ctx, "")
}

// Package service exposes ledgers over HTTP: a session registry owning
// live Ledger instances plus JSON handlers for every ledger operation.
package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/okayfine/billsplit/internal/ledger"
)

// ErrLedgerNotFound is returned when a request references a ledger ID
// absent from the registry.
var ErrLedgerNotFound = errors.New("ledger not found")

// Session pairs one ledger with the mutex that serializes access to it.
// The ledger itself is single-writer and lock-free; concurrent HTTP
// callers are funneled through Do.
type Session struct {
	mu     sync.Mutex
	ledger *ledger.Ledger
}

// Do runs fn with exclusive access to the session's ledger.
func (s *Session) Do(fn func(l *ledger.Ledger)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.ledger)
}

// Registry owns all live ledger sessions, keyed by generated ID.
// Sessions live only in memory; there is no durable storage.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Create starts a new empty ledger session and returns its ID.
func (r *Registry) Create() string {
	id := uuid.New().String()
	r.mu.Lock()
	r.sessions[id] = &Session{ledger: ledger.New()}
	r.mu.Unlock()
	return id
}

// Get returns the session for the given ID, or ErrLedgerNotFound.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("ledger %q: %w", id, ErrLedgerNotFound)
	}
	return session, nil
}

// Delete discards the session with the given ID. Deleting an absent ID
// is a no-op.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

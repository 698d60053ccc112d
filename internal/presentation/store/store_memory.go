// Package store keeps live presentation sessions. Sessions exist only in
// memory and die with the process.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"chimera/internal/presentation"
	id "chimera/pkg/domain"
	"chimera/pkg/platform/sentinel"
)

// ErrLimitReached is returned by Save when the store already holds the
// maximum number of sessions.
var ErrLimitReached = fmt.Errorf("session limit reached: %w", sentinel.ErrConflict)

// Session is a registered presentation and the sequencer driving it.
type Session struct {
	ID        id.PresentationID
	CreatedAt time.Time
	Sequencer *presentation.Sequencer
}

type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[id.PresentationID]*Session
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[id.PresentationID]*Session)}
}

// Save registers session. An ID already present is a conflict. With a
// positive limit, Save refuses once that many sessions are registered; the
// check and the insert happen under one lock.
func (s *InMemoryStore) Save(_ context.Context, session *Session, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; ok {
		return sentinel.ErrConflict
	}
	if limit > 0 && len(s.sessions) >= limit {
		return ErrLimitReached
	}
	s.sessions[session.ID] = session
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, pid id.PresentationID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if session, ok := s.sessions[pid]; ok {
		return session, nil
	}
	return nil, sentinel.ErrNotFound
}

// Delete unregisters and returns the session so the caller can close it.
func (s *InMemoryStore) Delete(_ context.Context, pid id.PresentationID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[pid]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	delete(s.sessions, pid)
	return session, nil
}

// List returns every session, oldest first.
func (s *InMemoryStore) List(_ context.Context) ([]*Session, error) {
	s.mu.RLock()
	out := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

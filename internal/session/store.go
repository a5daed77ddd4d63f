package session

import (
	"context"
	"errors"
	"sync"

	"github.com/quizforge/quizd/internal/quiz"
)

// ErrNotFound is returned when no state exists for a session ID. Callers
// treat it as "first touch" and start from quiz.NewState().
var ErrNotFound = errors.New("session not found")

// Store persists quiz state between requests, keyed by session ID.
type Store interface {
	Load(ctx context.Context, id string) (quiz.State, error)
	Save(ctx context.Context, id string, st quiz.State) error
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps sessions in process memory. Suitable for a single
// instance; state is gone on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]quiz.State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: map[string]quiz.State{}}
}

func (m *MemoryStore) Load(_ context.Context, id string) (quiz.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.states[id]
	if !ok {
		return quiz.State{}, ErrNotFound
	}
	return st, nil
}

func (m *MemoryStore) Save(_ context.Context, id string, st quiz.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[id] = st
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, id)
	return nil
}

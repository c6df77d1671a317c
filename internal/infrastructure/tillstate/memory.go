package tillstate

import (
	"context"
	"sync"
	"time"

	domainRepo "github.com/veloclub/clubhouse-api/internal/domain/repository"
)

type memoryStore struct {
	mu     sync.RWMutex
	states map[string]domainRepo.TillState
}

// NewMemoryStore creates an in-memory till state store. Used in tests and as
// a fallback when Redis is not configured; state does not survive restarts.
func NewMemoryStore() domainRepo.TillStateStore {
	return &memoryStore{states: make(map[string]domainRepo.TillState)}
}

func (s *memoryStore) Save(ctx context.Context, state *domainRepo.TillState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state.UpdatedAt = time.Now()
	stored := *state
	stored.Cart = copyCart(state.Cart)
	s.states[state.Terminal] = stored
	return nil
}

func (s *memoryStore) Load(ctx context.Context, terminal string) (*domainRepo.TillState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[terminal]
	if !ok {
		return nil, nil
	}
	copied := state
	copied.Cart = copyCart(state.Cart)
	return &copied, nil
}

// copyCart duplicates the cart slice so callers and the store never share a
// backing array.
func copyCart(cart []domainRepo.TillCartLine) []domainRepo.TillCartLine {
	if cart == nil {
		return nil
	}
	out := make([]domainRepo.TillCartLine, len(cart))
	copy(out, cart)
	return out
}

func (s *memoryStore) Clear(ctx context.Context, terminal string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, terminal)
	return nil
}

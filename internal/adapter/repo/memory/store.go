package memory

import (
	"sync"

	"citygrid/internal/domain/city"
)

// Store keys cities by slug; name lookups scan. Fine at in-memory scale,
// which only backs tests and local runs without a database.
type Store struct {
	mu     sync.RWMutex
	cities map[string]city.State
}

func NewStore() *Store {
	return &Store{
		cities: make(map[string]city.State),
	}
}

func (s *Store) SeedCity(state city.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cities[state.Slug] = state
}

// Package memory implements ports.FavoriteStore in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/smartchef/skillet/pkg/ports"
)

// Store keeps favorites in an in-memory slice. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	favs []ports.Favorite
}

// NewStore creates an empty in-memory favorites store.
func NewStore() *Store {
	return &Store{}
}

var _ ports.FavoriteStore = (*Store)(nil)

// Add appends a favorite.
func (s *Store) Add(ctx context.Context, fav ports.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favs = append(s.favs, fav)
	return nil
}

// List returns all favorites in insertion order. The returned slice is a
// copy so callers cannot mutate store state.
func (s *Store) List(ctx context.Context) ([]ports.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ports.Favorite, len(s.favs))
	copy(out, s.favs)
	return out, nil
}

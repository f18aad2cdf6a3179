package ports

import (
	"context"
	"time"
)

// Favorite is one saved recipe with its optional personal notes.
type Favorite struct {
	Recipe  string    `json:"recipe"`
	Notes   string    `json:"notes,omitempty"`
	SavedAt time.Time `json:"saved_at"`
}

// FavoriteStore persists saved recipes beyond the lifetime of a single run.
// The in-state favorites list is always maintained; a store is an optional
// durable mirror of it.
type FavoriteStore interface {
	// Add appends a favorite to the book.
	Add(ctx context.Context, fav Favorite) error

	// List returns all saved favorites in insertion order.
	List(ctx context.Context) ([]Favorite, error)
}

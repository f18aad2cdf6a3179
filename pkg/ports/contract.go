package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunFavoriteStoreContract runs a suite of tests to verify that a
// FavoriteStore implementation adheres to the defined interface contract.
func RunFavoriteStoreContract(t *testing.T, store FavoriteStore) {
	ctx := context.Background()

	t.Run("Empty List", func(t *testing.T) {
		favs, err := store.List(ctx)
		require.NoError(t, err, "List on an empty store should not return error")
		assert.Empty(t, favs)
	})

	t.Run("Add and List", func(t *testing.T) {
		first := Favorite{
			Recipe:  "Fried Rice\n\n1. Cook rice.\n2. Fry it.",
			Notes:   "family liked it",
			SavedAt: time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC),
		}
		second := Favorite{
			Recipe:  "Veggie Omelette",
			SavedAt: time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC),
		}

		require.NoError(t, store.Add(ctx, first))
		require.NoError(t, store.Add(ctx, second))

		favs, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, favs, 2)

		assert.Equal(t, first.Recipe, favs[0].Recipe, "insertion order must be preserved")
		assert.Equal(t, first.Notes, favs[0].Notes)
		assert.True(t, first.SavedAt.Equal(favs[0].SavedAt))
		assert.Equal(t, second.Recipe, favs[1].Recipe)
		assert.Empty(t, favs[1].Notes)
	})
}

package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartchef/skillet/pkg/adapters/memory"
	"github.com/smartchef/skillet/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunFavoriteStoreContract(t, memory.NewStore())
}

func TestList_ReturnsACopy(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, ports.Favorite{Recipe: "Fried Rice", SavedAt: time.Now()}))

	favs, err := store.List(ctx)
	require.NoError(t, err)
	favs[0].Recipe = "tampered"

	again, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Fried Rice", again[0].Recipe)
}

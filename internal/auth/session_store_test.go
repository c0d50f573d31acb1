package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CreateAndLookup(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	userID := uuid.New()

	token, err := store.Create(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, ok, err := store.Lookup(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, userID, got)
}

func TestMemoryStore_TokensAreUnique(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	userID := uuid.New()

	first, err := store.Create(ctx, userID)
	require.NoError(t, err)
	second, err := store.Create(ctx, userID)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestMemoryStore_LookupUnknown(t *testing.T) {
	store := NewMemoryStore()

	_, ok, err := store.Lookup(context.Background(), "no-such-token")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = store.Lookup(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_DeleteIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	token, err := store.Create(ctx, uuid.New())
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, token))
	_, ok, err := store.Lookup(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)

	// Second delete, unknown token and empty token are all fine.
	assert.NoError(t, store.Delete(ctx, token))
	assert.NoError(t, store.Delete(ctx, "never-existed"))
	assert.NoError(t, store.Delete(ctx, ""))
}

func TestMemoryStore_ConcurrentUse(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := store.Create(ctx, uuid.New())
			assert.NoError(t, err)
			_, ok, err := store.Lookup(ctx, token)
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.NoError(t, store.Delete(ctx, token))
		}()
	}
	wg.Wait()
}

func TestNewToken_Format(t *testing.T) {
	token, err := NewToken()
	require.NoError(t, err)
	// 32 random bytes, url-safe base64.
	assert.Len(t, token, 44)
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")
}

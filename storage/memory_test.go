package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/subtrack/storage"
	"github.com/dmitrymomot/subtrack/subscription"
)

func TestMemory_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemory()

	subs, err := store.LoadSubscriptions(ctx)
	require.NoError(t, err)
	assert.Empty(t, subs)

	saved := []subscription.Subscription{
		{Index: 1, ClientName: "acme", ProductName: "crm", EndDate: subscription.NewDate(2026, time.October, 1)},
	}
	require.NoError(t, store.SaveSubscriptions(ctx, saved))

	loaded, err := store.LoadSubscriptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)

	// The store must hold its own copy; mutating the loaded slice must not
	// leak back into the snapshot.
	loaded[0].ClientName = "mutated"
	fresh, err := store.LoadSubscriptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, "acme", fresh[0].ClientName)
}

func TestMemory_Products(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemory()

	require.NoError(t, store.SaveProducts(ctx, []string{"crm"}))
	products, err := store.LoadProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"crm"}, products)
}

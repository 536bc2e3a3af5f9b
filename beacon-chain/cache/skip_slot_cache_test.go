package cache_test

import (
	"context"
	"testing"

	"github.com/prysmaticlabs/gasper/beacon-chain/cache"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
	"github.com/prysmaticlabs/gasper/testing/util"
)

func TestSkipSlotCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := cache.NewSkipSlotCache()
	key := [32]byte{'a'}

	st, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, true, st == nil, "Empty cache returned an object")

	require.NoError(t, c.MarkInProgress(key))
	require.ErrorIs(t, c.MarkInProgress(key), cache.ErrAlreadyInProgress)

	st = util.DeterministicGenesisState(t, 4)
	require.NoError(t, st.SetSlot(10))
	require.NoError(t, c.Put(ctx, key, st))
	c.MarkNotInProgress(key)

	res, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.DeepEqual(t, st.ToProto(), res.ToProto(), "Expected equal states to return from cache")

	// Mutating the returned state must not reach the cached copy.
	require.NoError(t, res.SetSlot(11))
	again, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, st.Slot(), again.Slot())
}

func TestSkipSlotCache_Disabled(t *testing.T) {
	ctx := context.Background()
	c := cache.NewSkipSlotCache()
	c.Disable()
	key := [32]byte{'b'}

	require.NoError(t, c.Put(ctx, key, util.DeterministicGenesisState(t, 4)))
	res, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, true, res == nil)

	c.Enable()
	require.NoError(t, c.Put(ctx, key, util.DeterministicGenesisState(t, 4)))
	res, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.NotNil(t, res)

	c.Clear()
	res, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, true, res == nil)
}

func TestSkipSlotCache_GetCancelledWhileInProgress(t *testing.T) {
	c := cache.NewSkipSlotCache()
	key := [32]byte{'c'}
	require.NoError(t, c.MarkInProgress(key))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Get(ctx, key)
	require.ErrorIs(t, err, context.Canceled)
}

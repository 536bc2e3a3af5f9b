package gasper_test

import (
	"context"
	"testing"

	"github.com/prysmaticlabs/gasper/beacon-chain/forkchoice/gasper"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
)

func TestCheckpointState_String(t *testing.T) {
	assert.Equal(t, "unjustified", gasper.Unjustified.String())
	assert.Equal(t, "two-finalized", gasper.TwoFinalized.String())
	assert.Equal(t, "unknown(9)", gasper.CheckpointState(9).String())
}

func TestStatus(t *testing.T) {
	b, cps := linearChain(t)
	ctx := context.Background()
	snap := b.Snapshot()
	st, err := snap.Status(ctx, cps[0])
	require.NoError(t, err)
	assert.Equal(t, gasper.Justified, st)

	b.Supermajority(cps[0], cps[1])
	b.Supermajority(cps[0], cps[2])
	b.Supermajority(cps[1], cps[3])
	snap = b.Snapshot()

	want := []gasper.CheckpointState{gasper.OneFinalized, gasper.TwoFinalized, gasper.Justified, gasper.Justified, gasper.Unjustified}
	for i, cp := range cps {
		st, err := snap.Status(ctx, cp)
		require.NoError(t, err)
		assert.Equal(t, want[i], st, "epoch %d", i)
	}

	statuses, err := snap.ChainStatus(ctx, cps[4].Root, 4)
	require.NoError(t, err)
	require.Equal(t, 5, len(statuses))
	for i, s := range statuses {
		assert.DeepEqual(t, cps[i], s.Checkpoint)
		assert.Equal(t, want[i], s.State, "epoch %d", i)
	}

	// Finality needs the later checkpoints to be in view.
	statuses, err = snap.ChainStatus(ctx, cps[4].Root, 1)
	require.NoError(t, err)
	require.Equal(t, 2, len(statuses))
	assert.Equal(t, gasper.OneFinalized, statuses[0].State)
	assert.Equal(t, gasper.Justified, statuses[1].State)

	justifiedCps, err := snap.JustifiedCheckpoints(ctx, cps[4].Root, 4)
	require.NoError(t, err)
	assert.DeepEqual(t, cps[:4], justifiedCps)
}

func TestChainStatus_Errors(t *testing.T) {
	b, cps := linearChain(t)
	snap := b.Snapshot()

	_, err := snap.ChainStatus(context.Background(), [32]byte{'n'}, 2)
	requireStructural(t, err, [32]byte{'n'}, gasper.ErrUnknownRoot)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = snap.ChainStatus(ctx, cps[4].Root, 4)
	require.ErrorIs(t, err, context.Canceled)
}

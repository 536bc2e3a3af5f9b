package gasper_test

import (
	"context"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/prysmaticlabs/gasper/beacon-chain/forkchoice/gasper"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
	"github.com/prysmaticlabs/gasper/testing/util"
)

func TestComputeEBBs(t *testing.T) {
	params.SetupMinimalConfig(t)
	tests := []struct {
		name  string
		slots []types.Slot
		epoch types.Epoch
		want  []int
	}{
		{name: "empty chain", slots: nil, epoch: 3, want: nil},
		{name: "genesis only", slots: []types.Slot{0}, epoch: 2, want: []int{0, 0, 0}},
		{name: "block on boundary", slots: []types.Slot{16, 8, 0}, epoch: 2, want: []int{0, 1, 2}},
		{name: "skipped epochs", slots: []types.Slot{20, 3, 0}, epoch: 3, want: []int{0, 1, 1, 2}},
		{name: "head beyond epoch", slots: []types.Slot{40, 30, 9, 0}, epoch: 2, want: []int{2, 3, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := gasper.ComputeEBBs(tt.slots, tt.epoch)
			require.NoError(t, err)
			assert.DeepEqual(t, tt.want, got)
		})
	}
}

func TestComputeEBBs_EpochHorizon(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	cfg := params.MinimalSpecConfig()
	cfg.MaxEpochHorizon = 4
	params.OverrideBeaconConfig(cfg)

	got, err := gasper.ComputeEBBs([]types.Slot{9, 0}, 4)
	require.NoError(t, err)
	assert.DeepEqual(t, []int{0, 0, 0, 1, 1}, got)

	for _, epoch := range []types.Epoch{5, 1 << 32, ^types.Epoch(0)} {
		_, err := gasper.ComputeEBBs([]types.Slot{9, 0}, epoch)
		require.ErrorIs(t, err, gasper.ErrEpochOutOfRange)
		_, err = gasper.ComputeEBBs(nil, epoch)
		require.ErrorIs(t, err, gasper.ErrEpochOutOfRange)
	}
}

// randomChain returns strictly decreasing slots ending at genesis.
func randomChain(f *fuzz.Fuzzer) []types.Slot {
	var gaps []uint8
	f.Fuzz(&gaps)
	slots := []types.Slot{0}
	for _, g := range gaps {
		slots = append(slots, slots[len(slots)-1]+types.Slot(g%12)+1)
	}
	for i, j := 0, len(slots)-1; i < j; i, j = i+1, j-1 {
		slots[i], slots[j] = slots[j], slots[i]
	}
	return slots
}

func TestComputeEBBs_Properties(t *testing.T) {
	params.SetupMinimalConfig(t)
	spe := params.BeaconConfig().SlotsPerEpoch
	f := fuzz.NewWithSeed(0).NilChance(0).NumElements(0, 40)
	for i := 0; i < 200; i++ {
		slots := randomChain(f)
		epoch := types.Epoch(uint64(slots[0])/uint64(spe) + uint64(i%3))
		ebbs, err := gasper.ComputeEBBs(slots, epoch)
		require.NoError(t, err)
		require.Equal(t, int(epoch)+1, len(ebbs))
		for j, idx := range ebbs {
			if j > 0 {
				require.Equal(t, true, idx >= ebbs[j-1], "boundary indices must not decrease: %v", ebbs)
			}
			start := types.Slot(uint64(epoch)-uint64(j)) * spe
			require.Equal(t, true, slots[idx] <= start, "slot %d after epoch start %d", slots[idx], start)
			if idx > 0 {
				require.Equal(t, true, slots[idx-1] > start, "index %d is not the first block at or before %d", idx, start)
			}
		}
	}
}

func TestSnapshot_ChainRoots(t *testing.T) {
	params.SetupMinimalConfig(t)
	b := util.NewStoreBuilder(t)
	chain := b.Chain(b.Genesis, 3, 9, 10)
	fork := b.Block(12, chain[1])
	snap := b.Snapshot()

	roots, err := snap.ChainRoots(fork)
	require.NoError(t, err)
	assert.DeepEqual(t, [][32]byte{fork, chain[1], chain[0], b.Genesis}, roots)

	roots, err = snap.ChainRoots(b.Genesis)
	require.NoError(t, err)
	assert.DeepEqual(t, [][32]byte{b.Genesis}, roots)

	_, err = snap.ChainRoots([32]byte{'?'})
	requireStructural(t, err, [32]byte{'?'}, gasper.ErrUnknownRoot)
}

func TestSnapshot_ChainRoots_Properties(t *testing.T) {
	params.SetupMinimalConfig(t)
	b := util.NewStoreBuilder(t)
	f := fuzz.NewWithSeed(7).NilChance(0)
	roots := [][32]byte{b.Genesis}
	slots := map[[32]byte]types.Slot{b.Genesis: 0}
	for i := 0; i < 300; i++ {
		var pick uint16
		var gap uint8
		f.Fuzz(&pick)
		f.Fuzz(&gap)
		parent := roots[int(pick)%len(roots)]
		slot := slots[parent] + types.Slot(gap%20) + 1
		root := b.Block(slot, parent)
		roots = append(roots, root)
		slots[root] = slot
	}

	snap := b.Snapshot()
	for _, root := range roots {
		chain, err := snap.ChainRoots(root)
		require.NoError(t, err)
		require.Equal(t, root, chain[0])
		require.Equal(t, b.Genesis, chain[len(chain)-1])
		for i := 0; i+1 < len(chain); i++ {
			header, ok := snap.Block(chain[i])
			require.Equal(t, true, ok)
			require.Equal(t, chain[i+1], header.ParentRoot)
			require.Equal(t, true, slots[chain[i]] > slots[chain[i+1]])
		}
	}
}

func TestSnapshot_Checkpoint(t *testing.T) {
	params.SetupMinimalConfig(t)
	b := util.NewStoreBuilder(t)
	chain := b.Chain(b.Genesis, 3, 20)
	snap := b.Snapshot()

	tests := []struct {
		epoch types.Epoch
		want  [32]byte
	}{
		{epoch: 0, want: b.Genesis},
		{epoch: 1, want: chain[0]},
		{epoch: 2, want: chain[0]},
		{epoch: 3, want: chain[1]},
		{epoch: 9, want: chain[1]},
	}
	for _, tt := range tests {
		cp, err := snap.Checkpoint(chain[1], tt.epoch)
		require.NoError(t, err)
		assert.Equal(t, tt.epoch, cp.Epoch)
		assert.Equal(t, tt.want, cp.Root, "epoch %d", tt.epoch)
	}

	ebbs, err := snap.EBBIndices(chain[1], 3)
	require.NoError(t, err)
	assert.DeepEqual(t, []int{0, 1, 1, 2}, ebbs)

	// Cached results are handed out as copies.
	ebbs[0] = 5
	again, err := snap.EBBIndices(chain[1], 3)
	require.NoError(t, err)
	assert.Equal(t, 0, again[0])
}

func TestSnapshot_QueriesPastEpochHorizon(t *testing.T) {
	params.SetupMinimalConfig(t)
	b := util.NewStoreBuilder(t)
	chain := b.Chain(b.Genesis, 3, 20)
	snap := b.Snapshot()
	huge := ^types.Epoch(0)

	_, err := snap.Checkpoint(chain[1], huge)
	require.ErrorIs(t, err, gasper.ErrEpochOutOfRange)
	_, err = snap.EBBIndices(chain[1], huge)
	require.ErrorIs(t, err, gasper.ErrEpochOutOfRange)
	_, err = snap.LatestJustified(chain[1], huge)
	require.ErrorIs(t, err, gasper.ErrEpochOutOfRange)
	_, err = snap.ChainStatus(context.Background(), chain[1], huge)
	require.ErrorIs(t, err, gasper.ErrEpochOutOfRange)

	horizon := params.BeaconConfig().MaxEpochHorizon
	_, err = snap.Checkpoint(chain[1], horizon+1)
	require.ErrorIs(t, err, gasper.ErrEpochOutOfRange)
	cp, err := snap.Checkpoint(chain[1], horizon)
	require.NoError(t, err)
	assert.Equal(t, chain[1], cp.Root)

	far := util.Checkpoint(huge, chain[1])
	vote := util.Vote(util.Checkpoint(0, b.Genesis), far, chain[1], 20, util.VoterRange(0, util.SupermajoritySize()))
	require.NoError(t, b.Store.InsertAttestation(context.Background(), vote))
	_, err = b.Snapshot().IsJustified(far)
	require.ErrorIs(t, err, gasper.ErrEpochOutOfRange)
}

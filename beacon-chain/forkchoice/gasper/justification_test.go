package gasper_test

import (
	"context"
	"testing"

	"github.com/prysmaticlabs/gasper/beacon-chain/forkchoice/gasper"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
	"github.com/prysmaticlabs/gasper/testing/util"
	"github.com/prysmaticlabs/go-bitfield"
)

// linearChain builds genesis plus one block on each of the first four epoch
// boundaries and returns the builder with checkpoints for epochs 0 to 4.
func linearChain(t *testing.T) (*util.StoreBuilder, []*ethpb.Checkpoint) {
	params.SetupMinimalConfig(t)
	b := util.NewStoreBuilder(t)
	spe := params.BeaconConfig().SlotsPerEpoch
	roots := b.Chain(b.Genesis, spe, 2*spe, 3*spe, 4*spe)
	cps := []*ethpb.Checkpoint{util.Checkpoint(0, b.Genesis)}
	for i, r := range roots {
		cps = append(cps, util.Checkpoint(types.Epoch(i+1), r))
	}
	return b, cps
}

func justified(t *testing.T, snap *gasper.Snapshot, cp *ethpb.Checkpoint) bool {
	ok, err := snap.IsJustified(cp)
	require.NoError(t, err)
	return ok
}

func TestIsJustified_Genesis(t *testing.T) {
	b, cps := linearChain(t)
	snap := b.Snapshot()
	assert.Equal(t, true, justified(t, snap, cps[0]))
	for _, cp := range cps[1:] {
		assert.Equal(t, false, justified(t, snap, cp))
	}

	// A slot 0 checkpoint of any other root is not a boundary checkpoint.
	assert.Equal(t, false, justified(t, snap, util.Checkpoint(0, cps[1].Root)))
}

func TestIsJustified_SupermajorityLink(t *testing.T) {
	b, cps := linearChain(t)
	b.Supermajority(cps[0], cps[1])
	snap := b.Snapshot()
	assert.Equal(t, true, justified(t, snap, cps[1]))
	assert.Equal(t, false, justified(t, snap, cps[2]))
	assert.Equal(t, true, snap.IsSupermajorityLink(cps[0], cps[1]))
}

func TestIsJustified_BelowSupermajority(t *testing.T) {
	b, cps := linearChain(t)
	b.Link(cps[0], cps[1], util.VoterRange(0, gasper.SupermajoritySize()-1))
	assert.Equal(t, false, justified(t, b.Snapshot(), cps[1]))

	// Repeating the same voters adds nothing.
	b.Link(cps[0], cps[1], util.VoterRange(0, gasper.SupermajoritySize()-1))
	assert.Equal(t, false, justified(t, b.Snapshot(), cps[1]))

	b.Link(cps[0], cps[1], []uint64{gasper.SupermajoritySize() - 1})
	assert.Equal(t, true, justified(t, b.Snapshot(), cps[1]))
}

func TestIsJustified_VotesAreUnioned(t *testing.T) {
	b, cps := linearChain(t)
	size := gasper.SupermajoritySize()
	b.Link(cps[0], cps[1], util.VoterRange(0, size/2))
	b.Link(cps[0], cps[1], util.VoterRange(size/2-10, size))
	snap := b.Snapshot()
	assert.Equal(t, size, snap.LinkVoters(cps[0], cps[1]).Count())
	assert.Equal(t, true, justified(t, snap, cps[1]))
}

func TestIsJustified_IgnoresPositionsBeyondCommittee(t *testing.T) {
	b, cps := linearChain(t)
	max := params.BeaconConfig().MaxValidatorsPerCommittee
	bits := bitfield.NewBitlist(2 * max)
	for i := max; i < 2*max; i++ {
		bits.SetBitAt(i, true)
	}
	att := util.Vote(cps[0], cps[1], cps[1].Root, 8, nil)
	att.AggregationBits = bits
	require.NoError(t, b.Store.InsertAttestation(context.Background(), att))

	snap := b.Snapshot()
	assert.Equal(t, uint64(0), snap.LinkVoters(cps[0], cps[1]).Count())
	assert.Equal(t, false, justified(t, snap, cps[1]))
}

func TestIsJustified_SourceMustBeJustified(t *testing.T) {
	b, cps := linearChain(t)
	b.Supermajority(cps[1], cps[2])
	snap := b.Snapshot()
	assert.Equal(t, false, justified(t, snap, cps[2]))

	b.Supermajority(cps[0], cps[1])
	snap = b.Snapshot()
	assert.Equal(t, true, justified(t, snap, cps[1]))
	assert.Equal(t, true, justified(t, snap, cps[2]))
}

func TestIsJustified_NotOnChain(t *testing.T) {
	b, cps := linearChain(t)
	// The epoch 1 boundary block of cps[2].Root's chain is cps[1].Root.
	offChain := util.Checkpoint(1, cps[2].Root)
	b.Supermajority(cps[0], offChain)
	assert.Equal(t, false, justified(t, b.Snapshot(), offChain))
}

func TestIsJustified_Fork(t *testing.T) {
	b, cps := linearChain(t)
	spe := params.BeaconConfig().SlotsPerEpoch
	forkRoot := b.Block(2*spe+1, cps[1].Root)
	snap := b.Snapshot()
	forkCp, err := snap.Checkpoint(forkRoot, 2)
	require.NoError(t, err)
	assert.Equal(t, cps[1].Root, forkCp.Root, "fork skipped the epoch 2 boundary")

	b.Supermajority(cps[0], cps[1])
	b.Supermajority(cps[1], forkCp)
	snap = b.Snapshot()
	assert.Equal(t, true, justified(t, snap, forkCp))
	assert.Equal(t, false, justified(t, snap, cps[2]))
}

func TestIsJustified_UnknownRoot(t *testing.T) {
	b, _ := linearChain(t)
	unknown := util.Checkpoint(1, [32]byte{'u'})
	_, err := b.Snapshot().IsJustified(unknown)
	requireStructural(t, err, unknown.Root, gasper.ErrUnknownRoot)

	b.Supermajority(util.Checkpoint(0, b.Genesis), unknown)
	_, err = b.Snapshot().IsJustified(unknown)
	requireStructural(t, err, unknown.Root, gasper.ErrUnknownRoot)
}

func TestJustifyingLink(t *testing.T) {
	b, cps := linearChain(t)
	b.Supermajority(cps[0], cps[1])
	b.Supermajority(cps[0], cps[2])
	b.Supermajority(cps[1], cps[2])
	snap := b.Snapshot()

	link, err := snap.JustifyingLink(cps[0])
	require.NoError(t, err)
	assert.Equal(t, true, link == nil, "genesis has no justifying link")

	link, err = snap.JustifyingLink(cps[1])
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.DeepEqual(t, cps[0], link.Source)
	assert.DeepEqual(t, cps[1], link.Target)
	assert.Equal(t, true, gasper.IsSupermajority(link.Voters))

	// The most recent justified source wins.
	link, err = snap.JustifyingLink(cps[2])
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.DeepEqual(t, cps[1], link.Source)

	link, err = snap.JustifyingLink(cps[3])
	require.NoError(t, err)
	assert.Equal(t, true, link == nil, "unjustified checkpoint has no justifying link")
}

func TestFinalization(t *testing.T) {
	b, cps := linearChain(t)
	b.Supermajority(cps[0], cps[1])
	b.Supermajority(cps[0], cps[2])
	b.Supermajority(cps[1], cps[3])
	snap := b.Snapshot()

	one, err := snap.IsOneFinalized(cps[0])
	require.NoError(t, err)
	assert.Equal(t, true, one)

	one, err = snap.IsOneFinalized(cps[1])
	require.NoError(t, err)
	assert.Equal(t, false, one)
	two, err := snap.IsTwoFinalized(cps[1])
	require.NoError(t, err)
	assert.Equal(t, true, two)

	link, err := snap.FinalizingLink(cps[1], 2)
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.DeepEqual(t, cps[3], link.Target)

	two, err = snap.IsTwoFinalized(cps[2])
	require.NoError(t, err)
	assert.Equal(t, false, two)

	link, err = snap.FinalizingLink(cps[0], 3)
	require.NoError(t, err)
	assert.Equal(t, true, link == nil, "only 1 and 2 finalization exist")
}

func TestFinalization_RequiresJustifiedMiddle(t *testing.T) {
	b, cps := linearChain(t)
	b.Supermajority(cps[0], cps[1])
	b.Supermajority(cps[1], cps[3])
	snap := b.Snapshot()

	two, err := snap.IsTwoFinalized(cps[1])
	require.NoError(t, err)
	assert.Equal(t, false, two)
	assert.Equal(t, true, justified(t, snap, cps[3]))
}

func TestFinalization_TargetOffChain(t *testing.T) {
	b, cps := linearChain(t)
	spe := params.BeaconConfig().SlotsPerEpoch
	// A block that descends from genesis but not from cps[1].Root.
	other := b.Block(2*spe, b.Genesis)
	b.Supermajority(cps[0], cps[1])
	b.Supermajority(cps[1], util.Checkpoint(2, other))
	snap := b.Snapshot()

	one, err := snap.IsOneFinalized(cps[1])
	require.NoError(t, err)
	assert.Equal(t, false, one)
}

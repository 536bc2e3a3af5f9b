package util

import (
	"context"
	"testing"

	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/gasper/beacon-chain/forkchoice/gasper"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/require"
)

// StoreBuilder grows a gasper store of bare blocks and link votes.
type StoreBuilder struct {
	t       testing.TB
	Store   *gasper.Store
	Genesis [32]byte
	count   uint64
}

// NewStoreBuilder returns a builder whose store holds only a genesis block.
func NewStoreBuilder(t testing.TB) *StoreBuilder {
	s, err := gasper.New()
	require.NoError(t, err)
	b := &StoreBuilder{t: t, Store: s}
	b.Genesis = b.Block(0, [32]byte{})
	return b
}

// Block inserts a block at slot on top of parent and returns its root.
// Every block gets a distinct root.
func (b *StoreBuilder) Block(slot types.Slot, parent [32]byte) [32]byte {
	b.count++
	blk := &ethpb.BeaconBlock{
		Slot:       slot,
		ParentRoot: parent,
		Body: &ethpb.BeaconBlockBody{
			Eth1Data: &ethpb.Eth1Data{},
			Graffiti: [32]byte{byte(b.count), byte(b.count >> 8), byte(b.count >> 16)},
		},
	}
	root, err := blk.HashTreeRoot()
	require.NoError(b.t, err)
	require.NoError(b.t, b.Store.InsertBlock(context.Background(), root, blk, nil))
	return root
}

// Chain inserts one block per slot on top of parent, each on the previous
// one, and returns their roots.
func (b *StoreBuilder) Chain(parent [32]byte, slots ...types.Slot) [][32]byte {
	roots := make([][32]byte, len(slots))
	for i, slot := range slots {
		parent = b.Block(slot, parent)
		roots[i] = parent
	}
	return roots
}

// Link records votes for source -> target from the given committee
// positions, with target's root as head block at the target epoch start.
func (b *StoreBuilder) Link(source, target *ethpb.Checkpoint, voters []uint64) {
	slot, err := helpers.StartSlot(target.Epoch)
	require.NoError(b.t, err)
	require.NoError(b.t, b.Store.InsertAttestation(context.Background(), Vote(source, target, target.Root, slot, voters)))
}

// Supermajority records a supermajority of votes for source -> target.
func (b *StoreBuilder) Supermajority(source, target *ethpb.Checkpoint) {
	b.Link(source, target, VoterRange(0, SupermajoritySize()))
}

// Snapshot is shorthand for the store's current snapshot.
func (b *StoreBuilder) Snapshot() *gasper.Snapshot {
	return b.Store.Snapshot()
}

package util

import (
	"testing"

	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/require"
)

// NewBeaconBlock creates a beacon block with an empty body.
func NewBeaconBlock() *ethpb.SignedBeaconBlock {
	return &ethpb.SignedBeaconBlock{
		Block: &ethpb.BeaconBlock{
			Body: &ethpb.BeaconBlockBody{Eth1Data: &ethpb.Eth1Data{}},
		},
	}
}

// BlockForState returns a block proposed at the state's slot on top of its
// latest block header. st must already be advanced to the block's slot. The
// state root is left empty.
func BlockForState(t testing.TB, st state.ReadOnlyBeaconState, body *ethpb.BeaconBlockBody) *ethpb.SignedBeaconBlock {
	if body == nil {
		body = &ethpb.BeaconBlockBody{}
	}
	if body.Eth1Data == nil {
		body.Eth1Data = st.Eth1Data()
	}
	parentRoot, err := st.LatestBlockHeader().HashTreeRoot()
	require.NoError(t, err)
	proposer, err := helpers.BeaconProposerIndex(st)
	require.NoError(t, err)
	return &ethpb.SignedBeaconBlock{
		Block: &ethpb.BeaconBlock{
			Slot:          st.Slot(),
			ProposerIndex: proposer,
			ParentRoot:    parentRoot,
			Body:          body,
		},
	}
}

// ChainBlock returns a bare block at slot on top of parent, tagged so that
// siblings at the same slot get distinct roots, together with its root.
func ChainBlock(t testing.TB, slot types.Slot, parent [32]byte, tag byte) (*ethpb.BeaconBlock, [32]byte) {
	b := &ethpb.BeaconBlock{
		Slot:       slot,
		ParentRoot: parent,
		Body: &ethpb.BeaconBlockBody{
			Eth1Data: &ethpb.Eth1Data{},
			Graffiti: [32]byte{tag},
		},
	}
	root, err := b.HashTreeRoot()
	require.NoError(t, err)
	return b, root
}

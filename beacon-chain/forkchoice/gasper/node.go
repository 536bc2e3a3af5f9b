package gasper

import (
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
)

// NonExistentNode is the parent handle of the genesis node.
const NonExistentNode = ^uint64(0)

// Node is a block in the store arena. Nodes are never modified once
// inserted.
type Node struct {
	root   [32]byte
	slot   types.Slot
	parent uint64
	header *ethpb.BeaconBlockHeader
	state  state.BeaconState
}

// Root of the node.
func (n *Node) Root() [32]byte {
	return n.root
}

// Slot of the node.
func (n *Node) Slot() types.Slot {
	return n.slot
}

// Parent handle of the node, NonExistentNode for genesis.
func (n *Node) Parent() uint64 {
	return n.parent
}

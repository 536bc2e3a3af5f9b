package gasper

import (
	"fmt"

	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
)

// Snapshot is an immutable view of a Store. Arena entries below its
// lengths are never rewritten, so a Snapshot stays valid while the store
// grows and is safe for concurrent use.
type Snapshot struct {
	store   *Store
	nodes   []*Node
	votes   []*ethpb.PendingAttestation
	genesis uint64
}

func (s *Snapshot) handle(root [32]byte) (uint64, bool) {
	s.store.lock.RLock()
	h, ok := s.store.nodesIndices[root]
	s.store.lock.RUnlock()
	if !ok || h >= uint64(len(s.nodes)) {
		return 0, false
	}
	return h, true
}

// Node returns the arena entry stored under root.
func (s *Snapshot) Node(root [32]byte) (*Node, error) {
	h, ok := s.handle(root)
	if !ok {
		return nil, structural(root, ErrUnknownRoot)
	}
	return s.nodes[h], nil
}

// linkVotes returns the indices of the votes for source -> target.
func (s *Snapshot) linkVotes(source, target ethpb.Checkpoint) []int {
	s.store.lock.RLock()
	idx := s.store.linkVotes[linkKey{source: source, target: target}]
	s.store.lock.RUnlock()
	return visible(idx, len(s.votes))
}

// votesFrom returns the indices of the votes whose source is cp.
func (s *Snapshot) votesFrom(cp ethpb.Checkpoint) []int {
	s.store.lock.RLock()
	idx := s.store.sourceVotes[cp]
	s.store.lock.RUnlock()
	return visible(idx, len(s.votes))
}

// targetVotes returns the indices of the votes whose target is cp.
func (s *Snapshot) targetVotes(cp ethpb.Checkpoint) []int {
	s.store.lock.RLock()
	idx := s.store.targetVotes[cp]
	s.store.lock.RUnlock()
	return visible(idx, len(s.votes))
}

// visible trims an ascending index list to the votes the snapshot holds.
func visible(idx []int, n int) []int {
	for i := len(idx); i > 0; i-- {
		if idx[i-1] < n {
			return idx[:i]
		}
	}
	return nil
}

// HasBlock reports whether root is part of the snapshot.
func (s *Snapshot) HasBlock(root [32]byte) bool {
	_, ok := s.handle(root)
	return ok
}

// BlockCount returns the number of blocks in the snapshot.
func (s *Snapshot) BlockCount() int {
	return len(s.nodes)
}

// VoteCount returns the number of attestations in the snapshot.
func (s *Snapshot) VoteCount() int {
	return len(s.votes)
}

// Block returns the header of the block stored under root.
func (s *Snapshot) Block(root [32]byte) (*ethpb.BeaconBlockHeader, bool) {
	h, ok := s.handle(root)
	if !ok {
		return nil, false
	}
	return ethpb.CopyBeaconBlockHeader(s.nodes[h].header), true
}

// State returns a copy of the post-state stored with root, if any.
func (s *Snapshot) State(root [32]byte) (state.BeaconState, bool) {
	h, ok := s.handle(root)
	if !ok || s.nodes[h].state == nil {
		return nil, false
	}
	return s.nodes[h].state.Copy(), true
}

// Votes returns a copy of the received attestations in arrival order.
func (s *Snapshot) Votes() []*ethpb.PendingAttestation {
	return ethpb.CopyPendingAttestationSlice(s.votes)
}

// GenesisRoot returns the root of the slot 0 block.
func (s *Snapshot) GenesisRoot() ([32]byte, error) {
	if s.genesis == NonExistentNode || s.genesis >= uint64(len(s.nodes)) {
		return [32]byte{}, structural([32]byte{}, ErrUnknownRoot)
	}
	return s.nodes[s.genesis].root, nil
}

func rootString(root [32]byte) string {
	return fmt.Sprintf("%#x", bytesutil.Trunc(root[:]))
}

package blockchain

import (
	"github.com/prysmaticlabs/gasper/beacon-chain/forkchoice/gasper"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
)

// Snapshot returns an immutable view of the store for queries.
func (s *Service) Snapshot() *gasper.Snapshot {
	return s.cfg.store.Snapshot()
}

// GenesisRoot returns the root of the genesis block, or zero before
// InitializeGenesis.
func (s *Service) GenesisRoot() [32]byte {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.genesisRoot
}

// State returns a copy of the post-state of the block at root.
func (s *Service) State(root [32]byte) (state.BeaconState, bool) {
	return s.cfg.store.Snapshot().State(root)
}

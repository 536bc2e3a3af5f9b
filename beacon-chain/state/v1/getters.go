package v1

import (
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/go-bitfield"
)

// GenesisTime of the beacon state as a uint64.
func (b *BeaconState) GenesisTime() uint64 {
	if !b.hasInnerState() {
		return 0
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.GenesisTime
}

// GenesisValidatorsRoot of the beacon state.
func (b *BeaconState) GenesisValidatorsRoot() [32]byte {
	if !b.hasInnerState() {
		return [32]byte{}
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.GenesisValidatorsRoot
}

// Slot of the current beacon chain state.
func (b *BeaconState) Slot() types.Slot {
	if !b.hasInnerState() {
		return 0
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.Slot
}

// Fork version of the beacon chain.
func (b *BeaconState) Fork() *ethpb.Fork {
	if !b.hasInnerState() {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return ethpb.CopyFork(b.state.Fork)
}

// LatestBlockHeader stored within the beacon state.
func (b *BeaconState) LatestBlockHeader() *ethpb.BeaconBlockHeader {
	if !b.hasInnerState() {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return ethpb.CopyBeaconBlockHeader(b.state.LatestBlockHeader)
}

// BlockRoots kept track of in the beacon state.
func (b *BeaconState) BlockRoots() [][32]byte {
	if !b.hasInnerState() {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return copyRoots(b.state.BlockRoots)
}

// BlockRootAtIndex retrieves a specific block root based on an
// input index value.
func (b *BeaconState) BlockRootAtIndex(idx uint64) ([32]byte, error) {
	if !b.hasInnerState() {
		return [32]byte{}, ErrNilInnerState
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return rootAtIndex(b.state.BlockRoots, idx)
}

// StateRoots kept track of in the beacon state.
func (b *BeaconState) StateRoots() [][32]byte {
	if !b.hasInnerState() {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return copyRoots(b.state.StateRoots)
}

// HistoricalRoots based on epochs stored in the beacon state.
func (b *BeaconState) HistoricalRoots() [][32]byte {
	if !b.hasInnerState() {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return copyRoots(b.state.HistoricalRoots)
}

// Eth1Data corresponding to the proof-of-work chain information stored in the beacon state.
func (b *BeaconState) Eth1Data() *ethpb.Eth1Data {
	if !b.hasInnerState() {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return ethpb.CopyEth1Data(b.state.Eth1Data)
}

// Eth1DataVotes corresponds to votes from eth2 on the canonical proof-of-work chain
// data retrieved from eth1.
func (b *BeaconState) Eth1DataVotes() []*ethpb.Eth1Data {
	if !b.hasInnerState() || b.state.Eth1DataVotes == nil {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	res := make([]*ethpb.Eth1Data, len(b.state.Eth1DataVotes))
	for i := range res {
		res[i] = ethpb.CopyEth1Data(b.state.Eth1DataVotes[i])
	}
	return res
}

// Eth1DepositIndex corresponds to the index of the deposit made to the
// validator deposit contract at the time of this state's eth1 data.
func (b *BeaconState) Eth1DepositIndex() uint64 {
	if !b.hasInnerState() {
		return 0
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.Eth1DepositIndex
}

// RandaoMixes of block proposers on the beacon chain.
func (b *BeaconState) RandaoMixes() [][32]byte {
	if !b.hasInnerState() {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return copyRoots(b.state.RandaoMixes)
}

// RandaoMixAtIndex retrieves a specific randao mix based on an
// input index value.
func (b *BeaconState) RandaoMixAtIndex(idx uint64) ([32]byte, error) {
	if !b.hasInnerState() {
		return [32]byte{}, ErrNilInnerState
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return rootAtIndex(b.state.RandaoMixes, idx)
}

// Slashings of validators on the beacon chain.
func (b *BeaconState) Slashings() []uint64 {
	if !b.hasInnerState() || b.state.Slashings == nil {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	res := make([]uint64, len(b.state.Slashings))
	copy(res, b.state.Slashings)
	return res
}

// PreviousEpochAttestations corresponding to blocks on the beacon chain.
func (b *BeaconState) PreviousEpochAttestations() []*ethpb.PendingAttestation {
	if !b.hasInnerState() {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return ethpb.CopyPendingAttestationSlice(b.state.PreviousEpochAttestations)
}

// CurrentEpochAttestations corresponding to blocks on the beacon chain.
func (b *BeaconState) CurrentEpochAttestations() []*ethpb.PendingAttestation {
	if !b.hasInnerState() {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return ethpb.CopyPendingAttestationSlice(b.state.CurrentEpochAttestations)
}

// JustificationBits marking which epochs have been justified in the beacon chain.
func (b *BeaconState) JustificationBits() bitfield.Bitvector4 {
	if !b.hasInnerState() {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return bytesutil.SafeCopyBytes(b.state.JustificationBits)
}

// PreviousJustifiedCheckpoint denoting an epoch and block root.
func (b *BeaconState) PreviousJustifiedCheckpoint() *ethpb.Checkpoint {
	if !b.hasInnerState() {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return ethpb.CopyCheckpoint(b.state.PreviousJustifiedCheckpoint)
}

// CurrentJustifiedCheckpoint denoting an epoch and block root.
func (b *BeaconState) CurrentJustifiedCheckpoint() *ethpb.Checkpoint {
	if !b.hasInnerState() {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return ethpb.CopyCheckpoint(b.state.CurrentJustifiedCheckpoint)
}

// FinalizedCheckpoint denoting an epoch and block root.
func (b *BeaconState) FinalizedCheckpoint() *ethpb.Checkpoint {
	if !b.hasInnerState() {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return ethpb.CopyCheckpoint(b.state.FinalizedCheckpoint)
}

func copyRoots(roots [][32]byte) [][32]byte {
	if roots == nil {
		return nil
	}
	res := make([][32]byte, len(roots))
	copy(res, roots)
	return res
}

func rootAtIndex(roots [][32]byte, idx uint64) ([32]byte, error) {
	if idx >= uint64(len(roots)) {
		return [32]byte{}, errIndexOutOfRange(idx, len(roots))
	}
	return roots[idx], nil
}

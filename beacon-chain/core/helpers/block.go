package helpers

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
)

// BlockRootAtSlot returns the block root stored in the BeaconState for a recent slot.
// It returns an error if the requested block root is not within the slot range.
func BlockRootAtSlot(st state.ReadOnlyBeaconState, slot types.Slot) ([32]byte, error) {
	historical := params.BeaconConfig().SlotsPerHistoricalRoot
	if slot >= st.Slot() || st.Slot() > slot+historical {
		return [32]byte{}, errors.Errorf("slot %d out of bounds for state slot %d", slot, st.Slot())
	}
	return st.BlockRootAtIndex(uint64(slot % historical))
}

// BlockRoot returns the block root stored in the BeaconState for epoch start slot.
func BlockRoot(st state.ReadOnlyBeaconState, epoch types.Epoch) ([32]byte, error) {
	s, err := StartSlot(epoch)
	if err != nil {
		return [32]byte{}, err
	}
	return BlockRootAtSlot(st, s)
}

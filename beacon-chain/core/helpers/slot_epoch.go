// Package helpers contains the epoch, committee and validator arithmetic
// shared by the state transition, the fork choice store and the slasher.
package helpers

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
)

// SlotToEpoch returns the epoch number of the input slot.
func SlotToEpoch(slot types.Slot) types.Epoch {
	return types.Epoch(slot.Div(uint64(params.BeaconConfig().SlotsPerEpoch)))
}

// CurrentEpoch returns the current epoch number calculated from
// the slot number stored in beacon state.
func CurrentEpoch(st state.ReadOnlyBeaconState) types.Epoch {
	return SlotToEpoch(st.Slot())
}

// PrevEpoch returns the previous epoch number calculated from
// the slot number stored in beacon state. It also checks for
// underflow condition.
func PrevEpoch(st state.ReadOnlyBeaconState) types.Epoch {
	currentEpoch := CurrentEpoch(st)
	if currentEpoch == 0 {
		return 0
	}
	return currentEpoch - 1
}

// NextEpoch returns the next epoch number calculated from
// the slot number stored in beacon state.
func NextEpoch(st state.ReadOnlyBeaconState) types.Epoch {
	return SlotToEpoch(st.Slot()) + 1
}

// StartSlot returns the first slot number of the
// current epoch. It errors on overflow.
func StartSlot(epoch types.Epoch) (types.Slot, error) {
	slot, err := params.BeaconConfig().SlotsPerEpoch.SafeMul(uint64(epoch))
	if err != nil {
		return slot, errors.Errorf("start slot calculation overflows: %v", err)
	}
	return slot, nil
}

// IsEpochStart returns true if the given slot number is an epoch starting slot
// number.
func IsEpochStart(slot types.Slot) bool {
	return slot%params.BeaconConfig().SlotsPerEpoch == 0
}

// IsEpochEnd returns true if the given slot number is an epoch ending slot
// number.
func IsEpochEnd(slot types.Slot) bool {
	return IsEpochStart(slot + 1)
}

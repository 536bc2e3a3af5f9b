package helpers

import (
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
)

// RandaoMix returns the randao mix (xor'ed seed)
// of a given slot. It is used to shuffle validators.
func RandaoMix(st state.ReadOnlyBeaconState, epoch types.Epoch) ([32]byte, error) {
	return st.RandaoMixAtIndex(uint64(epoch % params.BeaconConfig().EpochsPerHistoricalVector))
}

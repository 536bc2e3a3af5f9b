package helpers

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/go-bitfield"
)

// BeaconCommittee returns the attesting committee of an epoch: the active
// validator indices in increasing order, capped at MaxValidatorsPerCommittee.
// Committee position v is therefore the v-th active validator.
func BeaconCommittee(st state.ReadOnlyBeaconState, epoch types.Epoch) ([]types.ValidatorIndex, error) {
	active, err := ActiveValidatorIndices(st, epoch)
	if err != nil {
		return nil, errors.Wrap(err, "could not get active indices")
	}
	max := params.BeaconConfig().MaxValidatorsPerCommittee
	if uint64(len(active)) > max {
		active = active[:max]
	}
	return active, nil
}

// AttestingIndices returns the attesting participants indices from the attestation data. The
// committee is provided as an argument rather than recomputed.
// Having the committee as an argument allows for re-use of beacon committees when possible.
func AttestingIndices(bf bitfield.Bitlist, committee []types.ValidatorIndex) ([]types.ValidatorIndex, error) {
	if bf.Len() != uint64(len(committee)) {
		return nil, errors.Errorf("bitfield length %d is not equal to committee length %d", bf.Len(), len(committee))
	}
	indices := make([]types.ValidatorIndex, 0, bf.Count())
	for _, idx := range bf.BitIndices() {
		indices = append(indices, committee[idx])
	}
	sort.Slice(indices, func(i, j int) bool {
		return indices[i] < indices[j]
	})
	return indices, nil
}

package helpers

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/math"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
)

// ErrNoActiveValidators is returned when a query needs at least one active
// validator and the registry has none at the requested epoch.
var ErrNoActiveValidators = errors.New("no active validators")

// IsActiveValidator returns the boolean value on whether the validator
// is active or not.
func IsActiveValidator(validator *ethpb.Validator, epoch types.Epoch) bool {
	return validator.ActivationEpoch <= epoch && epoch < validator.ExitEpoch
}

// IsSlashableValidator returns the boolean value on whether the validator
// is slashable or not.
func IsSlashableValidator(val *ethpb.Validator, epoch types.Epoch) bool {
	return !val.Slashed && val.ActivationEpoch <= epoch && epoch < val.WithdrawableEpoch
}

// IsEligibleForActivationQueue checks if the validator is eligible to
// be placed into the activation queue.
func IsEligibleForActivationQueue(val *ethpb.Validator) bool {
	cfg := params.BeaconConfig()
	return val.ActivationEligibilityEpoch == cfg.FarFutureEpoch &&
		val.EffectiveBalance == cfg.MaxEffectiveBalance
}

// IsEligibleForActivation checks if the validator is eligible for activation:
// placed in the queue at or before the finalized epoch and not yet activated.
func IsEligibleForActivation(st state.ReadOnlyBeaconState, val *ethpb.Validator) bool {
	finalized := st.FinalizedCheckpoint()
	if finalized == nil {
		return false
	}
	return val.ActivationEligibilityEpoch <= finalized.Epoch &&
		val.ActivationEpoch == params.BeaconConfig().FarFutureEpoch
}

// ActiveValidatorIndices returns the indices of the validators active at the
// given epoch, in increasing order.
func ActiveValidatorIndices(st state.ReadOnlyBeaconState, epoch types.Epoch) ([]types.ValidatorIndex, error) {
	var indices []types.ValidatorIndex
	if err := st.ReadFromEveryValidator(func(idx int, val *ethpb.Validator) error {
		if IsActiveValidator(val, epoch) {
			indices = append(indices, types.ValidatorIndex(idx))
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return indices, nil
}

// ActiveValidatorCount returns the number of active validators in the state
// at the given epoch.
func ActiveValidatorCount(st state.ReadOnlyBeaconState, epoch types.Epoch) (uint64, error) {
	count := uint64(0)
	if err := st.ReadFromEveryValidator(func(idx int, val *ethpb.Validator) error {
		if IsActiveValidator(val, epoch) {
			count++
		}
		return nil
	}); err != nil {
		return 0, err
	}
	return count, nil
}

// ActivationExitEpoch takes in epoch number and returns when
// the validator is eligible for activation and exit.
func ActivationExitEpoch(epoch types.Epoch) types.Epoch {
	return epoch + 1 + params.BeaconConfig().MaxSeedLookahead
}

// ValidatorChurnLimit returns the number of validators that are allowed to
// enter and exit validator pool for an epoch.
func ValidatorChurnLimit(activeValidatorCount uint64) uint64 {
	cfg := params.BeaconConfig()
	churnLimit := activeValidatorCount / cfg.ChurnLimitQuotient
	if churnLimit < cfg.MinPerEpochChurnLimit {
		churnLimit = cfg.MinPerEpochChurnLimit
	}
	return churnLimit
}

// BeaconProposerIndex returns the proposer of the state's slot. Proposers
// rotate through the active set in index order.
func BeaconProposerIndex(st state.ReadOnlyBeaconState) (types.ValidatorIndex, error) {
	active, err := ActiveValidatorIndices(st, CurrentEpoch(st))
	if err != nil {
		return 0, errors.Wrap(err, "could not get active indices")
	}
	if len(active) == 0 {
		return 0, ErrNoActiveValidators
	}
	return active[uint64(st.Slot())%uint64(len(active))], nil
}

// TotalBalance returns the total amount at stake in Gwei
// of input validators. The result is never below one increment.
func TotalBalance(st state.ReadOnlyValidators, indices []types.ValidatorIndex) (uint64, error) {
	total := uint64(0)
	for _, idx := range indices {
		val, err := st.ValidatorAtIndex(idx)
		if err != nil {
			return 0, err
		}
		total, err = math.Add64(total, val.EffectiveBalance)
		if err != nil {
			return 0, errors.Wrap(err, "total balance")
		}
	}
	return math.Max(params.BeaconConfig().EffectiveBalanceIncrement, total), nil
}

// TotalActiveBalance returns the total amount at stake in Gwei
// of active validators at the current epoch.
func TotalActiveBalance(st state.ReadOnlyBeaconState) (uint64, error) {
	indices, err := ActiveValidatorIndices(st, CurrentEpoch(st))
	if err != nil {
		return 0, err
	}
	return TotalBalance(st, indices)
}

// Package epoch contains the epoch boundary processing of the beacon
// state: justification and finalization from the pending attestations,
// validator registry churn, slashing penalties and the per-epoch resets.
// Rewards and penalties for attesting are not modelled.
package epoch

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/validators"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/crypto/hash"
	"github.com/prysmaticlabs/gasper/encoding/ssz"
	"github.com/prysmaticlabs/gasper/math"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

var log = logrus.WithField("prefix", "epoch")

// ProcessEpoch runs the epoch boundary transition. It is called on the
// last slot of an epoch, before the slot is advanced.
func ProcessEpoch(ctx context.Context, st state.BeaconState) (state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.ProcessEpoch")
	defer span.End()

	if st == nil {
		return nil, errors.New("nil state")
	}
	st, err := ProcessJustificationAndFinalization(st)
	if err != nil {
		return nil, errors.Wrap(err, "could not process justification")
	}
	st, err = ProcessRegistryUpdates(ctx, st)
	if err != nil {
		return nil, errors.Wrap(err, "could not process registry updates")
	}
	st, err = ProcessSlashings(st)
	if err != nil {
		return nil, errors.Wrap(err, "could not process slashings")
	}
	st, err = ProcessEth1DataReset(st)
	if err != nil {
		return nil, err
	}
	st, err = ProcessEffectiveBalanceUpdates(st)
	if err != nil {
		return nil, err
	}
	st, err = ProcessSlashingsReset(st)
	if err != nil {
		return nil, err
	}
	st, err = ProcessRandaoMixesReset(st)
	if err != nil {
		return nil, err
	}
	st, err = ProcessHistoricalRootsUpdate(st)
	if err != nil {
		return nil, err
	}
	if err := st.RotateAttestations(); err != nil {
		return nil, errors.Wrap(err, "could not rotate epoch attestations")
	}
	return st, nil
}

// ProcessRegistryUpdates rotates validators in and out of the active pool:
// it queues eligible deposits, ejects low balances and activates the queue
// up to the churn limit.
func ProcessRegistryUpdates(ctx context.Context, st state.BeaconState) (state.BeaconState, error) {
	currentEpoch := helpers.CurrentEpoch(st)
	cfg := params.BeaconConfig()

	var eligibleForQueue, toEject, activationQueue []types.ValidatorIndex
	if err := st.ReadFromEveryValidator(func(idx int, val *ethpb.Validator) error {
		i := types.ValidatorIndex(idx)
		if helpers.IsEligibleForActivationQueue(val) {
			eligibleForQueue = append(eligibleForQueue, i)
		}
		if helpers.IsActiveValidator(val, currentEpoch) && val.EffectiveBalance <= cfg.EjectionBalance {
			toEject = append(toEject, i)
		}
		if helpers.IsEligibleForActivation(st, val) {
			activationQueue = append(activationQueue, i)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	for _, idx := range eligibleForQueue {
		val, err := st.ValidatorAtIndex(idx)
		if err != nil {
			return nil, err
		}
		val.ActivationEligibilityEpoch = currentEpoch + 1
		if err := st.UpdateValidatorAtIndex(idx, val); err != nil {
			return nil, err
		}
	}
	var err error
	for _, idx := range toEject {
		st, err = validators.InitiateValidatorExit(ctx, st, idx)
		if err != nil {
			return nil, errors.Wrapf(err, "could not eject validator %d", idx)
		}
	}

	sort.Sort(sortableIndices{indices: activationQueue, state: st})
	activeCount, err := helpers.ActiveValidatorCount(st, currentEpoch)
	if err != nil {
		return nil, err
	}
	limit := helpers.ValidatorChurnLimit(activeCount)
	if uint64(len(activationQueue)) > limit {
		activationQueue = activationQueue[:limit]
	}
	activationEpoch := helpers.ActivationExitEpoch(currentEpoch)
	for _, idx := range activationQueue {
		val, err := st.ValidatorAtIndex(idx)
		if err != nil {
			return nil, err
		}
		val.ActivationEpoch = activationEpoch
		if err := st.UpdateValidatorAtIndex(idx, val); err != nil {
			return nil, err
		}
	}
	if len(activationQueue) > 0 || len(toEject) > 0 {
		log.WithFields(logrus.Fields{
			"activated": len(activationQueue),
			"ejected":   len(toEject),
			"epoch":     currentEpoch,
		}).Debug("Updated validator registry")
	}
	return st, nil
}

// ProcessSlashings applies the proportional slashing penalty to validators
// halfway through their slashing withdrawability delay.
func ProcessSlashings(st state.BeaconState) (state.BeaconState, error) {
	cfg := params.BeaconConfig()
	currentEpoch := helpers.CurrentEpoch(st)
	totalBalance, err := helpers.TotalActiveBalance(st)
	if err != nil {
		return nil, errors.Wrap(err, "could not get total active balance")
	}
	totalSlashing := uint64(0)
	for _, s := range st.Slashings() {
		totalSlashing, err = math.Add64(totalSlashing, s)
		if err != nil {
			return nil, err
		}
	}
	adjusted := math.Min(totalSlashing*cfg.ProportionalSlashingMultiplier, totalBalance)
	withdrawEpoch := currentEpoch + cfg.EpochsPerSlashingsVector/2
	increment := cfg.EffectiveBalanceIncrement

	var penalties []struct {
		idx     types.ValidatorIndex
		penalty uint64
	}
	if err := st.ReadFromEveryValidator(func(idx int, val *ethpb.Validator) error {
		if val.Slashed && val.WithdrawableEpoch == withdrawEpoch {
			numerator := val.EffectiveBalance / increment * adjusted
			penalties = append(penalties, struct {
				idx     types.ValidatorIndex
				penalty uint64
			}{types.ValidatorIndex(idx), numerator / totalBalance * increment})
		}
		return nil
	}); err != nil {
		return nil, err
	}
	for _, p := range penalties {
		if err := helpers.DecreaseBalance(st, p.idx, p.penalty); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// ProcessEth1DataReset clears the eth1 votes at the end of a voting period.
func ProcessEth1DataReset(st state.BeaconState) (state.BeaconState, error) {
	next := helpers.NextEpoch(st)
	if next%params.BeaconConfig().EpochsPerEth1VotingPeriod == 0 {
		if err := st.SetEth1DataVotes([]*ethpb.Eth1Data{}); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// ProcessEffectiveBalanceUpdates moves effective balances towards actual
// balances when they drift past the hysteresis thresholds.
func ProcessEffectiveBalanceUpdates(st state.BeaconState) (state.BeaconState, error) {
	cfg := params.BeaconConfig()
	hysteresisIncrement := cfg.EffectiveBalanceIncrement / cfg.HysteresisQuotient
	downward := hysteresisIncrement * cfg.HysteresisDownwardMultiplier
	upward := hysteresisIncrement * cfg.HysteresisUpwardMultiplier

	balances := st.Balances()
	updates := make(map[types.ValidatorIndex]*ethpb.Validator)
	if err := st.ReadFromEveryValidator(func(idx int, val *ethpb.Validator) error {
		if idx >= len(balances) {
			return errors.Errorf("validator index %d has no balance", idx)
		}
		balance := balances[idx]
		if balance+downward < val.EffectiveBalance || val.EffectiveBalance+upward < balance {
			val.EffectiveBalance = math.Min(balance-balance%cfg.EffectiveBalanceIncrement, cfg.MaxEffectiveBalance)
			updates[types.ValidatorIndex(idx)] = val
		}
		return nil
	}); err != nil {
		return nil, err
	}
	for idx, val := range updates {
		if err := st.UpdateValidatorAtIndex(idx, val); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// ProcessSlashingsReset clears the slashings vector entry of the next epoch.
func ProcessSlashingsReset(st state.BeaconState) (state.BeaconState, error) {
	next := helpers.NextEpoch(st)
	idx := uint64(next % params.BeaconConfig().EpochsPerSlashingsVector)
	if err := st.UpdateSlashingsAtIndex(idx, 0); err != nil {
		return nil, err
	}
	return st, nil
}

// ProcessRandaoMixesReset carries the current randao mix over to the next epoch.
func ProcessRandaoMixesReset(st state.BeaconState) (state.BeaconState, error) {
	cfg := params.BeaconConfig()
	mix, err := helpers.RandaoMix(st, helpers.CurrentEpoch(st))
	if err != nil {
		return nil, err
	}
	next := helpers.NextEpoch(st)
	if err := st.UpdateRandaoMixesAtIndex(uint64(next%cfg.EpochsPerHistoricalVector), mix); err != nil {
		return nil, err
	}
	return st, nil
}

// ProcessHistoricalRootsUpdate appends the root of the block and state root
// batches once every SlotsPerHistoricalRoot slots.
func ProcessHistoricalRootsUpdate(st state.BeaconState) (state.BeaconState, error) {
	cfg := params.BeaconConfig()
	next := helpers.NextEpoch(st)
	epochsPerBatch := uint64(cfg.SlotsPerHistoricalRoot / cfg.SlotsPerEpoch)
	if epochsPerBatch == 0 || uint64(next)%epochsPerBatch != 0 {
		return st, nil
	}
	length := uint64(cfg.SlotsPerHistoricalRoot)
	blockRoots, err := ssz.RootsVectorRoot(st.BlockRoots(), length)
	if err != nil {
		return nil, errors.Wrap(err, "could not hash block roots")
	}
	stateRoots, err := ssz.RootsVectorRoot(st.StateRoots(), length)
	if err != nil {
		return nil, errors.Wrap(err, "could not hash state roots")
	}
	batchRoot := hash.Hash(append(blockRoots[:], stateRoots[:]...))
	if err := st.AppendHistoricalRoots(batchRoot); err != nil {
		return nil, err
	}
	return st, nil
}

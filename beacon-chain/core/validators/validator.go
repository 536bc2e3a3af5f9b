// Package validators applies exits and slashings to the validator registry.
package validators

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/math"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "validators")

// ErrValidatorAlreadyExited is returned when exiting a validator whose exit
// epoch is already set.
var ErrValidatorAlreadyExited = errors.New("validator has already initiated an exit")

// InitiateValidatorExit takes in validator index and updates
// validator with correct voluntary exit parameters. A validator that already
// has an exit epoch is left untouched.
func InitiateValidatorExit(ctx context.Context, s state.BeaconState, idx types.ValidatorIndex) (state.BeaconState, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	cfg := params.BeaconConfig()
	validator, err := s.ValidatorAtIndex(idx)
	if err != nil {
		return nil, err
	}
	if validator.ExitEpoch != cfg.FarFutureEpoch {
		return s, nil
	}

	exitQueueEpoch := helpers.ActivationExitEpoch(helpers.CurrentEpoch(s))
	var exitEpochs []types.Epoch
	if err := s.ReadFromEveryValidator(func(idx int, val *ethpb.Validator) error {
		if val.ExitEpoch != cfg.FarFutureEpoch {
			exitEpochs = append(exitEpochs, val.ExitEpoch)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	for _, e := range exitEpochs {
		if e > exitQueueEpoch {
			exitQueueEpoch = e
		}
	}
	var exitQueueChurn uint64
	for _, e := range exitEpochs {
		if e == exitQueueEpoch {
			exitQueueChurn++
		}
	}
	activeValidatorCount, err := helpers.ActiveValidatorCount(s, helpers.CurrentEpoch(s))
	if err != nil {
		return nil, errors.Wrap(err, "could not get active validator count")
	}
	if exitQueueChurn >= helpers.ValidatorChurnLimit(activeValidatorCount) {
		exitQueueEpoch++
	}

	validator.ExitEpoch = exitQueueEpoch
	validator.WithdrawableEpoch, err = exitQueueEpoch.SafeAdd(uint64(cfg.MinValidatorWithdrawabilityDelay))
	if err != nil {
		return nil, err
	}
	if err := s.UpdateValidatorAtIndex(idx, validator); err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"validatorIndex": idx,
		"exitEpoch":      exitQueueEpoch,
	}).Debug("Initiated validator exit")
	return s, nil
}

// SlashValidator slashes the malicious validator's balance and awards
// the whistleblower's balance, which is the proposer of the including block.
func SlashValidator(
	ctx context.Context,
	s state.BeaconState,
	slashedIdx types.ValidatorIndex,
) (state.BeaconState, error) {
	s, err := InitiateValidatorExit(ctx, s, slashedIdx)
	if err != nil {
		return nil, errors.Wrapf(err, "could not initiate validator %d exit", slashedIdx)
	}
	cfg := params.BeaconConfig()
	currentEpoch := helpers.CurrentEpoch(s)
	validator, err := s.ValidatorAtIndex(slashedIdx)
	if err != nil {
		return nil, err
	}
	validator.Slashed = true
	maxWithdrawableEpoch := currentEpoch + cfg.EpochsPerSlashingsVector
	if maxWithdrawableEpoch > validator.WithdrawableEpoch {
		validator.WithdrawableEpoch = maxWithdrawableEpoch
	}
	if err := s.UpdateValidatorAtIndex(slashedIdx, validator); err != nil {
		return nil, err
	}

	// The slashed validator's effective balance is added to the slashings vector.
	slashingIdx := uint64(currentEpoch % cfg.EpochsPerSlashingsVector)
	slashings := s.Slashings()
	if slashingIdx >= uint64(len(slashings)) {
		return nil, errors.Errorf("slashings index %d out of range", slashingIdx)
	}
	total, err := math.Add64(slashings[slashingIdx], validator.EffectiveBalance)
	if err != nil {
		return nil, errors.Wrap(err, "slashings vector")
	}
	if err := s.UpdateSlashingsAtIndex(slashingIdx, total); err != nil {
		return nil, err
	}
	if err := helpers.DecreaseBalance(s, slashedIdx, validator.EffectiveBalance/cfg.MinSlashingPenaltyQuotient); err != nil {
		return nil, err
	}

	proposerIdx, err := helpers.BeaconProposerIndex(s)
	if err != nil {
		return nil, errors.Wrap(err, "could not get proposer idx")
	}
	whistleBlowerReward := validator.EffectiveBalance / cfg.WhistleBlowerRewardQuotient
	proposerReward := whistleBlowerReward / cfg.ProposerRewardQuotient
	if err := helpers.IncreaseBalance(s, proposerIdx, proposerReward); err != nil {
		return nil, err
	}
	if err := helpers.IncreaseBalance(s, proposerIdx, whistleBlowerReward-proposerReward); err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"validatorIndex": slashedIdx,
		"proposerIndex":  proposerIdx,
	}).Debug("Slashed validator")
	return s, nil
}

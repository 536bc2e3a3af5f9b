package blocks

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/signing"
	v "github.com/prysmaticlabs/gasper/beacon-chain/core/validators"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/crypto/bls"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"go.opencensus.io/trace"
)

// ProcessVoluntaryExits is one of the operations performed
// on each processed beacon block to determine which validators
// should exit the state's validator registry.
func ProcessVoluntaryExits(
	ctx context.Context,
	beaconState state.BeaconState,
	exits []*ethpb.SignedVoluntaryExit,
	verifier bls.SignatureVerifier,
) (state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.ProcessVoluntaryExits")
	defer span.End()

	if err := checkBatch(OpVoluntaryExit, exits, params.BeaconConfig().MaxVoluntaryExits,
		func(e *ethpb.SignedVoluntaryExit) (types.ValidatorIndex, bool) {
			if e == nil || e.Exit == nil {
				return 0, false
			}
			return e.Exit.ValidatorIndex, true
		}); err != nil {
		return beaconState, err
	}
	return processBatch(ctx, beaconState, OpVoluntaryExit, exits, false,
		func(ctx context.Context, st state.BeaconState, exit *ethpb.SignedVoluntaryExit) (state.BeaconState, error) {
			return ProcessVoluntaryExit(ctx, st, exit, verifier)
		})
}

// ProcessVoluntaryExit verifies a single signed exit and initiates the
// validator's exit.
func ProcessVoluntaryExit(
	ctx context.Context,
	beaconState state.BeaconState,
	exit *ethpb.SignedVoluntaryExit,
	verifier bls.SignatureVerifier,
) (state.BeaconState, error) {
	if exit == nil || exit.Exit == nil {
		return nil, errors.New("nil voluntary exit in block body")
	}
	val, err := beaconState.ValidatorAtIndex(exit.Exit.ValidatorIndex)
	if err != nil {
		return nil, err
	}
	if err := VerifyExitAndSignature(val, beaconState, exit, verifier); err != nil {
		return nil, errors.Wrap(err, "could not verify exit")
	}
	return v.InitiateValidatorExit(ctx, beaconState, exit.Exit.ValidatorIndex)
}

// VerifyExitAndSignature checks a voluntary exit against the validator and its signature.
func VerifyExitAndSignature(
	validator *ethpb.Validator,
	beaconState state.ReadOnlyBeaconState,
	signed *ethpb.SignedVoluntaryExit,
	verifier bls.SignatureVerifier,
) error {
	if signed == nil || signed.Exit == nil {
		return errors.New("nil exit")
	}
	exit := signed.Exit
	if err := verifyExitConditions(validator, helpers.CurrentEpoch(beaconState), exit); err != nil {
		return err
	}
	return signing.ComputeDomainVerifySigningRoot(verifier, beaconState, exit.ValidatorIndex, exit.Epoch, exit,
		params.BeaconConfig().DomainVoluntaryExit, signed.Signature[:])
}

func verifyExitConditions(validator *ethpb.Validator, currentEpoch types.Epoch, exit *ethpb.VoluntaryExit) error {
	if !helpers.IsActiveValidator(validator, currentEpoch) {
		return errors.New("non-active validator cannot exit")
	}
	if validator.ExitEpoch != params.BeaconConfig().FarFutureEpoch {
		return errors.Wrapf(v.ErrValidatorAlreadyExited, "exit epoch %d", validator.ExitEpoch)
	}
	if currentEpoch < exit.Epoch {
		return errors.Errorf("expected current epoch >= exit epoch, received %d < %d", currentEpoch, exit.Epoch)
	}
	if currentEpoch < validator.ActivationEpoch+params.BeaconConfig().ShardCommitteePeriod {
		return errors.Errorf(
			"validator has not been active long enough to exit: %d epochs vs required %d epochs",
			currentEpoch,
			validator.ActivationEpoch+params.BeaconConfig().ShardCommitteePeriod,
		)
	}
	return nil
}

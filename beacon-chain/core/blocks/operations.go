package blocks

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/crypto/bls"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

type operationStage struct {
	name string
	run  func(ctx context.Context, st state.BeaconState, body *ethpb.BeaconBlockBody, v bls.SignatureVerifier) (state.BeaconState, error)
}

// Stages run in this order and no other.
var operationStages = []operationStage{
	{OpProposerSlashing, func(ctx context.Context, st state.BeaconState, body *ethpb.BeaconBlockBody, v bls.SignatureVerifier) (state.BeaconState, error) {
		return ProcessProposerSlashings(ctx, st, body.ProposerSlashings, v)
	}},
	{OpAttesterSlashing, func(ctx context.Context, st state.BeaconState, body *ethpb.BeaconBlockBody, v bls.SignatureVerifier) (state.BeaconState, error) {
		return ProcessAttesterSlashings(ctx, st, body.AttesterSlashings, v)
	}},
	{OpAttestation, func(ctx context.Context, st state.BeaconState, body *ethpb.BeaconBlockBody, v bls.SignatureVerifier) (state.BeaconState, error) {
		return ProcessAttestations(ctx, st, body.Attestations, v)
	}},
	{OpDeposit, func(ctx context.Context, st state.BeaconState, body *ethpb.BeaconBlockBody, v bls.SignatureVerifier) (state.BeaconState, error) {
		return ProcessDeposits(ctx, st, body.Deposits, v)
	}},
	{OpVoluntaryExit, func(ctx context.Context, st state.BeaconState, body *ethpb.BeaconBlockBody, v bls.SignatureVerifier) (state.BeaconState, error) {
		return ProcessVoluntaryExits(ctx, st, body.VoluntaryExits, v)
	}},
	{OpBLSToExecutionChange, func(ctx context.Context, st state.BeaconState, body *ethpb.BeaconBlockBody, v bls.SignatureVerifier) (state.BeaconState, error) {
		return ProcessBLSToExecutionChanges(ctx, st, body.BlsToExecutionChanges, v)
	}},
}

// ProcessOperations applies the block body's operation batches in their
// fixed order. On failure the returned state is the one left by the last
// operation that applied cleanly.
func ProcessOperations(
	ctx context.Context,
	beaconState state.BeaconState,
	body *ethpb.BeaconBlockBody,
	verifier bls.SignatureVerifier,
) (state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.ProcessOperations")
	defer span.End()

	if body == nil {
		return beaconState, ErrNilBlock
	}
	var err error
	for _, stage := range operationStages {
		var next state.BeaconState
		next, err = stage.run(ctx, beaconState, body, verifier)
		if next != nil {
			beaconState = next
		}
		if err != nil {
			log.WithError(err).WithField("stage", stage.name).Debug("Operation stage failed")
			return beaconState, err
		}
	}
	return beaconState, nil
}

// ProcessBlock applies the header, randao and eth1 vote of a block and then
// its operations. A failure before the operations returns a nil state. A
// failing operation returns the state as of the last good operation stage
// along with the *OperationError, like ProcessOperations.
func ProcessBlock(
	ctx context.Context,
	beaconState state.BeaconState,
	signed *ethpb.SignedBeaconBlock,
	verifier bls.SignatureVerifier,
) (state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.ProcessBlock")
	defer span.End()

	beaconState, err := ProcessBlockHeader(ctx, beaconState, signed, verifier)
	if err != nil {
		return nil, errors.Wrap(err, "could not process block header")
	}
	beaconState, err = ProcessRandao(ctx, beaconState, signed.Block.Body, verifier)
	if err != nil {
		return nil, errors.Wrap(err, "could not verify and process randao")
	}
	beaconState, err = ProcessEth1DataInBlock(beaconState, signed.Block.Body.Eth1Data)
	if err != nil {
		return nil, errors.Wrap(err, "could not process eth1 data")
	}
	beaconState, err = ProcessOperations(ctx, beaconState, signed.Block.Body, verifier)
	if err != nil {
		return beaconState, errors.Wrap(err, "could not process block operations")
	}
	log.WithFields(logrus.Fields{
		"slot":     signed.Block.Slot,
		"proposer": signed.Block.ProposerIndex,
	}).Debug("Processed block")
	return beaconState, nil
}

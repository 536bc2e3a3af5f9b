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

// ProcessProposerSlashings is one of the operations performed
// on each processed beacon block to slash proposers based on
// slashing conditions if any slashable events occurred.
func ProcessProposerSlashings(
	ctx context.Context,
	beaconState state.BeaconState,
	slashings []*ethpb.ProposerSlashing,
	verifier bls.SignatureVerifier,
) (state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.ProcessProposerSlashings")
	defer span.End()

	if err := checkBatch(OpProposerSlashing, slashings, params.BeaconConfig().MaxProposerSlashings,
		func(s *ethpb.ProposerSlashing) (types.ValidatorIndex, bool) {
			if s == nil || s.Header_1 == nil || s.Header_1.Header == nil {
				return 0, false
			}
			return s.Header_1.Header.ProposerIndex, true
		}); err != nil {
		return beaconState, err
	}
	return processBatch(ctx, beaconState, OpProposerSlashing, slashings, false,
		func(ctx context.Context, st state.BeaconState, slashing *ethpb.ProposerSlashing) (state.BeaconState, error) {
			return ProcessProposerSlashing(ctx, st, slashing, verifier)
		})
}

// ProcessProposerSlashing processes individual proposer slashing.
func ProcessProposerSlashing(
	ctx context.Context,
	beaconState state.BeaconState,
	slashing *ethpb.ProposerSlashing,
	verifier bls.SignatureVerifier,
) (state.BeaconState, error) {
	if err := VerifyProposerSlashing(beaconState, slashing, verifier); err != nil {
		return nil, errors.Wrap(err, "could not verify proposer slashing")
	}
	return v.SlashValidator(ctx, beaconState, slashing.Header_1.Header.ProposerIndex)
}

// VerifyProposerSlashing verifies that the data provided from slashing is valid.
func VerifyProposerSlashing(
	beaconState state.ReadOnlyBeaconState,
	slashing *ethpb.ProposerSlashing,
	verifier bls.SignatureVerifier,
) error {
	if slashing == nil || slashing.Header_1 == nil || slashing.Header_1.Header == nil ||
		slashing.Header_2 == nil || slashing.Header_2.Header == nil {
		return errors.New("nil header cannot be verified")
	}
	hSlot := slashing.Header_1.Header.Slot
	if hSlot != slashing.Header_2.Header.Slot {
		return errors.Errorf("mismatched header slots, received %d == %d", hSlot, slashing.Header_2.Header.Slot)
	}
	pIdx := slashing.Header_1.Header.ProposerIndex
	if pIdx != slashing.Header_2.Header.ProposerIndex {
		return errors.Errorf("mismatched indices, received %d == %d", pIdx, slashing.Header_2.Header.ProposerIndex)
	}
	if *slashing.Header_1.Header == *slashing.Header_2.Header {
		return errors.New("expected slashing headers to differ")
	}
	proposer, err := beaconState.ValidatorAtIndex(pIdx)
	if err != nil {
		return err
	}
	if !helpers.IsSlashableValidator(proposer, helpers.CurrentEpoch(beaconState)) {
		return errors.Errorf("validator with key %#x is not slashable", proposer.PublicKey)
	}
	headers := []*ethpb.SignedBeaconBlockHeader{slashing.Header_1, slashing.Header_2}
	for _, header := range headers {
		if err := signing.ComputeDomainVerifySigningRoot(verifier, beaconState, pIdx, helpers.SlotToEpoch(hSlot),
			header.Header, params.BeaconConfig().DomainBeaconProposer, header.Signature[:]); err != nil {
			return errors.Wrap(err, "could not verify beacon block header")
		}
	}
	return nil
}

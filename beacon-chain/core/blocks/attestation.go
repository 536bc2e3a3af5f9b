package blocks

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/signing"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/crypto/bls"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"go.opencensus.io/trace"
)

// ProcessAttestations applies processing operations to a block's inner attestation
// records.
func ProcessAttestations(
	ctx context.Context,
	beaconState state.BeaconState,
	atts []*ethpb.Attestation,
	verifier bls.SignatureVerifier,
) (state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.ProcessAttestations")
	defer span.End()

	if err := checkBatch[*ethpb.Attestation](OpAttestation, atts, params.BeaconConfig().MaxAttestations, nil); err != nil {
		return beaconState, err
	}
	return processBatch(ctx, beaconState, OpAttestation, atts, false,
		func(ctx context.Context, st state.BeaconState, att *ethpb.Attestation) (state.BeaconState, error) {
			return ProcessAttestation(ctx, st, att, verifier)
		})
}

// ProcessAttestation verifies an input attestation can pass through processing using the given beacon state
// and records it as a pending attestation of the previous or current epoch.
func ProcessAttestation(
	ctx context.Context,
	beaconState state.BeaconState,
	att *ethpb.Attestation,
	verifier bls.SignatureVerifier,
) (state.BeaconState, error) {
	beaconState, err := ProcessAttestationNoVerifySignature(ctx, beaconState, att)
	if err != nil {
		return nil, err
	}
	return beaconState, VerifyAttestationSignature(ctx, beaconState, att, verifier)
}

// VerifyAttestationNoVerifySignature verifies the attestation without verifying the attestation signature. This is
// used before processing attestation with the beacon state.
func VerifyAttestationNoVerifySignature(
	ctx context.Context,
	beaconState state.ReadOnlyBeaconState,
	att *ethpb.Attestation,
) error {
	_, span := trace.StartSpan(ctx, "core.VerifyAttestationNoVerifySignature")
	defer span.End()

	if err := helpers.ValidateNilAttestation(att); err != nil {
		return err
	}
	currEpoch := helpers.CurrentEpoch(beaconState)
	prevEpoch := helpers.PrevEpoch(beaconState)
	data := att.Data
	if data.Target.Epoch != prevEpoch && data.Target.Epoch != currEpoch {
		return errors.Errorf(
			"expected target epoch (%d) to be the previous epoch (%d) or the current epoch (%d)",
			data.Target.Epoch,
			prevEpoch,
			currEpoch,
		)
	}
	if data.Target.Epoch == currEpoch {
		if cp := beaconState.CurrentJustifiedCheckpoint(); cp == nil || *cp != *data.Source {
			return errors.New("source check point not equal to current justified checkpoint")
		}
	} else {
		if cp := beaconState.PreviousJustifiedCheckpoint(); cp == nil || *cp != *data.Source {
			return errors.New("source check point not equal to previous justified checkpoint")
		}
	}
	if helpers.SlotToEpoch(data.Slot) != data.Target.Epoch {
		return errors.Errorf("slot %d does not match target epoch %d", data.Slot, data.Target.Epoch)
	}

	cfg := params.BeaconConfig()
	s := data.Slot
	if s+cfg.MinAttestationInclusionDelay > beaconState.Slot() {
		return errors.Errorf(
			"attestation slot %d + inclusion delay %d > state slot %d",
			s,
			cfg.MinAttestationInclusionDelay,
			beaconState.Slot(),
		)
	}
	if beaconState.Slot() > s+cfg.SlotsPerEpoch {
		return errors.Errorf(
			"state slot %d > attestation slot %d + SLOTS_PER_EPOCH %d",
			beaconState.Slot(),
			s,
			cfg.SlotsPerEpoch,
		)
	}
	if data.CommitteeIndex != 0 {
		return errors.Errorf("committee index %d >= committee count 1", data.CommitteeIndex)
	}

	committee, err := helpers.BeaconCommittee(beaconState, data.Target.Epoch)
	if err != nil {
		return err
	}
	indexedAtt, err := helpers.ConvertToIndexed(att, committee)
	if err != nil {
		return errors.Wrap(err, "could not verify attestation bitfields")
	}
	return helpers.IsValidIndexedAttestationStructure(indexedAtt)
}

// ProcessAttestationNoVerifySignature processes the attestation without verifying the attestation signature. This
// method is used to validate attestations whose signatures have already been verified.
func ProcessAttestationNoVerifySignature(
	ctx context.Context,
	beaconState state.BeaconState,
	att *ethpb.Attestation,
) (state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.ProcessAttestationNoVerifySignature")
	defer span.End()

	if err := VerifyAttestationNoVerifySignature(ctx, beaconState, att); err != nil {
		return nil, err
	}
	pendingAtt, err := NewPendingAttestation(beaconState, att)
	if err != nil {
		return nil, err
	}
	if att.Data.Target.Epoch == helpers.CurrentEpoch(beaconState) {
		if err := beaconState.AppendCurrentEpochAttestations(pendingAtt); err != nil {
			return nil, err
		}
	} else {
		if err := beaconState.AppendPreviousEpochAttestations(pendingAtt); err != nil {
			return nil, err
		}
	}
	return beaconState, nil
}

// NewPendingAttestation records att as included at the state's slot by the
// state's proposer.
func NewPendingAttestation(beaconState state.ReadOnlyBeaconState, att *ethpb.Attestation) (*ethpb.PendingAttestation, error) {
	if err := helpers.ValidateNilAttestation(att); err != nil {
		return nil, err
	}
	if att.Data.Slot > beaconState.Slot() {
		return nil, errors.Errorf("attestation slot %d is after state slot %d", att.Data.Slot, beaconState.Slot())
	}
	proposerIndex, err := helpers.BeaconProposerIndex(beaconState)
	if err != nil {
		return nil, err
	}
	return &ethpb.PendingAttestation{
		Data:            ethpb.CopyAttestationData(att.Data),
		AggregationBits: append(att.AggregationBits[:0:0], att.AggregationBits...),
		InclusionDelay:  beaconState.Slot() - att.Data.Slot,
		ProposerIndex:   proposerIndex,
	}, nil
}

// VerifyAttestationSignature converts and attestation into an indexed attestation and verifies
// the signature in that attestation.
func VerifyAttestationSignature(
	ctx context.Context,
	beaconState state.ReadOnlyBeaconState,
	att *ethpb.Attestation,
	verifier bls.SignatureVerifier,
) error {
	if err := helpers.ValidateNilAttestation(att); err != nil {
		return err
	}
	committee, err := helpers.BeaconCommittee(beaconState, att.Data.Target.Epoch)
	if err != nil {
		return err
	}
	indexedAtt, err := helpers.ConvertToIndexed(att, committee)
	if err != nil {
		return err
	}
	return VerifyIndexedAttestation(ctx, beaconState, indexedAtt, verifier)
}

// VerifyIndexedAttestation determines the validity of an indexed attestation:
// sorted unique indices and a valid aggregate signature by their keys.
func VerifyIndexedAttestation(
	ctx context.Context,
	beaconState state.ReadOnlyBeaconState,
	indexedAtt *ethpb.IndexedAttestation,
	verifier bls.SignatureVerifier,
) error {
	_, span := trace.StartSpan(ctx, "core.VerifyIndexedAttestation")
	defer span.End()

	if err := helpers.IsValidIndexedAttestationStructure(indexedAtt); err != nil {
		return err
	}
	domain, err := signing.Domain(beaconState.Fork(), indexedAtt.Data.Target.Epoch, params.BeaconConfig().DomainBeaconAttester, beaconState.GenesisValidatorsRoot())
	if err != nil {
		return err
	}
	pubkeys := make([][]byte, 0, len(indexedAtt.AttestingIndices))
	for _, idx := range indexedAtt.AttestingIndices {
		val, err := beaconState.ValidatorAtIndex(idx)
		if err != nil {
			return errors.Wrapf(err, "could not get validator %d", idx)
		}
		pubkeys = append(pubkeys, val.PublicKey[:])
	}
	root, err := signing.ComputeSigningRoot(indexedAtt.Data, domain)
	if err != nil {
		return errors.Wrap(err, "could not get signing root of object")
	}
	ok, err := verifier.FastAggregateVerify(pubkeys, root, indexedAtt.Signature[:])
	if err != nil {
		return errors.Wrap(err, "could not verify aggregate signature")
	}
	if !ok {
		return signing.ErrSigFailedToVerify
	}
	return nil
}

package blocks

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
	v "github.com/prysmaticlabs/gasper/beacon-chain/core/validators"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/crypto/bls"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"go.opencensus.io/trace"
)

// ProcessAttesterSlashings is one of the operations performed
// on each processed beacon block to slash attesters based on
// Casper FFG slashing conditions if any slashable events occurred.
func ProcessAttesterSlashings(
	ctx context.Context,
	beaconState state.BeaconState,
	slashings []*ethpb.AttesterSlashing,
	verifier bls.SignatureVerifier,
) (state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.ProcessAttesterSlashings")
	defer span.End()

	if err := checkBatch[*ethpb.AttesterSlashing](OpAttesterSlashing, slashings, params.BeaconConfig().MaxAttesterSlashings, nil); err != nil {
		return beaconState, err
	}
	return processBatch(ctx, beaconState, OpAttesterSlashing, slashings, false,
		func(ctx context.Context, st state.BeaconState, slashing *ethpb.AttesterSlashing) (state.BeaconState, error) {
			return ProcessAttesterSlashing(ctx, st, slashing, verifier)
		})
}

// ProcessAttesterSlashing processes individual attester slashing. Every
// validator in both attestations that is still slashable is slashed; at
// least one must be.
func ProcessAttesterSlashing(
	ctx context.Context,
	beaconState state.BeaconState,
	slashing *ethpb.AttesterSlashing,
	verifier bls.SignatureVerifier,
) (state.BeaconState, error) {
	if err := VerifyAttesterSlashing(ctx, beaconState, slashing, verifier); err != nil {
		return nil, errors.Wrap(err, "could not verify attester slashing")
	}
	slashableIndices := SlashableAttesterIndices(slashing)
	currentEpoch := helpers.CurrentEpoch(beaconState)
	var slashedAny bool
	for _, idx := range slashableIndices {
		val, err := beaconState.ValidatorAtIndex(idx)
		if err != nil {
			return nil, err
		}
		if helpers.IsSlashableValidator(val, currentEpoch) {
			beaconState, err = v.SlashValidator(ctx, beaconState, idx)
			if err != nil {
				return nil, errors.Wrapf(err, "could not slash validator index %d", idx)
			}
			slashedAny = true
		}
	}
	if !slashedAny {
		return nil, errors.New("unable to slash any validator despite confirmed attester slashing")
	}
	return beaconState, nil
}

// VerifyAttesterSlashing validates the attestation data in both attestations in the slashing object.
func VerifyAttesterSlashing(
	ctx context.Context,
	beaconState state.ReadOnlyBeaconState,
	slashing *ethpb.AttesterSlashing,
	verifier bls.SignatureVerifier,
) error {
	if slashing == nil {
		return errors.New("nil slashing")
	}
	att1 := slashing.Attestation_1
	att2 := slashing.Attestation_2
	if att1 == nil || att2 == nil || att1.Data == nil || att2.Data == nil {
		return errors.New("nil attestation")
	}
	if !helpers.IsSlashableAttestationData(att1.Data, att2.Data) {
		return errors.New("attestations are not slashable")
	}
	if err := VerifyIndexedAttestation(ctx, beaconState, att1, verifier); err != nil {
		return errors.Wrap(err, "could not validate indexed attestation")
	}
	if err := VerifyIndexedAttestation(ctx, beaconState, att2, verifier); err != nil {
		return errors.Wrap(err, "could not validate indexed attestation")
	}
	return nil
}

// SlashableAttesterIndices returns the intersection of the attesting
// indices of both attestations, in increasing order.
func SlashableAttesterIndices(slashing *ethpb.AttesterSlashing) []types.ValidatorIndex {
	if slashing == nil || slashing.Attestation_1 == nil || slashing.Attestation_2 == nil {
		return nil
	}
	in2 := make(map[types.ValidatorIndex]bool, len(slashing.Attestation_2.AttestingIndices))
	for _, idx := range slashing.Attestation_2.AttestingIndices {
		in2[idx] = true
	}
	var indices []types.ValidatorIndex
	seen := make(map[types.ValidatorIndex]bool)
	for _, idx := range slashing.Attestation_1.AttestingIndices {
		if in2[idx] && !seen[idx] {
			indices = append(indices, idx)
			seen[idx] = true
		}
	}
	sort.Slice(indices, func(i, j int) bool {
		return indices[i] < indices[j]
	})
	return indices
}

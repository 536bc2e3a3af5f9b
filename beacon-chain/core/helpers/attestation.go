package helpers

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
)

var (
	// ErrNilAttestation is returned when an attestation or its data is nil.
	ErrNilAttestation = errors.New("nil attestation")
	// ErrNilCheckpoint is returned when attestation data lacks a source or target.
	ErrNilCheckpoint = errors.New("nil source or target checkpoint")
)

// ValidateNilAttestation checks if any composite field of input attestation is nil.
func ValidateNilAttestation(att *ethpb.Attestation) error {
	if att == nil || att.Data == nil {
		return ErrNilAttestation
	}
	if att.Data.Source == nil || att.Data.Target == nil {
		return ErrNilCheckpoint
	}
	if att.AggregationBits == nil {
		return errors.New("attestation's bitfield can't be nil")
	}
	return nil
}

// ConvertToIndexed converts attestation to (almost) indexed-verifiable form.
func ConvertToIndexed(att *ethpb.Attestation, committee []types.ValidatorIndex) (*ethpb.IndexedAttestation, error) {
	if err := ValidateNilAttestation(att); err != nil {
		return nil, err
	}
	attIndices, err := AttestingIndices(att.AggregationBits, committee)
	if err != nil {
		return nil, err
	}
	return &ethpb.IndexedAttestation{
		Data:             ethpb.CopyAttestationData(att.Data),
		Signature:        att.Signature,
		AttestingIndices: attIndices,
	}, nil
}

// IsValidIndexedAttestationStructure checks that the attesting indices are
// non-empty, strictly increasing and within the committee size bound.
func IsValidIndexedAttestationStructure(att *ethpb.IndexedAttestation) error {
	if att == nil || att.Data == nil || att.Data.Source == nil || att.Data.Target == nil {
		return ErrNilAttestation
	}
	indices := att.AttestingIndices
	if len(indices) == 0 {
		return errors.New("expected non-empty attesting indices")
	}
	if uint64(len(indices)) > params.BeaconConfig().MaxValidatorsPerCommittee {
		return errors.Errorf("validator indices count exceeds MAX_VALIDATORS_PER_COMMITTEE, %d > %d", len(indices), params.BeaconConfig().MaxValidatorsPerCommittee)
	}
	for i := 1; i < len(indices); i++ {
		if indices[i-1] >= indices[i] {
			return errors.New("attesting indices is not uniquely sorted")
		}
	}
	return nil
}

// IsSlashableAttestationData verifies a slashing against the Casper Proof of Stake FFG rules:
// a double vote (same target epoch, different data) or a surround vote.
func IsSlashableAttestationData(data1, data2 *ethpb.AttestationData) bool {
	if data1 == nil || data2 == nil || data1.Target == nil || data2.Target == nil || data1.Source == nil || data2.Source == nil {
		return false
	}
	isDoubleVote := !AttestationDataEqual(data1, data2) && data1.Target.Epoch == data2.Target.Epoch
	isSurroundVote := data1.Source.Epoch < data2.Source.Epoch && data2.Target.Epoch < data1.Target.Epoch
	return isDoubleVote || isSurroundVote
}

// AttestationDataEqual compares two attestation data values field by field,
// including the contents of their checkpoints.
func AttestationDataEqual(a, b *ethpb.AttestationData) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Slot == b.Slot &&
		a.CommitteeIndex == b.CommitteeIndex &&
		a.BeaconBlockRoot == b.BeaconBlockRoot &&
		checkpointEqual(a.Source, b.Source) &&
		checkpointEqual(a.Target, b.Target)
}

func checkpointEqual(a, b *ethpb.Checkpoint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

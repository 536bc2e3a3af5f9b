package util

import (
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/go-bitfield"
)

// SupermajoritySize is the smallest voter count that forms a supermajority
// link under the active config.
func SupermajoritySize() uint64 {
	return 2*params.BeaconConfig().MaxValidatorsPerCommittee/3 + 1
}

// VoterRange returns the committee positions [from, to).
func VoterRange(from, to uint64) []uint64 {
	out := make([]uint64, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}

// Vote builds a pending attestation for the link source -> target with the
// given committee positions set in a bitlist spanning a full committee.
func Vote(source, target *ethpb.Checkpoint, head [32]byte, slot types.Slot, voters []uint64) *ethpb.PendingAttestation {
	bits := bitfield.NewBitlist(params.BeaconConfig().MaxValidatorsPerCommittee)
	for _, v := range voters {
		bits.SetBitAt(v, true)
	}
	return &ethpb.PendingAttestation{
		AggregationBits: bits,
		Data: &ethpb.AttestationData{
			Slot:            slot,
			BeaconBlockRoot: head,
			Source:          ethpb.CopyCheckpoint(source),
			Target:          ethpb.CopyCheckpoint(target),
		},
		InclusionDelay: 1,
	}
}

// Checkpoint is shorthand for a checkpoint literal.
func Checkpoint(epoch types.Epoch, root [32]byte) *ethpb.Checkpoint {
	return &ethpb.Checkpoint{Epoch: epoch, Root: root}
}

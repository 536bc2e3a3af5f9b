package gasper

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
)

// LatestJustified returns the justified checkpoint of head's chain with the
// greatest epoch not after epoch. The genesis checkpoint is the fallback.
func (s *Snapshot) LatestJustified(head [32]byte, epoch types.Epoch) (*ethpb.Checkpoint, error) {
	h, ok := s.handle(head)
	if !ok {
		return nil, structural(head, ErrUnknownRoot)
	}
	v, err := s.justification(h, epoch)
	if err != nil {
		return nil, err
	}
	for e := len(v.justified) - 1; e >= 0; e-- {
		if v.justified[e] {
			cp := v.checkpoints[e]
			return &cp, nil
		}
	}
	// Unreachable: epoch 0 is always justified.
	return nil, errors.New("no justified checkpoint")
}

// ValidateAttestation checks that data is well formed against the
// snapshot: its head block is known, its target is the boundary checkpoint
// of the head's chain at the target epoch, and its source is the latest
// checkpoint justified on that chain before the target epoch. Failures wrap
// ErrInvalidAttestation.
func (s *Snapshot) ValidateAttestation(data *ethpb.AttestationData) error {
	if data == nil || data.Source == nil || data.Target == nil {
		return errors.Wrap(ErrInvalidAttestation, "nil attestation data")
	}
	if data.CommitteeIndex != 0 {
		return errors.Wrapf(ErrInvalidAttestation, "committee index %d is not 0", data.CommitteeIndex)
	}
	if slotEpoch := helpers.SlotToEpoch(data.Slot); slotEpoch != data.Target.Epoch {
		return errors.Wrapf(ErrInvalidAttestation, "target epoch %d does not match slot epoch %d", data.Target.Epoch, slotEpoch)
	}
	if err := checkHorizon(data.Target.Epoch); err != nil {
		return errors.Wrap(ErrInvalidAttestation, err.Error())
	}
	head, ok := s.handle(data.BeaconBlockRoot)
	if !ok {
		return errors.Wrapf(ErrInvalidAttestation, "unknown head block %s", rootString(data.BeaconBlockRoot))
	}
	if s.nodes[head].slot > data.Slot {
		return errors.Wrapf(ErrInvalidAttestation, "head block slot %d is after attestation slot %d", s.nodes[head].slot, data.Slot)
	}
	target, err := s.Checkpoint(data.BeaconBlockRoot, data.Target.Epoch)
	if err != nil {
		return err
	}
	if *target != *data.Target {
		return errors.Wrapf(ErrInvalidAttestation, "target %s is not the boundary checkpoint %s of the head chain",
			checkpointString(data.Target), checkpointString(target))
	}
	var source *ethpb.Checkpoint
	if data.Target.Epoch == 0 {
		source = target
	} else {
		source, err = s.LatestJustified(data.BeaconBlockRoot, data.Target.Epoch-1)
		if err != nil {
			return err
		}
	}
	if *source != *data.Source {
		return errors.Wrapf(ErrInvalidAttestation, "source %s is not the latest justified checkpoint %s",
			checkpointString(data.Source), checkpointString(source))
	}
	return nil
}

package epoch

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
)

// MatchingTargetAttestations returns the pending attestations of epoch
// whose target is the state's block root at the start of epoch.
func MatchingTargetAttestations(st state.ReadOnlyBeaconState, epoch types.Epoch) ([]*ethpb.PendingAttestation, error) {
	var source []*ethpb.PendingAttestation
	switch epoch {
	case helpers.CurrentEpoch(st):
		source = st.CurrentEpochAttestations()
	case helpers.PrevEpoch(st):
		source = st.PreviousEpochAttestations()
	default:
		return nil, errors.Errorf("epoch %d is neither the current nor the previous epoch", epoch)
	}
	root, err := helpers.BlockRoot(st, epoch)
	if err != nil {
		return nil, errors.Wrap(err, "could not get target block root")
	}
	matching := make([]*ethpb.PendingAttestation, 0, len(source))
	for _, a := range source {
		if a.Data != nil && a.Data.Target != nil && a.Data.Target.Root == root {
			matching = append(matching, a)
		}
	}
	return matching, nil
}

// UnslashedAttestingIndices returns the sorted, deduplicated indices of
// unslashed validators that took part in atts.
func UnslashedAttestingIndices(st state.ReadOnlyBeaconState, atts []*ethpb.PendingAttestation) ([]types.ValidatorIndex, error) {
	seen := make(map[types.ValidatorIndex]bool)
	var out []types.ValidatorIndex
	for _, a := range atts {
		committee, err := helpers.BeaconCommittee(st, a.Data.Target.Epoch)
		if err != nil {
			return nil, err
		}
		indices, err := helpers.AttestingIndices(a.AggregationBits, committee)
		if err != nil {
			return nil, err
		}
		for _, idx := range indices {
			if seen[idx] {
				continue
			}
			seen[idx] = true
			val, err := st.ValidatorAtIndex(idx)
			if err != nil {
				return nil, err
			}
			if !val.Slashed {
				out = append(out, idx)
			}
		}
	}
	sortIndices(out)
	return out, nil
}

// AttestingBalance returns the total effective balance of the unslashed
// validators that took part in atts.
func AttestingBalance(st state.ReadOnlyBeaconState, atts []*ethpb.PendingAttestation) (uint64, error) {
	indices, err := UnslashedAttestingIndices(st, atts)
	if err != nil {
		return 0, err
	}
	return helpers.TotalBalance(st, indices)
}

// ProcessJustificationAndFinalization updates the justified and finalized
// checkpoints of the state from the balance of the previous and current
// epoch target votes.
func ProcessJustificationAndFinalization(st state.BeaconState) (state.BeaconState, error) {
	if helpers.CurrentEpoch(st) <= params.BeaconConfig().GenesisEpoch+1 {
		return st, nil
	}
	prevAtts, err := MatchingTargetAttestations(st, helpers.PrevEpoch(st))
	if err != nil {
		return nil, err
	}
	currAtts, err := MatchingTargetAttestations(st, helpers.CurrentEpoch(st))
	if err != nil {
		return nil, err
	}
	totalActive, err := helpers.TotalActiveBalance(st)
	if err != nil {
		return nil, errors.Wrap(err, "could not get total active balance")
	}
	prevTarget, err := AttestingBalance(st, prevAtts)
	if err != nil {
		return nil, err
	}
	currTarget, err := AttestingBalance(st, currAtts)
	if err != nil {
		return nil, err
	}
	return WeighJustificationAndFinalization(st, totalActive, prevTarget, currTarget)
}

// WeighJustificationAndFinalization applies the two-thirds rule to the
// target balances and finalizes along the last four epochs of bits.
func WeighJustificationAndFinalization(st state.BeaconState, totalActive, prevTarget, currTarget uint64) (state.BeaconState, error) {
	prevEpoch := helpers.PrevEpoch(st)
	currentEpoch := helpers.CurrentEpoch(st)
	oldPrevJustified := st.PreviousJustifiedCheckpoint()
	oldCurrJustified := st.CurrentJustifiedCheckpoint()

	if err := st.SetPreviousJustifiedCheckpoint(oldCurrJustified); err != nil {
		return nil, err
	}
	bits := st.JustificationBits()
	bits.Shift(1)

	if 3*prevTarget >= 2*totalActive {
		root, err := helpers.BlockRoot(st, prevEpoch)
		if err != nil {
			return nil, errors.Wrapf(err, "could not get block root for previous epoch %d", prevEpoch)
		}
		if err := st.SetCurrentJustifiedCheckpoint(&ethpb.Checkpoint{Epoch: prevEpoch, Root: root}); err != nil {
			return nil, err
		}
		bits.SetBitAt(1, true)
	}
	if 3*currTarget >= 2*totalActive {
		root, err := helpers.BlockRoot(st, currentEpoch)
		if err != nil {
			return nil, errors.Wrapf(err, "could not get block root for current epoch %d", currentEpoch)
		}
		if err := st.SetCurrentJustifiedCheckpoint(&ethpb.Checkpoint{Epoch: currentEpoch, Root: root}); err != nil {
			return nil, err
		}
		bits.SetBitAt(0, true)
	}
	if err := st.SetJustificationBits(bits); err != nil {
		return nil, err
	}

	// Process finalization according to Gasper k-finality with k in {1, 2}.
	var finalized *ethpb.Checkpoint
	switch {
	case bits.BitAt(1) && bits.BitAt(2) && bits.BitAt(3) && oldPrevJustified.Epoch+3 == currentEpoch:
		finalized = oldPrevJustified
	case bits.BitAt(1) && bits.BitAt(2) && oldPrevJustified.Epoch+2 == currentEpoch:
		finalized = oldPrevJustified
	}
	switch {
	case bits.BitAt(0) && bits.BitAt(1) && bits.BitAt(2) && oldCurrJustified.Epoch+2 == currentEpoch:
		finalized = oldCurrJustified
	case bits.BitAt(0) && bits.BitAt(1) && oldCurrJustified.Epoch+1 == currentEpoch:
		finalized = oldCurrJustified
	}
	if finalized != nil {
		if err := st.SetFinalizedCheckpoint(finalized); err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{
			"epoch": finalized.Epoch,
			"root":  fmt.Sprintf("%#x", finalized.Root),
		}).Debug("Finalized checkpoint")
	}
	return st, nil
}

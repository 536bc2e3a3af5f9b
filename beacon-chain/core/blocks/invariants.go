package blocks

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
)

// stageInvariants holds the fields an operation stage must leave untouched.
type stageInvariants struct {
	slot             types.Slot
	header           ethpb.BeaconBlockHeader
	eth1DepositIndex uint64
	depositStage     bool
}

func captureInvariants(st state.ReadOnlyBeaconState, depositStage bool) (*stageInvariants, error) {
	if err := checkRegistry(st); err != nil {
		return nil, err
	}
	inv := &stageInvariants{
		slot:             st.Slot(),
		eth1DepositIndex: st.Eth1DepositIndex(),
		depositStage:     depositStage,
	}
	if h := st.LatestBlockHeader(); h != nil {
		inv.header = *h
	}
	return inv, nil
}

// verify checks post against the captured pre-stage values.
func (inv *stageInvariants) verify(post state.ReadOnlyBeaconState) error {
	if post.Slot() != inv.slot {
		return errors.Wrapf(ErrInvariantViolated, "slot changed from %d to %d", inv.slot, post.Slot())
	}
	var header ethpb.BeaconBlockHeader
	if h := post.LatestBlockHeader(); h != nil {
		header = *h
	}
	if header != inv.header {
		return errors.Wrap(ErrInvariantViolated, "latest block header changed")
	}
	if !inv.depositStage && post.Eth1DepositIndex() != inv.eth1DepositIndex {
		return errors.Wrapf(ErrInvariantViolated, "eth1 deposit index changed from %d to %d", inv.eth1DepositIndex, post.Eth1DepositIndex())
	}
	return checkRegistry(post)
}

// checkRegistry asserts that balances line up with validators and that the
// active set does not drop below the configured minimum.
func checkRegistry(st state.ReadOnlyBeaconState) error {
	if st.NumValidators() != st.BalancesLength() {
		return errors.Wrapf(ErrInvariantViolated, "%d validators but %d balances", st.NumValidators(), st.BalancesLength())
	}
	active, err := helpers.ActiveValidatorCount(st, helpers.CurrentEpoch(st))
	if err != nil {
		return err
	}
	if min := params.BeaconConfig().MinimumActiveValidators; active < min {
		return errors.Wrapf(ErrInvariantViolated, "%d active validators, minimum is %d", active, min)
	}
	return nil
}

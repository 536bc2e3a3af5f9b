package helpers

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/math"
)

// IncreaseBalance increases validator with the given 'index' balance by 'delta' in Gwei.
// A balance that would reach 2^64 is rejected.
func IncreaseBalance(st state.BeaconState, idx types.ValidatorIndex, delta uint64) error {
	balAtIdx, err := st.BalanceAtIndex(idx)
	if err != nil {
		return err
	}
	newBal, err := math.Add64(balAtIdx, delta)
	if err != nil {
		return errors.Wrapf(err, "balance of validator %d", idx)
	}
	return st.UpdateBalancesAtIndex(idx, newBal)
}

// DecreaseBalance decreases validator with the given 'index' balance by 'delta' in Gwei,
// flooring at zero.
func DecreaseBalance(st state.BeaconState, idx types.ValidatorIndex, delta uint64) error {
	balAtIdx, err := st.BalanceAtIndex(idx)
	if err != nil {
		return err
	}
	return st.UpdateBalancesAtIndex(idx, math.SaturatingSub(balAtIdx, delta))
}

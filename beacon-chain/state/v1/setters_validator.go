package v1

import (
	"github.com/pkg/errors"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
)

// SetValidators for the beacon state. Updates the entire
// to a new value by overwriting the previous one.
func (b *BeaconState) SetValidators(val []*ethpb.Validator) error {
	if !b.hasInnerState() {
		return ErrNilInnerState
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	vals := make([]*ethpb.Validator, len(val))
	valMap := make(map[[48]byte]types.ValidatorIndex, len(val))
	for i, v := range val {
		if v == nil {
			return errors.Errorf("nil validator at index %d", i)
		}
		vals[i] = ethpb.CopyValidator(v)
		valMap[v.PublicKey] = types.ValidatorIndex(i)
	}
	b.state.Validators = vals
	b.valMap = valMap
	return nil
}

// UpdateValidatorAtIndex for the beacon state. Updates the validator
// at a specific index to a new value.
func (b *BeaconState) UpdateValidatorAtIndex(idx types.ValidatorIndex, val *ethpb.Validator) error {
	if !b.hasInnerState() {
		return ErrNilInnerState
	}
	if val == nil {
		return errors.New("nil validator")
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	if uint64(idx) >= uint64(len(b.state.Validators)) {
		e := NewValidatorIndexOutOfRangeError(idx)
		return &e
	}
	old := b.state.Validators[idx]
	if old.PublicKey != val.PublicKey {
		delete(b.valMap, old.PublicKey)
		b.valMap[val.PublicKey] = idx
	}
	// Stored validators are never mutated in place.
	b.state.Validators[idx] = ethpb.CopyValidator(val)
	return nil
}

// AppendValidator for the beacon state. Appends the new value
// to the end of list.
func (b *BeaconState) AppendValidator(val *ethpb.Validator) error {
	if !b.hasInnerState() {
		return ErrNilInnerState
	}
	if val == nil {
		return errors.New("nil validator")
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	idx := types.ValidatorIndex(len(b.state.Validators))
	b.state.Validators = append(b.state.Validators, ethpb.CopyValidator(val))
	b.valMap[val.PublicKey] = idx
	return nil
}

// SetBalances for the beacon state. Updates the entire
// list to a new value by overwriting the previous one.
func (b *BeaconState) SetBalances(val []uint64) error {
	if !b.hasInnerState() {
		return ErrNilInnerState
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	bals := make([]uint64, len(val))
	copy(bals, val)
	b.state.Balances = bals
	return nil
}

// UpdateBalancesAtIndex for the beacon state. This method updates the balance
// at a specific index to a new value.
func (b *BeaconState) UpdateBalancesAtIndex(idx types.ValidatorIndex, val uint64) error {
	if !b.hasInnerState() {
		return ErrNilInnerState
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	if uint64(idx) >= uint64(len(b.state.Balances)) {
		return errIndexOutOfRange(uint64(idx), len(b.state.Balances))
	}
	b.state.Balances[idx] = val
	return nil
}

// AppendBalance for the beacon state. Appends the new value
// to the end of list.
func (b *BeaconState) AppendBalance(bal uint64) error {
	if !b.hasInnerState() {
		return ErrNilInnerState
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	b.state.Balances = append(b.state.Balances, bal)
	return nil
}

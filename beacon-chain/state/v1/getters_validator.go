package v1

import (
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
)

// Validators participating in consensus on the beacon chain.
func (b *BeaconState) Validators() []*ethpb.Validator {
	if !b.hasInnerState() || b.state.Validators == nil {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	res := make([]*ethpb.Validator, len(b.state.Validators))
	for i, v := range b.state.Validators {
		res[i] = ethpb.CopyValidator(v)
	}
	return res
}

// ValidatorAtIndex is the validator at the provided index.
func (b *BeaconState) ValidatorAtIndex(idx types.ValidatorIndex) (*ethpb.Validator, error) {
	if !b.hasInnerState() {
		return nil, ErrNilInnerState
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	if uint64(idx) >= uint64(len(b.state.Validators)) {
		e := NewValidatorIndexOutOfRangeError(idx)
		return nil, &e
	}
	return ethpb.CopyValidator(b.state.Validators[idx]), nil
}

// ValidatorIndexByPubkey returns a given validator by its 48-byte public key.
func (b *BeaconState) ValidatorIndexByPubkey(key [48]byte) (types.ValidatorIndex, bool) {
	if !b.hasInnerState() {
		return 0, false
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	idx, ok := b.valMap[key]
	return idx, ok
}

// NumValidators returns the size of the validator registry.
func (b *BeaconState) NumValidators() int {
	if !b.hasInnerState() {
		return 0
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return len(b.state.Validators)
}

// ReadFromEveryValidator reads values from every validator and applies it to the provided function.
func (b *BeaconState) ReadFromEveryValidator(f func(idx int, val *ethpb.Validator) error) error {
	if !b.hasInnerState() {
		return ErrNilInnerState
	}
	b.lock.RLock()
	validators := make([]*ethpb.Validator, len(b.state.Validators))
	copy(validators, b.state.Validators)
	b.lock.RUnlock()

	for i, v := range validators {
		if err := f(i, ethpb.CopyValidator(v)); err != nil {
			return err
		}
	}
	return nil
}

// Balances of validators participating in consensus on the beacon chain.
func (b *BeaconState) Balances() []uint64 {
	if !b.hasInnerState() || b.state.Balances == nil {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	res := make([]uint64, len(b.state.Balances))
	copy(res, b.state.Balances)
	return res
}

// BalanceAtIndex of validator with the provided index.
func (b *BeaconState) BalanceAtIndex(idx types.ValidatorIndex) (uint64, error) {
	if !b.hasInnerState() {
		return 0, ErrNilInnerState
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	if uint64(idx) >= uint64(len(b.state.Balances)) {
		return 0, errIndexOutOfRange(uint64(idx), len(b.state.Balances))
	}
	return b.state.Balances[idx], nil
}

// BalancesLength returns the length of the balances slice.
func (b *BeaconState) BalancesLength() int {
	if !b.hasInnerState() {
		return 0
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return len(b.state.Balances)
}

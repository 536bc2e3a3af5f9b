package v1

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"go.opencensus.io/trace"
)

// InitializeFromProto the beacon state from a protobuf representation.
func InitializeFromProto(st *ethpb.BeaconState) (*BeaconState, error) {
	return InitializeFromProtoUnsafe(ethpb.CopyBeaconState(st))
}

// InitializeFromProtoUnsafe directly uses the beacon state protobuf pointer
// and sets it as the inner state of the BeaconState type.
func InitializeFromProtoUnsafe(st *ethpb.BeaconState) (*BeaconState, error) {
	if st == nil {
		return nil, errors.New("received nil state")
	}
	if len(st.Validators) != len(st.Balances) {
		return nil, errors.Errorf("validator registry has %d entries but balances has %d", len(st.Validators), len(st.Balances))
	}
	b := &BeaconState{
		state:  st,
		valMap: make(map[[48]byte]types.ValidatorIndex, len(st.Validators)),
	}
	for i, v := range st.Validators {
		if v == nil {
			return nil, errors.Errorf("nil validator at index %d", i)
		}
		b.valMap[v.PublicKey] = types.ValidatorIndex(i)
	}
	return b, nil
}

// Copy returns a deep copy of the beacon state.
func (b *BeaconState) Copy() state.BeaconState {
	if !b.hasInnerState() {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()

	valMap := make(map[[48]byte]types.ValidatorIndex, len(b.valMap))
	for k, v := range b.valMap {
		valMap[k] = v
	}
	return &BeaconState{
		state:  ethpb.CopyBeaconState(b.state),
		valMap: valMap,
	}
}

// ToProto returns a deep copy of the underlying data.
func (b *BeaconState) ToProto() *ethpb.BeaconState {
	if !b.hasInnerState() {
		return nil
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	return ethpb.CopyBeaconState(b.state)
}

// HashTreeRoot of the beacon state retrieves the Merkle root of the state's
// fields as defined by the ssz container.
func (b *BeaconState) HashTreeRoot(ctx context.Context) ([32]byte, error) {
	_, span := trace.StartSpan(ctx, "beaconState.HashTreeRoot")
	defer span.End()

	if !b.hasInnerState() {
		return [32]byte{}, ErrNilInnerState
	}
	b.lock.RLock()
	defer b.lock.RUnlock()
	root, err := b.state.HashTreeRoot()
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not hash beacon state")
	}
	return root, nil
}

// hasInnerState detects if the internal reference to the state data structure
// is populated correctly. Returns false if nil.
func (b *BeaconState) hasInnerState() bool {
	return b != nil && b.state != nil
}

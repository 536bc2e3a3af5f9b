// Package state defines the beacon state interfaces consumed by the state
// transition, the fork choice store and the ingestion service.
package state

import (
	"context"

	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/go-bitfield"
)

// BeaconState has read and write access to beacon state methods.
type BeaconState interface {
	ReadOnlyBeaconState
	WriteOnlyBeaconState
	Copy() BeaconState
}

// ReadOnlyBeaconState defines a struct which only has read access to beacon state methods.
// Every getter returns a copy of the underlying value.
type ReadOnlyBeaconState interface {
	ToProto() *ethpb.BeaconState
	HashTreeRoot(ctx context.Context) ([32]byte, error)
	GenesisTime() uint64
	GenesisValidatorsRoot() [32]byte
	Slot() types.Slot
	Fork() *ethpb.Fork
	LatestBlockHeader() *ethpb.BeaconBlockHeader
	BlockRoots() [][32]byte
	BlockRootAtIndex(idx uint64) ([32]byte, error)
	StateRoots() [][32]byte
	HistoricalRoots() [][32]byte
	Eth1Data() *ethpb.Eth1Data
	Eth1DataVotes() []*ethpb.Eth1Data
	Eth1DepositIndex() uint64
	ReadOnlyValidators
	ReadOnlyBalances
	RandaoMixes() [][32]byte
	RandaoMixAtIndex(idx uint64) ([32]byte, error)
	Slashings() []uint64
	PreviousEpochAttestations() []*ethpb.PendingAttestation
	CurrentEpochAttestations() []*ethpb.PendingAttestation
	JustificationBits() bitfield.Bitvector4
	PreviousJustifiedCheckpoint() *ethpb.Checkpoint
	CurrentJustifiedCheckpoint() *ethpb.Checkpoint
	FinalizedCheckpoint() *ethpb.Checkpoint
}

// ReadOnlyValidators defines a struct which only has read access to the validator registry.
type ReadOnlyValidators interface {
	Validators() []*ethpb.Validator
	ValidatorAtIndex(idx types.ValidatorIndex) (*ethpb.Validator, error)
	ValidatorIndexByPubkey(key [48]byte) (types.ValidatorIndex, bool)
	NumValidators() int
	// ReadFromEveryValidator calls f with a copy of every validator, stopping
	// at the first error.
	ReadFromEveryValidator(f func(idx int, val *ethpb.Validator) error) error
}

// ReadOnlyBalances defines a struct which only has read access to balances.
type ReadOnlyBalances interface {
	Balances() []uint64
	BalanceAtIndex(idx types.ValidatorIndex) (uint64, error)
	BalancesLength() int
}

// WriteOnlyBeaconState defines a struct which only has write access to beacon state methods.
type WriteOnlyBeaconState interface {
	SetGenesisTime(val uint64) error
	SetGenesisValidatorsRoot(val [32]byte) error
	SetSlot(val types.Slot) error
	SetFork(val *ethpb.Fork) error
	SetLatestBlockHeader(val *ethpb.BeaconBlockHeader) error
	UpdateBlockRootAtIndex(idx uint64, root [32]byte) error
	UpdateStateRootAtIndex(idx uint64, root [32]byte) error
	AppendHistoricalRoots(root [32]byte) error
	SetEth1Data(val *ethpb.Eth1Data) error
	SetEth1DataVotes(val []*ethpb.Eth1Data) error
	AppendEth1DataVotes(val *ethpb.Eth1Data) error
	SetEth1DepositIndex(val uint64) error
	SetValidators(val []*ethpb.Validator) error
	UpdateValidatorAtIndex(idx types.ValidatorIndex, val *ethpb.Validator) error
	AppendValidator(val *ethpb.Validator) error
	SetBalances(val []uint64) error
	UpdateBalancesAtIndex(idx types.ValidatorIndex, val uint64) error
	AppendBalance(bal uint64) error
	UpdateRandaoMixesAtIndex(idx uint64, val [32]byte) error
	UpdateSlashingsAtIndex(idx, val uint64) error
	AppendCurrentEpochAttestations(val *ethpb.PendingAttestation) error
	AppendPreviousEpochAttestations(val *ethpb.PendingAttestation) error
	RotateAttestations() error
	SetJustificationBits(val bitfield.Bitvector4) error
	SetPreviousJustifiedCheckpoint(val *ethpb.Checkpoint) error
	SetCurrentJustifiedCheckpoint(val *ethpb.Checkpoint) error
	SetFinalizedCheckpoint(val *ethpb.Checkpoint) error
}

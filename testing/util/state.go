// Package util builds deterministic states, blocks and votes for tests.
package util

import (
	"encoding/binary"

	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	v1 "github.com/prysmaticlabs/gasper/beacon-chain/state/v1"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/go-bitfield"
)

// FillRootsNaturalOpt is meant to be used as an option when calling NewBeaconState.
// It fills state and block roots with little endian representations of natural numbers starting with 0.
func FillRootsNaturalOpt(st *ethpb.BeaconState) error {
	for i := range st.BlockRoots {
		var r [32]byte
		binary.LittleEndian.PutUint64(r[:], uint64(i))
		st.BlockRoots[i] = r
		st.StateRoots[i] = r
	}
	return nil
}

// NewBeaconState creates a beacon state with every vector sized by the
// active config and no validators.
func NewBeaconState(options ...func(st *ethpb.BeaconState) error) (state.BeaconState, error) {
	cfg := params.BeaconConfig()
	forkVersion := bytesutil.ToBytes4(cfg.GenesisForkVersion)
	emptyBodyRoot, err := (&ethpb.BeaconBlockBody{Eth1Data: &ethpb.Eth1Data{}}).HashTreeRoot()
	if err != nil {
		return nil, err
	}
	seed := &ethpb.BeaconState{
		Fork: &ethpb.Fork{
			PreviousVersion: forkVersion,
			CurrentVersion:  forkVersion,
		},
		LatestBlockHeader:           &ethpb.BeaconBlockHeader{BodyRoot: emptyBodyRoot},
		BlockRoots:                  make([][32]byte, cfg.SlotsPerHistoricalRoot),
		StateRoots:                  make([][32]byte, cfg.SlotsPerHistoricalRoot),
		HistoricalRoots:             make([][32]byte, 0),
		Eth1Data:                    &ethpb.Eth1Data{},
		Eth1DataVotes:               make([]*ethpb.Eth1Data, 0),
		Validators:                  make([]*ethpb.Validator, 0),
		Balances:                    make([]uint64, 0),
		RandaoMixes:                 make([][32]byte, cfg.EpochsPerHistoricalVector),
		Slashings:                   make([]uint64, cfg.EpochsPerSlashingsVector),
		PreviousEpochAttestations:   make([]*ethpb.PendingAttestation, 0),
		CurrentEpochAttestations:    make([]*ethpb.PendingAttestation, 0),
		JustificationBits:           bitfield.NewBitvector4(),
		PreviousJustifiedCheckpoint: &ethpb.Checkpoint{},
		CurrentJustifiedCheckpoint:  &ethpb.Checkpoint{},
		FinalizedCheckpoint:         &ethpb.Checkpoint{},
	}
	for _, opt := range options {
		if err := opt(seed); err != nil {
			return nil, err
		}
	}
	return v1.InitializeFromProtoUnsafe(seed)
}

package blocks_test

import (
	"context"
	"testing"

	"github.com/prysmaticlabs/gasper/beacon-chain/core/blocks"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/crypto/bls"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
	"github.com/prysmaticlabs/gasper/testing/util"
)

func exitableState(t *testing.T) state.BeaconState {
	beaconState := util.DeterministicGenesisState(t, 64)
	slot, err := helpers.StartSlot(params.BeaconConfig().ShardCommitteePeriod)
	require.NoError(t, err)
	require.NoError(t, beaconState.SetSlot(slot))
	return beaconState
}

func signedExit(idx types.ValidatorIndex, epoch types.Epoch) *ethpb.SignedVoluntaryExit {
	return &ethpb.SignedVoluntaryExit{Exit: &ethpb.VoluntaryExit{ValidatorIndex: idx, Epoch: epoch}}
}

func TestProcessVoluntaryExits_InitiatesExit(t *testing.T) {
	params.SetupMinimalConfig(t)
	beaconState := exitableState(t)
	pre := beaconState.Copy()

	newState, err := blocks.ProcessVoluntaryExits(context.Background(), beaconState, []*ethpb.SignedVoluntaryExit{signedExit(3, 0)}, bls.AlwaysValid{})
	require.NoError(t, err)
	val, err := newState.ValidatorAtIndex(3)
	require.NoError(t, err)
	want := helpers.ActivationExitEpoch(helpers.CurrentEpoch(beaconState))
	assert.Equal(t, want, val.ExitEpoch)
	assert.Equal(t, want+params.BeaconConfig().MinValidatorWithdrawabilityDelay, val.WithdrawableEpoch)
	assertStageFieldsPreserved(t, pre, newState)
}

func TestProcessVoluntaryExits_Conditions(t *testing.T) {
	params.SetupMinimalConfig(t)
	tests := []struct {
		name    string
		setup   func(st state.BeaconState)
		exits   []*ethpb.SignedVoluntaryExit
		wantErr string
	}{
		{
			name:    "future exit epoch",
			exits:   []*ethpb.SignedVoluntaryExit{signedExit(3, 1000)},
			wantErr: "expected current epoch >= exit epoch",
		},
		{
			name: "not active long enough",
			setup: func(st state.BeaconState) {
				require.NoError(t, st.SetSlot(params.BeaconConfig().SlotsPerEpoch))
			},
			exits:   []*ethpb.SignedVoluntaryExit{signedExit(3, 0)},
			wantErr: "validator has not been active long enough to exit",
		},
		{
			name: "already exiting",
			setup: func(st state.BeaconState) {
				val, err := st.ValidatorAtIndex(3)
				require.NoError(t, err)
				val.ExitEpoch = 1000
				require.NoError(t, st.UpdateValidatorAtIndex(3, val))
			},
			exits:   []*ethpb.SignedVoluntaryExit{signedExit(3, 0)},
			wantErr: "validator has already initiated an exit",
		},
		{
			name:    "duplicate in batch",
			exits:   []*ethpb.SignedVoluntaryExit{signedExit(3, 0), signedExit(3, 0)},
			wantErr: "duplicate validator index in batch",
		},
		{
			name:    "unknown validator",
			exits:   []*ethpb.SignedVoluntaryExit{signedExit(640, 0)},
			wantErr: "out of range",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			beaconState := exitableState(t)
			if tt.setup != nil {
				tt.setup(beaconState)
			}
			_, err := blocks.ProcessVoluntaryExits(context.Background(), beaconState, tt.exits, bls.AlwaysValid{})
			require.ErrorContains(t, tt.wantErr, err)
		})
	}
}

func TestProcessBLSToExecutionChanges(t *testing.T) {
	params.SetupMinimalConfig(t)
	beaconState := util.DeterministicGenesisState(t, 64)
	address := [20]byte{1, 2, 3, 4}
	change := &ethpb.SignedBLSToExecutionChange{
		Message: &ethpb.BLSToExecutionChange{
			ValidatorIndex:     9,
			FromBlsPubkey:      util.PubkeyForIndex(9),
			ToExecutionAddress: address,
		},
	}
	pre := beaconState.Copy()
	newState, err := blocks.ProcessBLSToExecutionChanges(context.Background(), beaconState, []*ethpb.SignedBLSToExecutionChange{change}, bls.AlwaysValid{})
	require.NoError(t, err)
	val, err := newState.ValidatorAtIndex(9)
	require.NoError(t, err)
	var want [32]byte
	want[0] = params.BeaconConfig().ETH1AddressWithdrawalPrefixByte
	copy(want[12:], address[:])
	assert.Equal(t, want, val.WithdrawalCredentials)
	assertStageFieldsPreserved(t, pre, newState)

	// A second rotation finds execution credentials.
	_, err = blocks.ProcessBLSToExecutionChanges(context.Background(), newState, []*ethpb.SignedBLSToExecutionChange{change}, bls.AlwaysValid{})
	require.ErrorContains(t, "withdrawal credential prefix is not a BLS prefix", err)
}

func TestProcessBLSToExecutionChanges_WrongKey(t *testing.T) {
	params.SetupMinimalConfig(t)
	beaconState := util.DeterministicGenesisState(t, 64)
	change := &ethpb.SignedBLSToExecutionChange{
		Message: &ethpb.BLSToExecutionChange{
			ValidatorIndex: 9,
			FromBlsPubkey:  util.PubkeyForIndex(10),
		},
	}
	_, err := blocks.ProcessBLSToExecutionChanges(context.Background(), beaconState, []*ethpb.SignedBLSToExecutionChange{change}, bls.AlwaysValid{})
	require.ErrorContains(t, "withdrawal credentials do not match", err)
}

package blocks_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/blocks"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/signing"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/crypto/bls"
	"github.com/prysmaticlabs/gasper/crypto/bls/mock"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
	"github.com/prysmaticlabs/gasper/testing/util"
	"github.com/prysmaticlabs/go-bitfield"
)

func attestationAtSlot(t *testing.T, st state.ReadOnlyBeaconState, slot types.Slot, positions ...uint64) *ethpb.Attestation {
	bits := bitfield.NewBitlist(uint64(st.NumValidators()))
	for _, p := range positions {
		bits.SetBitAt(p, true)
	}
	return &ethpb.Attestation{
		AggregationBits: bits,
		Data: &ethpb.AttestationData{
			Slot:   slot,
			Source: st.CurrentJustifiedCheckpoint(),
			Target: &ethpb.Checkpoint{Epoch: 0, Root: [32]byte{'t'}},
		},
	}
}

func TestProcessAttestations_AppendsPendingAttestation(t *testing.T) {
	params.SetupMinimalConfig(t)
	beaconState := util.DeterministicGenesisState(t, 64)
	require.NoError(t, beaconState.SetSlot(3))
	att := attestationAtSlot(t, beaconState, 1, 0, 5, 9)
	pre := beaconState.Copy()

	newState, err := blocks.ProcessAttestations(context.Background(), beaconState, []*ethpb.Attestation{att}, bls.AlwaysValid{})
	require.NoError(t, err)
	pending := newState.CurrentEpochAttestations()
	require.Equal(t, 1, len(pending))
	assert.Equal(t, types.Slot(2), pending[0].InclusionDelay)
	assert.Equal(t, types.ValidatorIndex(3), pending[0].ProposerIndex)
	assert.DeepEqual(t, att.Data, pending[0].Data)
	assert.DeepEqual(t, att.AggregationBits, pending[0].AggregationBits)
	assert.Equal(t, 0, len(newState.PreviousEpochAttestations()))
	assertStageFieldsPreserved(t, pre, newState)
}

func TestProcessAttestations_PreviousEpochTarget(t *testing.T) {
	params.SetupMinimalConfig(t)
	beaconState := util.DeterministicGenesisState(t, 64)
	require.NoError(t, beaconState.SetSlot(params.BeaconConfig().SlotsPerEpoch+2))
	att := attestationAtSlot(t, beaconState, 7, 1)
	att.Data.Source = beaconState.PreviousJustifiedCheckpoint()

	newState, err := blocks.ProcessAttestations(context.Background(), beaconState, []*ethpb.Attestation{att}, bls.AlwaysValid{})
	require.NoError(t, err)
	assert.Equal(t, 1, len(newState.PreviousEpochAttestations()))
	assert.Equal(t, 0, len(newState.CurrentEpochAttestations()))
}

func TestProcessAttestations_InvalidData(t *testing.T) {
	params.SetupMinimalConfig(t)
	tests := []struct {
		name    string
		slot    types.Slot
		mutate  func(att *ethpb.Attestation)
		wantErr string
	}{
		{
			name:    "too early",
			slot:    1,
			mutate:  func(att *ethpb.Attestation) {},
			wantErr: "attestation slot 1 + inclusion delay 1 > state slot 1",
		},
		{
			name:    "wrong source",
			slot:    3,
			mutate:  func(att *ethpb.Attestation) { att.Data.Source = &ethpb.Checkpoint{Epoch: 0, Root: [32]byte{'x'}} },
			wantErr: "source check point not equal to current justified checkpoint",
		},
		{
			name:    "nonzero committee index",
			slot:    3,
			mutate:  func(att *ethpb.Attestation) { att.Data.CommitteeIndex = 1 },
			wantErr: "committee index 1 >= committee count 1",
		},
		{
			name:    "bitfield length",
			slot:    3,
			mutate:  func(att *ethpb.Attestation) { att.AggregationBits = bitfield.NewBitlist(10) },
			wantErr: "bitfield length 10 is not equal to committee length 64",
		},
		{
			name: "empty participation",
			slot: 3,
			mutate: func(att *ethpb.Attestation) {
				att.AggregationBits = bitfield.NewBitlist(64)
			},
			wantErr: "expected non-empty attesting indices",
		},
		{
			name:    "future target",
			slot:    3,
			mutate:  func(att *ethpb.Attestation) { att.Data.Target.Epoch = 2 },
			wantErr: "expected target epoch (2) to be the previous epoch (0) or the current epoch (0)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			beaconState := util.DeterministicGenesisState(t, 64)
			require.NoError(t, beaconState.SetSlot(tt.slot))
			att := attestationAtSlot(t, beaconState, 1, 2)
			tt.mutate(att)
			_, err := blocks.ProcessAttestations(context.Background(), beaconState, []*ethpb.Attestation{att}, bls.AlwaysValid{})
			require.ErrorContains(t, tt.wantErr, err)
		})
	}
}

func TestProcessAttestations_BadSignature(t *testing.T) {
	params.SetupMinimalConfig(t)
	ctrl := gomock.NewController(t)
	verifier := mock.NewMockSignatureVerifier(ctrl)
	verifier.EXPECT().FastAggregateVerify(gomock.Len(2), gomock.Any(), gomock.Any()).Return(false, nil)

	beaconState := util.DeterministicGenesisState(t, 64)
	require.NoError(t, beaconState.SetSlot(3))
	att := attestationAtSlot(t, beaconState, 1, 4, 6)

	newState, err := blocks.ProcessAttestations(context.Background(), beaconState, []*ethpb.Attestation{att}, verifier)
	require.ErrorIs(t, err, signing.ErrSigFailedToVerify)
	assert.Equal(t, 0, len(newState.CurrentEpochAttestations()))
}

func TestProcessAttesterSlashings_DoubleVote(t *testing.T) {
	params.SetupMinimalConfig(t)
	beaconState := util.DeterministicGenesisState(t, 64)
	data1 := &ethpb.AttestationData{
		Source: &ethpb.Checkpoint{},
		Target: &ethpb.Checkpoint{Epoch: 0, Root: [32]byte{'a'}},
	}
	data2 := ethpb.CopyAttestationData(data1)
	data2.Target.Root = [32]byte{'b'}
	slashing := &ethpb.AttesterSlashing{
		Attestation_1: &ethpb.IndexedAttestation{AttestingIndices: []types.ValidatorIndex{1, 2, 3}, Data: data1},
		Attestation_2: &ethpb.IndexedAttestation{AttestingIndices: []types.ValidatorIndex{2, 3, 4}, Data: data2},
	}
	assert.DeepEqual(t, []types.ValidatorIndex{2, 3}, blocks.SlashableAttesterIndices(slashing))

	pre := beaconState.Copy()
	newState, err := blocks.ProcessAttesterSlashings(context.Background(), beaconState, []*ethpb.AttesterSlashing{slashing}, bls.AlwaysValid{})
	require.NoError(t, err)
	for idx, want := range map[types.ValidatorIndex]bool{1: false, 2: true, 3: true, 4: false} {
		val, err := newState.ValidatorAtIndex(idx)
		require.NoError(t, err)
		assert.Equal(t, want, val.Slashed, "validator %d", idx)
	}
	assertStageFieldsPreserved(t, pre, newState)
}

func TestProcessAttesterSlashings_NotSlashable(t *testing.T) {
	params.SetupMinimalConfig(t)
	beaconState := util.DeterministicGenesisState(t, 64)
	data := &ethpb.AttestationData{
		Source: &ethpb.Checkpoint{},
		Target: &ethpb.Checkpoint{Epoch: 0, Root: [32]byte{'a'}},
	}
	slashing := &ethpb.AttesterSlashing{
		Attestation_1: &ethpb.IndexedAttestation{AttestingIndices: []types.ValidatorIndex{1}, Data: data},
		Attestation_2: &ethpb.IndexedAttestation{AttestingIndices: []types.ValidatorIndex{1}, Data: ethpb.CopyAttestationData(data)},
	}
	_, err := blocks.ProcessAttesterSlashings(context.Background(), beaconState, []*ethpb.AttesterSlashing{slashing}, bls.AlwaysValid{})
	require.ErrorContains(t, "attestations are not slashable", err)
}

func TestProcessAttesterSlashings_UnsortedIndices(t *testing.T) {
	params.SetupMinimalConfig(t)
	beaconState := util.DeterministicGenesisState(t, 64)
	data1 := &ethpb.AttestationData{
		Source: &ethpb.Checkpoint{Epoch: 0},
		Target: &ethpb.Checkpoint{Epoch: 3},
	}
	data2 := &ethpb.AttestationData{
		Source: &ethpb.Checkpoint{Epoch: 1},
		Target: &ethpb.Checkpoint{Epoch: 2},
	}
	slashing := &ethpb.AttesterSlashing{
		Attestation_1: &ethpb.IndexedAttestation{AttestingIndices: []types.ValidatorIndex{3, 1}, Data: data1},
		Attestation_2: &ethpb.IndexedAttestation{AttestingIndices: []types.ValidatorIndex{1, 3}, Data: data2},
	}
	_, err := blocks.ProcessAttesterSlashings(context.Background(), beaconState, []*ethpb.AttesterSlashing{slashing}, bls.AlwaysValid{})
	require.ErrorContains(t, "attesting indices is not uniquely sorted", err)
}

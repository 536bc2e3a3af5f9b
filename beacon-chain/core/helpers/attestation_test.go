package helpers_test

import (
	"testing"

	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
	"github.com/prysmaticlabs/go-bitfield"
)

func TestValidateNilAttestation(t *testing.T) {
	tests := []struct {
		name    string
		att     *ethpb.Attestation
		wantErr string
	}{
		{name: "nil attestation", att: nil, wantErr: "nil attestation"},
		{name: "nil data", att: &ethpb.Attestation{}, wantErr: "nil attestation"},
		{
			name:    "nil target",
			att:     &ethpb.Attestation{Data: &ethpb.AttestationData{Source: &ethpb.Checkpoint{}}},
			wantErr: "nil source or target checkpoint",
		},
		{
			name: "nil bitfield",
			att: &ethpb.Attestation{Data: &ethpb.AttestationData{
				Source: &ethpb.Checkpoint{},
				Target: &ethpb.Checkpoint{},
			}},
			wantErr: "attestation's bitfield can't be nil",
		},
		{
			name: "good attestation",
			att: &ethpb.Attestation{
				AggregationBits: bitfield.NewBitlist(1),
				Data: &ethpb.AttestationData{
					Source: &ethpb.Checkpoint{},
					Target: &ethpb.Checkpoint{},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := helpers.ValidateNilAttestation(tt.att)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, tt.wantErr, err)
		})
	}
}

func TestIsValidIndexedAttestationStructure(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	cfg := params.MinimalSpecConfig()
	cfg.MaxValidatorsPerCommittee = 3
	params.OverrideBeaconConfig(cfg)

	data := &ethpb.AttestationData{Source: &ethpb.Checkpoint{}, Target: &ethpb.Checkpoint{}}
	tests := []struct {
		name    string
		indices []types.ValidatorIndex
		wantErr string
	}{
		{name: "empty", indices: nil, wantErr: "expected non-empty attesting indices"},
		{name: "too many", indices: []types.ValidatorIndex{1, 2, 3, 4}, wantErr: "exceeds MAX_VALIDATORS_PER_COMMITTEE, 4 > 3"},
		{name: "unsorted", indices: []types.ValidatorIndex{2, 1}, wantErr: "not uniquely sorted"},
		{name: "duplicate", indices: []types.ValidatorIndex{1, 1}, wantErr: "not uniquely sorted"},
		{name: "valid", indices: []types.ValidatorIndex{0, 4, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := helpers.IsValidIndexedAttestationStructure(&ethpb.IndexedAttestation{
				AttestingIndices: tt.indices,
				Data:             data,
			})
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, tt.wantErr, err)
		})
	}
	require.ErrorIs(t, helpers.IsValidIndexedAttestationStructure(&ethpb.IndexedAttestation{}), helpers.ErrNilAttestation)
}

func TestIsSlashableAttestationData(t *testing.T) {
	data := func(source, target types.Epoch, root byte) *ethpb.AttestationData {
		return &ethpb.AttestationData{
			BeaconBlockRoot: [32]byte{root},
			Source:          &ethpb.Checkpoint{Epoch: source},
			Target:          &ethpb.Checkpoint{Epoch: target, Root: [32]byte{root}},
		}
	}
	tests := []struct {
		name  string
		a, b  *ethpb.AttestationData
		slash bool
	}{
		{name: "identical votes", a: data(1, 2, 1), b: data(1, 2, 1), slash: false},
		{name: "double vote", a: data(1, 2, 1), b: data(1, 2, 2), slash: true},
		{name: "surround vote", a: data(0, 5, 1), b: data(1, 4, 2), slash: true},
		{name: "surrounded is not ordered", a: data(1, 4, 2), b: data(0, 5, 1), slash: false},
		{name: "shared source", a: data(1, 5, 1), b: data(1, 4, 2), slash: false},
		{name: "disjoint spans", a: data(0, 1, 1), b: data(2, 3, 2), slash: false},
		{name: "nil data", a: nil, b: data(0, 1, 1), slash: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.slash, helpers.IsSlashableAttestationData(tt.a, tt.b))
		})
	}
}

func TestAttestationDataEqual(t *testing.T) {
	a := &ethpb.AttestationData{Slot: 3, Source: &ethpb.Checkpoint{}, Target: &ethpb.Checkpoint{Epoch: 1}}
	b := ethpb.CopyAttestationData(a)
	assert.Equal(t, true, helpers.AttestationDataEqual(a, b))
	b.Target.Root = [32]byte{1}
	assert.Equal(t, false, helpers.AttestationDataEqual(a, b))
	b.Target = nil
	assert.Equal(t, false, helpers.AttestationDataEqual(a, b))
	assert.Equal(t, true, helpers.AttestationDataEqual(nil, nil))
}

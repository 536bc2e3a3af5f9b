package gasper_test

import (
	"testing"

	"github.com/prysmaticlabs/gasper/beacon-chain/forkchoice/gasper"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
)

func TestLatestJustified(t *testing.T) {
	b, cps := linearChain(t)
	b.Supermajority(cps[0], cps[1])
	b.Supermajority(cps[1], cps[3])
	snap := b.Snapshot()

	tests := []struct {
		epoch types.Epoch
		want  *ethpb.Checkpoint
	}{
		{epoch: 0, want: cps[0]},
		{epoch: 1, want: cps[1]},
		{epoch: 2, want: cps[1]},
		{epoch: 3, want: cps[3]},
		{epoch: 6, want: cps[3]},
	}
	for _, tt := range tests {
		got, err := snap.LatestJustified(cps[4].Root, tt.epoch)
		require.NoError(t, err)
		assert.DeepEqual(t, tt.want, got, "epoch %d", tt.epoch)
	}

	_, err := snap.LatestJustified([32]byte{'z'}, 1)
	requireStructural(t, err, [32]byte{'z'}, gasper.ErrUnknownRoot)
}

func TestValidateAttestation(t *testing.T) {
	b, cps := linearChain(t)
	b.Supermajority(cps[0], cps[1])
	snap := b.Snapshot()
	spe := params.BeaconConfig().SlotsPerEpoch

	valid := func() *ethpb.AttestationData {
		return &ethpb.AttestationData{
			Slot:            2*spe + 3,
			BeaconBlockRoot: cps[2].Root,
			Source:          ethpb.CopyCheckpoint(cps[1]),
			Target:          ethpb.CopyCheckpoint(cps[2]),
		}
	}
	require.NoError(t, snap.ValidateAttestation(valid()))
	require.NoError(t, snap.ValidateAttestation(&ethpb.AttestationData{
		Slot:            2,
		BeaconBlockRoot: cps[0].Root,
		Source:          cps[0],
		Target:          cps[0],
	}))

	tests := []struct {
		name   string
		modify func(d *ethpb.AttestationData)
		want   string
	}{
		{name: "nil target", modify: func(d *ethpb.AttestationData) { d.Target = nil }, want: "nil attestation data"},
		{name: "committee index", modify: func(d *ethpb.AttestationData) { d.CommitteeIndex = 1 }, want: "committee index 1 is not 0"},
		{name: "target epoch", modify: func(d *ethpb.AttestationData) { d.Slot = 3 * spe }, want: "does not match slot epoch"},
		{name: "unknown head", modify: func(d *ethpb.AttestationData) { d.BeaconBlockRoot = [32]byte{'h'} }, want: "unknown head block"},
		{name: "head after slot", modify: func(d *ethpb.AttestationData) {
			d.Slot = 2 * spe
			d.BeaconBlockRoot = cps[3].Root
		}, want: "is after attestation slot"},
		{name: "target not boundary", modify: func(d *ethpb.AttestationData) { d.Target.Root = cps[1].Root }, want: "is not the boundary checkpoint"},
		{name: "stale source", modify: func(d *ethpb.AttestationData) { d.Source = ethpb.CopyCheckpoint(cps[0]) }, want: "is not the latest justified checkpoint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid()
			tt.modify(d)
			err := snap.ValidateAttestation(d)
			require.ErrorIs(t, err, gasper.ErrInvalidAttestation)
			assert.ErrorContains(t, tt.want, err)
		})
	}
}

func TestValidateAttestation_EpochHorizon(t *testing.T) {
	b, cps := linearChain(t)
	snap := b.Snapshot()

	last := ^types.Slot(0)
	lastEpoch := types.Epoch(uint64(last) / uint64(params.BeaconConfig().SlotsPerEpoch))
	err := snap.ValidateAttestation(&ethpb.AttestationData{
		Slot:            last,
		BeaconBlockRoot: cps[4].Root,
		Source:          ethpb.CopyCheckpoint(cps[0]),
		Target:          &ethpb.Checkpoint{Epoch: lastEpoch, Root: cps[4].Root},
	})
	require.ErrorIs(t, err, gasper.ErrInvalidAttestation)
	assert.ErrorContains(t, "epoch beyond horizon", err)

	cfg := params.BeaconConfig().Copy()
	cfg.MaxEpochHorizon = 5
	params.OverrideBeaconConfig(cfg)
	spe := cfg.SlotsPerEpoch
	data := func(epoch types.Epoch) *ethpb.AttestationData {
		return &ethpb.AttestationData{
			Slot:            types.Slot(uint64(epoch) * uint64(spe)),
			BeaconBlockRoot: cps[4].Root,
			Source:          ethpb.CopyCheckpoint(cps[0]),
			Target:          &ethpb.Checkpoint{Epoch: epoch, Root: cps[4].Root},
		}
	}
	require.NoError(t, snap.ValidateAttestation(data(5)))
	err = snap.ValidateAttestation(data(6))
	require.ErrorIs(t, err, gasper.ErrInvalidAttestation)
	assert.ErrorContains(t, "epoch 6 exceeds 5", err)
}

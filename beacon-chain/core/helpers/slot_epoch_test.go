package helpers_test

import (
	"math"
	"testing"

	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
	"github.com/prysmaticlabs/gasper/testing/util"
)

func TestSlotToEpoch_OK(t *testing.T) {
	params.SetupMinimalConfig(t)
	tests := []struct {
		slot  types.Slot
		epoch types.Epoch
	}{
		{slot: 0, epoch: 0},
		{slot: 7, epoch: 0},
		{slot: 8, epoch: 1},
		{slot: 17, epoch: 2},
		{slot: 200, epoch: 25},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.epoch, helpers.SlotToEpoch(tt.slot), "SlotToEpoch(%d)", tt.slot)
	}
}

func TestEpochBoundaries(t *testing.T) {
	params.SetupMinimalConfig(t)
	assert.Equal(t, true, helpers.IsEpochStart(0))
	assert.Equal(t, true, helpers.IsEpochStart(16))
	assert.Equal(t, false, helpers.IsEpochStart(15))
	assert.Equal(t, true, helpers.IsEpochEnd(15))
	assert.Equal(t, false, helpers.IsEpochEnd(16))
}

func TestStartSlot(t *testing.T) {
	params.SetupMinimalConfig(t)
	s, err := helpers.StartSlot(3)
	require.NoError(t, err)
	assert.Equal(t, types.Slot(24), s)

	_, err = helpers.StartSlot(math.MaxUint64)
	require.ErrorContains(t, "start slot calculation overflows", err)
}

func TestCurrentPrevNextEpoch(t *testing.T) {
	params.SetupMinimalConfig(t)
	st, err := util.NewBeaconState(func(s *ethpb.BeaconState) error {
		s.Slot = 5
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, types.Epoch(0), helpers.CurrentEpoch(st))
	assert.Equal(t, types.Epoch(0), helpers.PrevEpoch(st), "previous epoch must not underflow")
	assert.Equal(t, types.Epoch(1), helpers.NextEpoch(st))

	require.NoError(t, st.SetSlot(41))
	assert.Equal(t, types.Epoch(5), helpers.CurrentEpoch(st))
	assert.Equal(t, types.Epoch(4), helpers.PrevEpoch(st))
	assert.Equal(t, types.Epoch(6), helpers.NextEpoch(st))
}

package blocks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/blocks"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/crypto/bls"
	"github.com/prysmaticlabs/gasper/crypto/bls/mock"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
	"github.com/prysmaticlabs/gasper/testing/util"
)

// stateWithPendingDeposits returns a genesis state of numValidators whose
// eth1 data commits to numPending further deposits, and those deposits.
func stateWithPendingDeposits(t *testing.T, numValidators, numPending uint64) (state.BeaconState, []*ethpb.Deposit) {
	beaconState := util.DeterministicGenesisState(t, numValidators)
	data := util.DeterministicDepositData(0, numValidators+numPending)
	tr := util.DepositTrie(t, data)
	require.NoError(t, beaconState.SetEth1Data(util.Eth1DataForTrie(tr)))
	return beaconState, util.DepositsFromTrie(t, tr, data, numValidators, numValidators+numPending)
}

func TestProcessDeposits_AddsValidators(t *testing.T) {
	params.SetupMinimalConfig(t)
	beaconState, deposits := stateWithPendingDeposits(t, 64, 2)

	newState, err := blocks.ProcessDeposits(context.Background(), beaconState, deposits, bls.AlwaysValid{})
	require.NoError(t, err)
	assert.Equal(t, 66, newState.NumValidators())
	assert.Equal(t, 66, newState.BalancesLength())
	assert.Equal(t, uint64(66), newState.Eth1DepositIndex())

	val, err := newState.ValidatorAtIndex(65)
	require.NoError(t, err)
	assert.Equal(t, util.PubkeyForIndex(65), val.PublicKey)
	assert.Equal(t, params.BeaconConfig().FarFutureEpoch, val.ActivationEpoch)
	assert.Equal(t, params.BeaconConfig().MaxEffectiveBalance, val.EffectiveBalance)
	assert.Equal(t, beaconState.Slot(), newState.Slot())
	assert.DeepEqual(t, beaconState.LatestBlockHeader(), newState.LatestBlockHeader())
}

func TestProcessDeposits_TopUpExistingValidator(t *testing.T) {
	params.SetupMinimalConfig(t)
	beaconState := util.DeterministicGenesisState(t, 64)
	data := util.DeterministicDepositData(0, 64)
	topUp := util.DeterministicDepositData(7, 1)[0]
	topUp.Amount = 1e9
	data = append(data, topUp)
	tr := util.DepositTrie(t, data)
	require.NoError(t, beaconState.SetEth1Data(util.Eth1DataForTrie(tr)))
	deposits := util.DepositsFromTrie(t, tr, data, 64, 65)

	newState, err := blocks.ProcessDeposits(context.Background(), beaconState, deposits, bls.AlwaysValid{})
	require.NoError(t, err)
	assert.Equal(t, 64, newState.NumValidators())
	bal, err := newState.BalanceAtIndex(7)
	require.NoError(t, err)
	assert.Equal(t, params.BeaconConfig().MaxEffectiveBalance+1e9, bal)
}

func TestProcessDeposits_InvalidSignatureConsumesDeposit(t *testing.T) {
	params.SetupMinimalConfig(t)
	ctrl := gomock.NewController(t)
	verifier := mock.NewMockSignatureVerifier(ctrl)
	verifier.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	beaconState, deposits := stateWithPendingDeposits(t, 64, 1)

	newState, err := blocks.ProcessDeposits(context.Background(), beaconState, deposits, verifier)
	require.NoError(t, err)
	assert.Equal(t, 64, newState.NumValidators())
	assert.Equal(t, uint64(65), newState.Eth1DepositIndex())
}

func TestProcessDeposits_BadProof(t *testing.T) {
	params.SetupMinimalConfig(t)
	beaconState, deposits := stateWithPendingDeposits(t, 64, 2)
	deposits[1].Proof[3] = [32]byte{'x'}

	newState, err := blocks.ProcessDeposits(context.Background(), beaconState, deposits, bls.AlwaysValid{})
	var opErr *blocks.OperationError
	require.Equal(t, true, errors.As(err, &opErr))
	assert.Equal(t, 1, opErr.Index)
	require.ErrorContains(t, "deposit merkle branch of deposit root did not verify", err)
	// The first deposit stays applied.
	assert.Equal(t, 65, newState.NumValidators())
	assert.Equal(t, uint64(65), newState.Eth1DepositIndex())
}

func TestProcessDeposits_MissingDeposits(t *testing.T) {
	params.SetupMinimalConfig(t)
	beaconState, deposits := stateWithPendingDeposits(t, 64, 3)

	_, err := blocks.ProcessDeposits(context.Background(), beaconState, deposits[:2], bls.AlwaysValid{})
	require.ErrorContains(t, "incorrect outstanding deposits in block body, wanted: 3, got: 2", err)
}

func TestProcessDeposits_OutOfOrder(t *testing.T) {
	params.SetupMinimalConfig(t)
	beaconState, deposits := stateWithPendingDeposits(t, 64, 2)
	deposits[0], deposits[1] = deposits[1], deposits[0]

	_, err := blocks.ProcessDeposits(context.Background(), beaconState, deposits, bls.AlwaysValid{})
	require.ErrorContains(t, "deposit merkle branch of deposit root did not verify", err)
}

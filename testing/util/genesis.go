package util

import (
	"testing"

	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/encoding/ssz"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/require"
)

// DeterministicGenesisState returns a genesis state with numValidators
// validators, all active from epoch 0 at the maximum effective balance.
// The eth1 data commits to their deposits, all of which are consumed.
func DeterministicGenesisState(t testing.TB, numValidators uint64) state.BeaconState {
	data := DeterministicDepositData(0, numValidators)
	tr := DepositTrie(t, data)
	cfg := params.BeaconConfig()

	validators := make([]*ethpb.Validator, numValidators)
	balances := make([]uint64, numValidators)
	roots := make([][32]byte, numValidators)
	for i, d := range data {
		validators[i] = &ethpb.Validator{
			PublicKey:                  d.PublicKey,
			WithdrawalCredentials:      d.WithdrawalCredentials,
			EffectiveBalance:           cfg.MaxEffectiveBalance,
			ActivationEligibilityEpoch: cfg.GenesisEpoch,
			ActivationEpoch:            cfg.GenesisEpoch,
			ExitEpoch:                  cfg.FarFutureEpoch,
			WithdrawableEpoch:          cfg.FarFutureEpoch,
		}
		balances[i] = d.Amount
		root, err := validators[i].HashTreeRoot()
		require.NoError(t, err)
		roots[i] = root
	}
	gvr, err := ssz.MerkleizeListRoots(roots, cfg.ValidatorRegistryLimit)
	require.NoError(t, err)

	st, err := NewBeaconState(func(s *ethpb.BeaconState) error {
		s.GenesisValidatorsRoot = gvr
		s.Validators = validators
		s.Balances = balances
		s.Eth1Data = Eth1DataForTrie(tr)
		s.Eth1DepositIndex = numValidators
		return nil
	})
	require.NoError(t, err)
	return st
}

// GenesisBlock returns the slot 0 block whose header matches the genesis
// state's latest block header once its state root is filled in.
func GenesisBlock(stateRoot [32]byte) *ethpb.SignedBeaconBlock {
	return &ethpb.SignedBeaconBlock{
		Block: &ethpb.BeaconBlock{
			StateRoot: stateRoot,
			Body:      &ethpb.BeaconBlockBody{Eth1Data: &ethpb.Eth1Data{}},
		},
	}
}

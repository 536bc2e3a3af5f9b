package blocks

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/signing"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/container/trie"
	"github.com/prysmaticlabs/gasper/crypto/bls"
	"github.com/prysmaticlabs/gasper/encoding/bytesutil"
	"github.com/prysmaticlabs/gasper/math"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

// ProcessDeposits processes the block's deposits in order. The block must
// carry every pending deposit up to MaxDeposits.
func ProcessDeposits(
	ctx context.Context,
	beaconState state.BeaconState,
	deposits []*ethpb.Deposit,
	verifier bls.SignatureVerifier,
) (state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.ProcessDeposits")
	defer span.End()

	if err := checkBatch[*ethpb.Deposit](OpDeposit, deposits, params.BeaconConfig().MaxDeposits, nil); err != nil {
		return beaconState, err
	}
	if err := verifyDepositCount(beaconState, len(deposits)); err != nil {
		return beaconState, err
	}
	return processBatch(ctx, beaconState, OpDeposit, deposits, true,
		func(_ context.Context, st state.BeaconState, deposit *ethpb.Deposit) (state.BeaconState, error) {
			return ProcessDeposit(st, deposit, verifier)
		})
}

func verifyDepositCount(beaconState state.ReadOnlyBeaconState, count int) error {
	eth1Data := beaconState.Eth1Data()
	if eth1Data == nil {
		return errors.New("nil eth1 data in state")
	}
	pending, err := math.Sub64(eth1Data.DepositCount, beaconState.Eth1DepositIndex())
	if err != nil {
		return errors.Wrap(err, "eth1 deposit index is ahead of the deposit count")
	}
	want := math.Min(params.BeaconConfig().MaxDeposits, pending)
	if uint64(count) != want {
		return &OperationError{
			Operation: OpDeposit,
			Index:     count,
			Err:       errors.Errorf("incorrect outstanding deposits in block body, wanted: %d, got: %d", want, count),
		}
	}
	return nil
}

// ProcessDeposit takes in a deposit object and inserts it
// into the registry as a new validator or balance change.
// A deposit whose proof verifies but whose signature does not is consumed
// without effect.
func ProcessDeposit(beaconState state.BeaconState, deposit *ethpb.Deposit, verifier bls.SignatureVerifier) (state.BeaconState, error) {
	if err := verifyDeposit(beaconState, deposit); err != nil {
		if deposit == nil || deposit.Data == nil {
			return nil, err
		}
		return nil, errors.Wrapf(err, "could not verify deposit from %#x", bytesutil.Trunc(deposit.Data.PublicKey[:]))
	}
	if err := beaconState.SetEth1DepositIndex(beaconState.Eth1DepositIndex() + 1); err != nil {
		return nil, err
	}
	pubKey := deposit.Data.PublicKey
	amount := deposit.Data.Amount
	index, ok := beaconState.ValidatorIndexByPubkey(pubKey)
	if ok {
		if err := helpers.IncreaseBalance(beaconState, index, amount); err != nil {
			return nil, err
		}
		return beaconState, nil
	}

	valid, err := IsValidDepositSignature(deposit.Data, verifier)
	if err != nil {
		return nil, err
	}
	if !valid {
		log.WithField("publicKey", bytesutil.Trunc(pubKey[:])).Debug("Skipping deposit with invalid signature")
		return beaconState, nil
	}
	cfg := params.BeaconConfig()
	effectiveBalance := math.Min(amount-(amount%cfg.EffectiveBalanceIncrement), cfg.MaxEffectiveBalance)
	if err := beaconState.AppendValidator(&ethpb.Validator{
		PublicKey:                  pubKey,
		WithdrawalCredentials:      deposit.Data.WithdrawalCredentials,
		ActivationEligibilityEpoch: cfg.FarFutureEpoch,
		ActivationEpoch:            cfg.FarFutureEpoch,
		ExitEpoch:                  cfg.FarFutureEpoch,
		WithdrawableEpoch:          cfg.FarFutureEpoch,
		EffectiveBalance:           effectiveBalance,
	}); err != nil {
		return nil, err
	}
	if err := beaconState.AppendBalance(amount); err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"publicKey": bytesutil.Trunc(pubKey[:]),
		"amount":    amount,
	}).Debug("Added validator from deposit")
	return beaconState, nil
}

// IsValidDepositSignature checks the deposit message signature. Deposits
// are signed for the genesis fork on any chain.
func IsValidDepositSignature(data *ethpb.DepositData, verifier bls.SignatureVerifier) (bool, error) {
	domain, err := signing.ComputeDomain(
		params.BeaconConfig().DomainDeposit,
		bytesutil.ToBytes4(params.BeaconConfig().GenesisForkVersion),
		params.BeaconConfig().ZeroHash,
	)
	if err != nil {
		return false, err
	}
	msg := &ethpb.DepositMessage{
		PublicKey:             data.PublicKey,
		WithdrawalCredentials: data.WithdrawalCredentials,
		Amount:                data.Amount,
	}
	err = signing.VerifySigningRoot(verifier, msg, data.PublicKey[:], data.Signature[:], domain)
	if errors.Is(err, signing.ErrSigFailedToVerify) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// verifyDeposit checks the deposit's merkle branch against the deposit root
// of the state's eth1 data at the next deposit index.
func verifyDeposit(beaconState state.ReadOnlyBeaconState, deposit *ethpb.Deposit) error {
	if deposit == nil || deposit.Data == nil {
		return errors.New("received nil deposit or nil deposit data")
	}
	eth1Data := beaconState.Eth1Data()
	if eth1Data == nil {
		return errors.New("received nil eth1data in the beacon state")
	}
	leaf, err := deposit.Data.HashTreeRoot()
	if err != nil {
		return errors.Wrap(err, "could not tree hash deposit data")
	}
	depth := params.BeaconConfig().DepositContractTreeDepth + 1
	if ok := trie.VerifyMerkleProofWithDepth(
		eth1Data.DepositRoot,
		leaf,
		beaconState.Eth1DepositIndex(),
		deposit.Proof,
		depth,
	); !ok {
		return errors.Errorf(
			"deposit merkle branch of deposit root did not verify for root: %#x",
			eth1Data.DepositRoot,
		)
	}
	return nil
}

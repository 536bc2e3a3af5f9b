package blocks

import (
	"bytes"
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/signing"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/crypto/bls"
	"github.com/prysmaticlabs/gasper/crypto/hash"
	"github.com/prysmaticlabs/gasper/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"go.opencensus.io/trace"
)

var (
	errInvalidBLSPrefix     = errors.New("withdrawal credential prefix is not a BLS prefix")
	errInvalidWithdrawalKey = errors.New("withdrawal credentials do not match")
)

// ProcessBLSToExecutionChanges rotates validators from BLS withdrawal
// credentials to an execution address.
func ProcessBLSToExecutionChanges(
	ctx context.Context,
	beaconState state.BeaconState,
	changes []*ethpb.SignedBLSToExecutionChange,
	verifier bls.SignatureVerifier,
) (state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.ProcessBLSToExecutionChanges")
	defer span.End()

	if err := checkBatch(OpBLSToExecutionChange, changes, params.BeaconConfig().MaxBlsToExecutionChanges,
		func(c *ethpb.SignedBLSToExecutionChange) (types.ValidatorIndex, bool) {
			if c == nil || c.Message == nil {
				return 0, false
			}
			return c.Message.ValidatorIndex, true
		}); err != nil {
		return beaconState, err
	}
	return processBatch(ctx, beaconState, OpBLSToExecutionChange, changes, false,
		func(_ context.Context, st state.BeaconState, change *ethpb.SignedBLSToExecutionChange) (state.BeaconState, error) {
			return ProcessBLSToExecutionChange(st, change, verifier)
		})
}

// ProcessBLSToExecutionChange validates a SignedBLSToExecution message and
// changes the validator's withdrawal address accordingly.
func ProcessBLSToExecutionChange(
	st state.BeaconState,
	signed *ethpb.SignedBLSToExecutionChange,
	verifier bls.SignatureVerifier,
) (state.BeaconState, error) {
	val, err := ValidateBLSToExecutionChange(st, signed)
	if err != nil {
		return nil, err
	}
	if err := VerifyBLSChangeSignature(st, signed, verifier); err != nil {
		return nil, errors.Wrap(err, "could not verify BLS change signature")
	}
	message := signed.Message
	var creds [32]byte
	creds[0] = params.BeaconConfig().ETH1AddressWithdrawalPrefixByte
	copy(creds[12:], message.ToExecutionAddress[:])
	val.WithdrawalCredentials = creds
	if err := st.UpdateValidatorAtIndex(message.ValidatorIndex, val); err != nil {
		return nil, err
	}
	log.WithField("validatorIndex", message.ValidatorIndex).Debug("Changed withdrawal credentials to execution address")
	return st, nil
}

// ValidateBLSToExecutionChange validates the execution change message against the state and returns the
// validator referenced by the message.
func ValidateBLSToExecutionChange(st state.ReadOnlyBeaconState, signed *ethpb.SignedBLSToExecutionChange) (*ethpb.Validator, error) {
	if signed == nil || signed.Message == nil {
		return nil, errors.New("nil execution change message")
	}
	val, err := st.ValidatorAtIndex(signed.Message.ValidatorIndex)
	if err != nil {
		return nil, err
	}
	cred := val.WithdrawalCredentials
	if cred[0] != params.BeaconConfig().BLSWithdrawalPrefixByte {
		return nil, errInvalidBLSPrefix
	}
	digest := hash.Hash(signed.Message.FromBlsPubkey[:])
	if !bytes.Equal(digest[1:], cred[1:]) {
		return nil, errInvalidWithdrawalKey
	}
	return val, nil
}

// VerifyBLSChangeSignature checks the change's signature by the old BLS
// withdrawal key. The domain is pinned to the genesis fork.
func VerifyBLSChangeSignature(st state.ReadOnlyBeaconState, signed *ethpb.SignedBLSToExecutionChange, verifier bls.SignatureVerifier) error {
	cfg := params.BeaconConfig()
	domain, err := signing.ComputeDomain(cfg.DomainBLSToExecutionChange, bytesutil.ToBytes4(cfg.GenesisForkVersion), st.GenesisValidatorsRoot())
	if err != nil {
		return errors.Wrap(err, "could not compute signing domain")
	}
	return signing.VerifySigningRoot(verifier, signed.Message, signed.Message.FromBlsPubkey[:], signed.Signature[:], domain)
}

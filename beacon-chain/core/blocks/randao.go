package blocks

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
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

// ProcessRandao checks the block proposer's randao reveal against the
// current epoch and mixes its hash into the epoch's randao mix.
func ProcessRandao(
	ctx context.Context,
	beaconState state.BeaconState,
	body *ethpb.BeaconBlockBody,
	verifier bls.SignatureVerifier,
) (state.BeaconState, error) {
	_, span := trace.StartSpan(ctx, "core.ProcessRandao")
	defer span.End()

	if body == nil {
		return nil, ErrNilBlock
	}
	proposerIdx, err := helpers.BeaconProposerIndex(beaconState)
	if err != nil {
		return nil, errors.Wrap(err, "could not get beacon proposer index")
	}
	epoch := helpers.CurrentEpoch(beaconState)
	sszEpoch := types.SSZUint64(epoch)
	if err := signing.ComputeDomainVerifySigningRoot(
		verifier, beaconState, proposerIdx, epoch, &sszEpoch,
		params.BeaconConfig().DomainRandao, body.RandaoReveal[:],
	); err != nil {
		return nil, errors.Wrap(err, "could not verify block randao")
	}
	return ProcessRandaoNoVerify(beaconState, body.RandaoReveal)
}

// ProcessRandaoNoVerify mixes the reveal into the randao mix of the current
// epoch without checking its signature.
func ProcessRandaoNoVerify(beaconState state.BeaconState, reveal [96]byte) (state.BeaconState, error) {
	currentEpoch := helpers.CurrentEpoch(beaconState)
	latestMix, err := helpers.RandaoMix(beaconState, currentEpoch)
	if err != nil {
		return nil, err
	}
	mix := bytesutil.XorBytes32(latestMix, hash.Hash(reveal[:]))
	idx := uint64(currentEpoch % params.BeaconConfig().EpochsPerHistoricalVector)
	if err := beaconState.UpdateRandaoMixesAtIndex(idx, mix); err != nil {
		return nil, err
	}
	return beaconState, nil
}

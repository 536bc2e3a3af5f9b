// Package blocks contains the per-block processing stages of the state
// transition: the block header, randao and eth1 vote, followed by the
// operation batches in their fixed order.
package blocks

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/signing"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	"github.com/prysmaticlabs/gasper/crypto/bls"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"go.opencensus.io/trace"
)

// ErrNilBlock is returned for a nil signed block or a block without a body.
var ErrNilBlock = errors.New("nil block")

// VerifyNilBeaconBlock checks that a signed block and its inner fields are present.
func VerifyNilBeaconBlock(b *ethpb.SignedBeaconBlock) error {
	if b == nil || b.Block == nil || b.Block.Body == nil {
		return ErrNilBlock
	}
	if b.Block.Body.Eth1Data == nil {
		return errors.Wrap(ErrNilBlock, "nil eth1 data in block body")
	}
	return nil
}

// ProcessBlockHeader validates a block by its header and stores the header,
// with an empty state root, as the state's latest block header.
func ProcessBlockHeader(
	ctx context.Context,
	beaconState state.BeaconState,
	block *ethpb.SignedBeaconBlock,
	verifier bls.SignatureVerifier,
) (state.BeaconState, error) {
	_, span := trace.StartSpan(ctx, "core.ProcessBlockHeader")
	defer span.End()

	if err := VerifyNilBeaconBlock(block); err != nil {
		return nil, err
	}
	beaconState, err := ProcessBlockHeaderNoVerify(beaconState, block.Block)
	if err != nil {
		return nil, err
	}
	if err := VerifyBlockSignature(beaconState, block, verifier); err != nil {
		return nil, errors.Wrap(err, "could not verify block signature")
	}
	return beaconState, nil
}

// ProcessBlockHeaderNoVerify performs the header checks without the
// proposer signature.
func ProcessBlockHeaderNoVerify(beaconState state.BeaconState, block *ethpb.BeaconBlock) (state.BeaconState, error) {
	if block == nil || block.Body == nil {
		return nil, ErrNilBlock
	}
	if beaconState.Slot() != block.Slot {
		return nil, errors.Errorf("state slot: %d is different than block slot: %d", beaconState.Slot(), block.Slot)
	}
	idx, err := helpers.BeaconProposerIndex(beaconState)
	if err != nil {
		return nil, err
	}
	if block.ProposerIndex != idx {
		return nil, errors.Errorf("proposer index: %d is different than calculated: %d", block.ProposerIndex, idx)
	}
	parentHeader := beaconState.LatestBlockHeader()
	if parentHeader == nil {
		return nil, errors.New("nil latest block header in state")
	}
	if block.Slot <= parentHeader.Slot {
		return nil, errors.Errorf("block.Slot %d must be greater than state.LatestBlockHeader.Slot %d", block.Slot, parentHeader.Slot)
	}
	parentRoot, err := parentHeader.HashTreeRoot()
	if err != nil {
		return nil, err
	}
	if parentRoot != block.ParentRoot {
		return nil, errors.Errorf(
			"parent root %#x does not match the latest block header signing root in state %#x",
			block.ParentRoot, parentRoot)
	}
	proposer, err := beaconState.ValidatorAtIndex(idx)
	if err != nil {
		return nil, err
	}
	if proposer.Slashed {
		return nil, errors.Errorf("proposer at index %d was previously slashed", idx)
	}
	bodyRoot, err := block.Body.HashTreeRoot()
	if err != nil {
		return nil, err
	}
	if err := beaconState.SetLatestBlockHeader(&ethpb.BeaconBlockHeader{
		Slot:          block.Slot,
		ProposerIndex: block.ProposerIndex,
		ParentRoot:    block.ParentRoot,
		BodyRoot:      bodyRoot,
	}); err != nil {
		return nil, err
	}
	return beaconState, nil
}

// VerifyBlockSignature checks the proposer's signature over the block.
func VerifyBlockSignature(beaconState state.ReadOnlyBeaconState, block *ethpb.SignedBeaconBlock, verifier bls.SignatureVerifier) error {
	epoch := helpers.SlotToEpoch(block.Block.Slot)
	return signing.ComputeDomainVerifySigningRoot(
		verifier,
		beaconState,
		block.Block.ProposerIndex,
		epoch,
		block.Block,
		params.BeaconConfig().DomainBeaconProposer,
		block.Signature[:],
	)
}

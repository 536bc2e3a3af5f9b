package blockchain

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/blocks"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/transition"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

// InitializeGenesis inserts the slot 0 block with its state. The block must
// commit to the state's hash tree root.
func (s *Service) InitializeGenesis(ctx context.Context, genesisState state.BeaconState, genesisBlock *ethpb.SignedBeaconBlock) error {
	ctx, span := trace.StartSpan(ctx, "blockChain.InitializeGenesis")
	defer span.End()

	if genesisState == nil {
		return errNilState
	}
	if err := blocks.VerifyNilBeaconBlock(genesisBlock); err != nil {
		return err
	}
	blk := genesisBlock.Block
	if blk.Slot != 0 {
		return errors.Errorf("genesis block has slot %d", blk.Slot)
	}
	stateRoot, err := genesisState.HashTreeRoot(ctx)
	if err != nil {
		return errors.Wrap(err, "could not hash genesis state")
	}
	if stateRoot != blk.StateRoot {
		return errors.Errorf("genesis block state root %#x does not match state root %#x", blk.StateRoot, stateRoot)
	}
	root, err := blk.HashTreeRoot()
	if err != nil {
		return errors.Wrap(err, "could not hash genesis block")
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	if s.initialized {
		return errAlreadyInitialized
	}
	if err := s.cfg.store.InsertBlock(ctx, root, blk, genesisState); err != nil {
		return errors.Wrap(err, "could not insert genesis block")
	}
	s.genesisRoot = root
	s.initialized = true
	log.WithFields(logrus.Fields{
		"root":       fmt.Sprintf("%#x", bytesutil.Trunc(root[:])),
		"validators": genesisState.NumValidators(),
	}).Info("Initialized genesis")
	return nil
}

// ReceiveBlock applies the state transition for a block on top of its
// parent's stored post-state, inserts the block with its post-state and
// records every attestation it carries. A block already in the store is
// ignored.
func (s *Service) ReceiveBlock(ctx context.Context, signed *ethpb.SignedBeaconBlock) ([32]byte, error) {
	ctx, span := trace.StartSpan(ctx, "blockChain.ReceiveBlock")
	defer span.End()

	if err := blocks.VerifyNilBeaconBlock(signed); err != nil {
		return [32]byte{}, err
	}
	blk := signed.Block
	root, err := blk.HashTreeRoot()
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not hash block")
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	if !s.initialized {
		return root, errNotInitialized
	}
	if s.cfg.store.HasBlock(root) {
		return root, nil
	}
	if err := s.ctx.Err(); err != nil {
		return root, err
	}

	parentState, ok := s.cfg.store.Snapshot().State(blk.ParentRoot)
	if !ok {
		return root, s.reject(root, blk, ErrUnknownParent)
	}
	postState, err := transition.ExecuteStateTransition(ctx, parentState, signed, s.cfg.verifier)
	if err != nil {
		return root, s.reject(root, blk, err)
	}
	if err := s.cfg.store.InsertBlock(ctx, root, blk, postState); err != nil {
		return root, s.reject(root, blk, err)
	}
	for i, att := range blk.Body.Attestations {
		if err := s.cfg.store.InsertAttestation(ctx, s.pendingAttestation(blk, att)); err != nil {
			return root, errors.Wrapf(err, "could not record attestation %d of block", i)
		}
		processedAttestationCount.Inc()
	}
	processedBlockCount.Inc()
	logStateTransitionData(blk, root)
	return root, nil
}

func (s *Service) reject(root [32]byte, blk *ethpb.BeaconBlock, err error) error {
	rejectedBlockCount.Inc()
	log.WithError(err).WithFields(logrus.Fields{
		"slot": blk.Slot,
		"root": fmt.Sprintf("%#x", bytesutil.Trunc(root[:])),
	}).Warn("Rejected block")
	return invalidBlock{error: err, root: root}
}

// pendingAttestation records att as included by blk.
func (s *Service) pendingAttestation(blk *ethpb.BeaconBlock, att *ethpb.Attestation) *ethpb.PendingAttestation {
	data := ethpb.CopyAttestationData(att.Data)
	data.Source = s.withGenesisRoot(data.Source)
	data.Target = s.withGenesisRoot(data.Target)
	return &ethpb.PendingAttestation{
		AggregationBits: append(att.AggregationBits[:0:0], att.AggregationBits...),
		Data:            data,
		InclusionDelay:  blk.Slot - att.Data.Slot,
		ProposerIndex:   blk.ProposerIndex,
	}
}

// withGenesisRoot replaces the zero root states use for the genesis
// checkpoint with the genesis block root the store knows.
func (s *Service) withGenesisRoot(cp *ethpb.Checkpoint) *ethpb.Checkpoint {
	if cp.Epoch == 0 && cp.Root == [32]byte{} {
		return &ethpb.Checkpoint{Root: s.genesisRoot}
	}
	return cp
}

// Package transition implements the whole state transition
// function which consists of per slot, per-epoch transitions, and
// the block processing that turns a parent post-state into a block's
// post-state.
package transition

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/cache"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/blocks"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/epoch"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/crypto/bls"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

var log = logrus.WithField("prefix", "transition")

var errNilState = errors.New("nil state")

// ExecuteStateTransition defines the procedure for a state transition function.
// The pre-state is never modified: the transition runs on a copy, advances it
// through any skipped slots, applies the block and checks the resulting state
// root against the one the block commits to.
func ExecuteStateTransition(
	ctx context.Context,
	st state.BeaconState,
	signed *ethpb.SignedBeaconBlock,
	verifier bls.SignatureVerifier,
) (state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.state.ExecuteStateTransition")
	defer span.End()

	post, err := processBlockOnCopy(ctx, st, signed, verifier)
	if err != nil {
		return nil, err
	}
	postRoot, err := post.HashTreeRoot(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "could not hash post state")
	}
	if postRoot != signed.Block.StateRoot {
		return nil, errors.Errorf("could not validate state root, wanted: %#x, received: %#x",
			postRoot[:], signed.Block.StateRoot[:])
	}
	return post, nil
}

// CalculateStateRoot runs the transition of a block whose state root is not
// yet known and returns the post-state root it should commit to.
func CalculateStateRoot(
	ctx context.Context,
	st state.BeaconState,
	signed *ethpb.SignedBeaconBlock,
	verifier bls.SignatureVerifier,
) ([32]byte, error) {
	ctx, span := trace.StartSpan(ctx, "core.state.CalculateStateRoot")
	defer span.End()

	post, err := processBlockOnCopy(ctx, st, signed, verifier)
	if err != nil {
		return [32]byte{}, err
	}
	return post.HashTreeRoot(ctx)
}

func processBlockOnCopy(
	ctx context.Context,
	st state.BeaconState,
	signed *ethpb.SignedBeaconBlock,
	verifier bls.SignatureVerifier,
) (state.BeaconState, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if st == nil {
		return nil, errNilState
	}
	if err := blocks.VerifyNilBeaconBlock(signed); err != nil {
		return nil, err
	}
	post := st.Copy()
	var err error
	if post.Slot() < signed.Block.Slot {
		post, err = ProcessSlots(ctx, post, signed.Block.Slot)
		if err != nil {
			return nil, errors.Wrap(err, "could not process slots")
		}
	}
	post, err = blocks.ProcessBlock(ctx, post, signed, verifier)
	if err != nil {
		// A rejected block leaves no post-state, partial or not.
		return nil, errors.Wrap(err, "could not process block")
	}
	return post, nil
}

// ProcessSlot caches the state root and block root of the slot that is
// ending, filling in the latest block header's state root the first time.
func ProcessSlot(ctx context.Context, st state.BeaconState) (state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.state.ProcessSlot")
	defer span.End()
	span.AddAttributes(trace.Int64Attribute("slot", int64(st.Slot())))

	historical := params.BeaconConfig().SlotsPerHistoricalRoot
	idx := uint64(st.Slot() % historical)
	prevStateRoot, err := st.HashTreeRoot(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.UpdateStateRootAtIndex(idx, prevStateRoot); err != nil {
		return nil, err
	}
	header := st.LatestBlockHeader()
	if header.StateRoot == [32]byte{} {
		header.StateRoot = prevStateRoot
		if err := st.SetLatestBlockHeader(header); err != nil {
			return nil, err
		}
	}
	prevBlockRoot, err := header.HashTreeRoot()
	if err != nil {
		return nil, errors.Wrap(err, "could not determine prev block root")
	}
	if err := st.UpdateBlockRootAtIndex(idx, prevBlockRoot); err != nil {
		return nil, errors.Wrap(err, "could not update block roots")
	}
	return st, nil
}

// ProcessSlots advances st to slot, running epoch processing on every epoch
// boundary crossed. st is modified in place.
func ProcessSlots(ctx context.Context, st state.BeaconState, slot types.Slot) (state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.state.ProcessSlots")
	defer span.End()
	if st == nil {
		return nil, errNilState
	}
	span.AddAttributes(trace.Int64Attribute("slots", int64(slot)-int64(st.Slot())))

	if st.Slot() >= slot {
		return nil, errors.Errorf("expected state.slot %d < slot %d", st.Slot(), slot)
	}

	key, err := SkipSlotCacheKey(ctx, st, slot)
	if err != nil {
		return nil, err
	}
	cached, err := SkipSlotCache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}
	if err := SkipSlotCache.MarkInProgress(key); errors.Is(err, cache.ErrAlreadyInProgress) {
		cached, err = SkipSlotCache.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			return cached, nil
		}
	} else if err != nil {
		return nil, err
	} else {
		defer SkipSlotCache.MarkNotInProgress(key)
	}

	for st.Slot() < slot {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		st, err = ProcessSlot(ctx, st)
		if err != nil {
			return nil, errors.Wrap(err, "could not process slot")
		}
		if helpers.IsEpochEnd(st.Slot()) {
			st, err = epoch.ProcessEpoch(ctx, st)
			if err != nil {
				return nil, errors.Wrap(err, "could not process epoch")
			}
			log.WithFields(logrus.Fields{
				"epoch":          helpers.CurrentEpoch(st),
				"justifiedEpoch": st.CurrentJustifiedCheckpoint().Epoch,
				"finalizedEpoch": st.FinalizedCheckpoint().Epoch,
			}).Debug("Processed epoch")
		}
		if err := st.SetSlot(st.Slot() + 1); err != nil {
			return nil, errors.Wrap(err, "failed to increment state slot")
		}
	}

	if err := SkipSlotCache.Put(ctx, key, st); err != nil {
		return nil, err
	}
	return st, nil
}

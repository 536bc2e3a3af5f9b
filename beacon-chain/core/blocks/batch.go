package blocks

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
)

type applyFunc[T any] func(ctx context.Context, st state.BeaconState, op T) (state.BeaconState, error)

// processBatch applies ops in order, each to a fresh copy of the state, so a
// failing operation leaves no partial effect. On failure it returns the state
// after the last successful operation and an *OperationError.
func processBatch[T any](
	ctx context.Context,
	st state.BeaconState,
	name string,
	ops []T,
	depositStage bool,
	apply applyFunc[T],
) (state.BeaconState, error) {
	inv, err := captureInvariants(st, depositStage)
	if err != nil {
		return st, errors.Wrapf(err, "before %s stage", name)
	}
	cur := st
	for i, op := range ops {
		if ctx.Err() != nil {
			return cur, ctx.Err()
		}
		next, err := apply(ctx, cur.Copy(), op)
		if err != nil {
			return cur, &OperationError{Operation: name, Index: i, Err: err}
		}
		if err := inv.verify(next); err != nil {
			return cur, &OperationError{Operation: name, Index: i, Err: err}
		}
		cur = next
	}
	return cur, nil
}

// checkBatch enforces the size limit of a batch and, when key is non-nil,
// that no two operations share a validator index.
func checkBatch[T any](name string, ops []T, limit uint64, key func(T) (types.ValidatorIndex, bool)) error {
	if uint64(len(ops)) > limit {
		return &OperationError{
			Operation: name,
			Index:     int(limit),
			Err:       errors.Wrapf(ErrBatchTooLarge, errBatchTooLargeMessage, name, len(ops), limit),
		}
	}
	if key == nil {
		return nil
	}
	seen := make(map[types.ValidatorIndex]bool, len(ops))
	for i, op := range ops {
		idx, ok := key(op)
		if !ok {
			continue
		}
		if seen[idx] {
			return &OperationError{
				Operation: name,
				Index:     i,
				Err:       errors.Wrapf(ErrDuplicateInBatch, "validator %d", idx),
			}
		}
		seen[idx] = true
	}
	return nil
}

package transition

import (
	"context"
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/cache"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/crypto/hash"
)

// SkipSlotCache exists for the scenario where there is a large gap between
// a block's parent state and the block slot. Every block built on the same
// parent in the same slot reuses the advanced state.
var SkipSlotCache = cache.NewSkipSlotCache()

// SkipSlotCacheKey is the key for the skip slot cache: the hash of the
// pre-state root and the target slot. The state root keeps forks that skip
// the same slots apart.
func SkipSlotCacheKey(ctx context.Context, st state.ReadOnlyBeaconState, slot types.Slot) ([32]byte, error) {
	root, err := st.HashTreeRoot(ctx)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not hash state")
	}
	var b [40]byte
	copy(b[:32], root[:])
	binary.BigEndian.PutUint64(b[32:], uint64(slot))
	return hash.Hash(b[:]), nil
}

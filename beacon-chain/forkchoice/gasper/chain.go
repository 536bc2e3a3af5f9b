package gasper

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/math"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
)

type ebbKey struct {
	root  [32]byte
	epoch types.Epoch
}

// ComputeEBBs returns, for every epoch from epoch down to 0, the index in a
// chain of the epoch boundary block: element i is the first position whose
// slot is at most the start slot of epoch-i. slots lists the chain's slots
// from the head down to genesis. The result is empty for an empty chain.
// Epochs past MaxEpochHorizon fail with ErrEpochOutOfRange.
func ComputeEBBs(slots []types.Slot, epoch types.Epoch) ([]int, error) {
	if err := checkHorizon(epoch); err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, nil
	}
	spe := uint64(params.BeaconConfig().SlotsPerEpoch)
	out := make([]int, uint64(epoch)+1)
	idx := 0
	for i := range out {
		e := uint64(epoch) - uint64(i)
		start, err := math.Mul64(e, spe)
		if err != nil {
			start = ^uint64(0)
		}
		// Boundaries only move towards genesis as the epoch decreases.
		for idx < len(slots)-1 && uint64(slots[idx]) > start {
			idx++
		}
		out[i] = idx
	}
	return out, nil
}

func checkHorizon(epoch types.Epoch) error {
	if max := params.BeaconConfig().MaxEpochHorizon; epoch > max {
		return errors.Wrapf(ErrEpochOutOfRange, "epoch %d exceeds %d", epoch, max)
	}
	return nil
}

// chain returns the arena handles from h down to genesis.
func (s *Snapshot) chain(h uint64) ([]uint64, error) {
	root := s.nodes[h].root
	if cached, ok := s.store.chainCache.Get(root); ok {
		chainCacheHit.Inc()
		return cached.([]uint64), nil
	}
	chainCacheMiss.Inc()

	var out []uint64
	cur := h
	for {
		n := s.nodes[cur]
		out = append(out, cur)
		if n.parent == NonExistentNode {
			break
		}
		if n.parent >= uint64(len(s.nodes)) {
			return nil, structural(n.root, ErrMissingParent)
		}
		// Slots strictly decrease towards genesis, bounding the walk.
		if s.nodes[n.parent].slot >= n.slot {
			return nil, structural(n.root, ErrSlotNotDecreasing)
		}
		cur = n.parent
	}
	if s.nodes[cur].slot != 0 {
		return nil, structural(s.nodes[cur].root, ErrMissingParent)
	}
	s.store.chainCache.Add(root, out)
	return out, nil
}

// ChainRoots returns the ancestors of root, root first and genesis last,
// with strictly decreasing slots.
func (s *Snapshot) ChainRoots(root [32]byte) ([][32]byte, error) {
	h, ok := s.handle(root)
	if !ok {
		return nil, structural(root, ErrUnknownRoot)
	}
	handles, err := s.chain(h)
	if err != nil {
		return nil, err
	}
	roots := make([][32]byte, len(handles))
	for i, c := range handles {
		roots[i] = s.nodes[c].root
	}
	return roots, nil
}

// EBBIndices returns ComputeEBBs over the chain of root: element i is the
// position in ChainRoots(root) of the boundary block of epoch epoch-i.
func (s *Snapshot) EBBIndices(root [32]byte, epoch types.Epoch) ([]int, error) {
	h, ok := s.handle(root)
	if !ok {
		return nil, structural(root, ErrUnknownRoot)
	}
	ebbs, _, err := s.ebbs(h, epoch)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(ebbs))
	copy(out, ebbs)
	return out, nil
}

func (s *Snapshot) ebbs(h uint64, epoch types.Epoch) ([]int, []uint64, error) {
	if err := checkHorizon(epoch); err != nil {
		return nil, nil, err
	}
	handles, err := s.chain(h)
	if err != nil {
		return nil, nil, err
	}
	key := ebbKey{root: s.nodes[h].root, epoch: epoch}
	if cached, ok := s.store.ebbCache.Get(key); ok {
		chainCacheHit.Inc()
		return cached.([]int), handles, nil
	}
	chainCacheMiss.Inc()
	slots := make([]types.Slot, len(handles))
	for i, c := range handles {
		slots[i] = s.nodes[c].slot
	}
	ebbs, err := ComputeEBBs(slots, epoch)
	if err != nil {
		return nil, nil, err
	}
	s.store.ebbCache.Add(key, ebbs)
	return ebbs, handles, nil
}

// boundaryCheckpoints returns the checkpoints of the chain of h for epochs
// 0 through epoch, indexed by epoch.
func (s *Snapshot) boundaryCheckpoints(h uint64, epoch types.Epoch) ([]ethpb.Checkpoint, error) {
	ebbs, handles, err := s.ebbs(h, epoch)
	if err != nil {
		return nil, err
	}
	cps := make([]ethpb.Checkpoint, len(ebbs))
	for i, idx := range ebbs {
		e := epoch - types.Epoch(i)
		cps[e] = ethpb.Checkpoint{Epoch: e, Root: s.nodes[handles[idx]].root}
	}
	return cps, nil
}

// Checkpoint returns the checkpoint of head's chain at epoch: the epoch
// paired with the chain's boundary block for it.
func (s *Snapshot) Checkpoint(head [32]byte, epoch types.Epoch) (*ethpb.Checkpoint, error) {
	h, ok := s.handle(head)
	if !ok {
		return nil, structural(head, ErrUnknownRoot)
	}
	ebbs, handles, err := s.ebbs(h, epoch)
	if err != nil {
		return nil, err
	}
	return &ethpb.Checkpoint{Epoch: epoch, Root: s.nodes[handles[ebbs[0]]].root}, nil
}

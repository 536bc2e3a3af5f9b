package gasper

import (
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/go-bitfield"
)

// Link is a supermajority link between two checkpoints together with the
// committee positions that voted for it.
type Link struct {
	Source *ethpb.Checkpoint
	Target *ethpb.Checkpoint
	Voters bitfield.Bitlist
}

// SupermajoritySize is the number of distinct committee positions a link
// needs: more than two thirds of MaxValidatorsPerCommittee.
func SupermajoritySize() uint64 {
	return 2*params.BeaconConfig().MaxValidatorsPerCommittee/3 + 1
}

// IsSupermajority reports whether voters holds a supermajority of the
// reference committee.
func IsSupermajority(voters bitfield.Bitlist) bool {
	return voters.Count() >= SupermajoritySize()
}

// LinkVoters returns the union of the committee positions below
// MaxValidatorsPerCommittee of every vote for source -> target, as a
// bitlist of MaxValidatorsPerCommittee bits.
func (s *Snapshot) LinkVoters(source, target *ethpb.Checkpoint) bitfield.Bitlist {
	max := params.BeaconConfig().MaxValidatorsPerCommittee
	out := bitfield.NewBitlist(max)
	if source == nil || target == nil {
		return out
	}
	for _, i := range s.linkVotes(*source, *target) {
		bits := s.votes[i].AggregationBits
		for _, pos := range bits.BitIndices() {
			if uint64(pos) >= max {
				break
			}
			out.SetBitAt(uint64(pos), true)
		}
	}
	return out
}

// IsSupermajorityLink reports whether source -> target is a supermajority link.
func (s *Snapshot) IsSupermajorityLink(source, target *ethpb.Checkpoint) bool {
	if source == nil || target == nil || len(s.linkVotes(*source, *target)) == 0 {
		return false
	}
	return IsSupermajority(s.LinkVoters(source, target))
}

// chainView is the justification of every checkpoint of one chain up to
// an epoch, indexed by epoch. Views are shared through the store's cache
// and must not be modified.
type chainView struct {
	checkpoints []ethpb.Checkpoint
	justified   []bool
	// source[e] is the epoch of the justified checkpoint whose link
	// justifies epoch e, or -1.
	source []int64
}

// viewKey identifies a chain view. Votes are append-only, so the number of
// votes a snapshot holds fixes the links it sees.
type viewKey struct {
	root  [32]byte
	epoch types.Epoch
	votes int
}

// justification evaluates the chain of h up to epoch. Epoch 0 is justified
// unconditionally; epoch e is justified when a justified checkpoint of an
// earlier epoch of the same chain has a supermajority link to it. The most
// recent such source is recorded.
func (s *Snapshot) justification(h uint64, epoch types.Epoch) (*chainView, error) {
	key := viewKey{root: s.nodes[h].root, epoch: epoch, votes: len(s.votes)}
	if cached, ok := s.store.viewCache.Get(key); ok {
		chainCacheHit.Inc()
		return cached.(*chainView), nil
	}
	justificationQueryCount.Inc()
	cps, err := s.boundaryCheckpoints(h, epoch)
	if err != nil {
		return nil, err
	}
	v := &chainView{
		checkpoints: cps,
		justified:   make([]bool, len(cps)),
		source:      make([]int64, len(cps)),
	}
	v.justified[0] = true
	v.source[0] = -1
	for e := 1; e < len(cps); e++ {
		v.source[e] = -1
		for src := e - 1; src >= 0; src-- {
			if !v.justified[src] {
				continue
			}
			if s.IsSupermajorityLink(&cps[src], &cps[e]) {
				v.justified[e] = true
				v.source[e] = int64(src)
				break
			}
		}
	}
	s.store.viewCache.Add(key, v)
	return v, nil
}

// checkpointView resolves cp against the chain of its root. It returns nil
// when the root's block is later than the checkpoint's epoch start, in which
// case cp is not a boundary checkpoint of any chain.
func (s *Snapshot) checkpointView(cp *ethpb.Checkpoint) (*chainView, error) {
	if cp == nil {
		return nil, errNilCheckpoint
	}
	h, ok := s.handle(cp.Root)
	if !ok {
		return nil, structural(cp.Root, ErrUnknownRoot)
	}
	v, err := s.justification(h, cp.Epoch)
	if err != nil {
		return nil, err
	}
	if v.checkpoints[cp.Epoch] != *cp {
		return nil, nil
	}
	return v, nil
}

// IsJustified reports whether cp is justified along the chain of its root.
// The genesis checkpoint is always justified.
func (s *Snapshot) IsJustified(cp *ethpb.Checkpoint) (bool, error) {
	if cp != nil && cp.Epoch > 0 && len(s.targetVotes(*cp)) == 0 {
		if !s.HasBlock(cp.Root) {
			return false, structural(cp.Root, ErrUnknownRoot)
		}
		return false, nil
	}
	v, err := s.checkpointView(cp)
	if err != nil || v == nil {
		return false, err
	}
	return v.justified[cp.Epoch], nil
}

// JustifyingLink returns the supermajority link that justifies cp, or nil
// when cp is the genesis checkpoint or is not justified.
func (s *Snapshot) JustifyingLink(cp *ethpb.Checkpoint) (*Link, error) {
	v, err := s.checkpointView(cp)
	if err != nil || v == nil {
		return nil, err
	}
	src := v.source[cp.Epoch]
	if !v.justified[cp.Epoch] || src < 0 {
		return nil, nil
	}
	source := v.checkpoints[src]
	return &Link{
		Source: &source,
		Target: ethpb.CopyCheckpoint(cp),
		Voters: s.LinkVoters(&source, cp),
	}, nil
}

// finalizingLinks returns the supermajority links from cp to checkpoints k
// epochs later whose chains pass through cp. For k = 2 the intermediate
// checkpoint must be justified too.
func (s *Snapshot) finalizingLinks(cp *ethpb.Checkpoint, k types.Epoch) ([]*Link, error) {
	seen := make(map[ethpb.Checkpoint]bool)
	var links []*Link
	for _, i := range s.votesFrom(*cp) {
		target := *s.votes[i].Data.Target
		if target.Epoch != cp.Epoch+k || seen[target] {
			continue
		}
		seen[target] = true
		voters := s.LinkVoters(cp, &target)
		if !IsSupermajority(voters) {
			continue
		}
		h, ok := s.handle(target.Root)
		if !ok {
			continue
		}
		v, err := s.justification(h, target.Epoch)
		if err != nil {
			return nil, err
		}
		if v.checkpoints[target.Epoch] != target || v.checkpoints[cp.Epoch] != *cp {
			continue
		}
		if k == 2 && !v.justified[cp.Epoch+1] {
			continue
		}
		links = append(links, &Link{Source: ethpb.CopyCheckpoint(cp), Target: &target, Voters: voters})
	}
	return links, nil
}

// FinalizingLink returns a link that k-finalizes cp, k being 1 or 2, or nil
// when cp is not k-finalized.
func (s *Snapshot) FinalizingLink(cp *ethpb.Checkpoint, k types.Epoch) (*Link, error) {
	if k != 1 && k != 2 {
		return nil, nil
	}
	justified, err := s.IsJustified(cp)
	if err != nil || !justified {
		return nil, err
	}
	links, err := s.finalizingLinks(cp, k)
	if err != nil || len(links) == 0 {
		return nil, err
	}
	return links[0], nil
}

// IsOneFinalized reports whether cp is justified and has a supermajority
// link to a checkpoint of the next epoch on a chain through it.
func (s *Snapshot) IsOneFinalized(cp *ethpb.Checkpoint) (bool, error) {
	l, err := s.FinalizingLink(cp, 1)
	return l != nil, err
}

// IsTwoFinalized reports whether cp is justified, the checkpoint after it is
// justified, and cp has a supermajority link to the checkpoint two epochs
// later on the same chain.
func (s *Snapshot) IsTwoFinalized(cp *ethpb.Checkpoint) (bool, error) {
	l, err := s.FinalizingLink(cp, 2)
	return l != nil, err
}

// Package gasper is the validator's view of the chain for the Gasper
// justification and finalization rules. A Store collects blocks, their
// post-states and every received attestation; the ancestry, epoch boundary
// block and justification queries run against an immutable Snapshot of it.
package gasper

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

const defaultCacheSize = 256

// linkKey identifies a source -> target vote.
type linkKey struct {
	source ethpb.Checkpoint
	target ethpb.Checkpoint
}

// Store is an append-only arena of blocks plus the ordered list of received
// attestations. A single writer grows it; readers take a Snapshot.
type Store struct {
	lock         sync.RWMutex
	nodes        []*Node
	nodesIndices map[[32]byte]uint64
	genesis      uint64
	votes        []*ethpb.PendingAttestation
	linkVotes    map[linkKey][]int
	sourceVotes  map[ethpb.Checkpoint][]int
	targetVotes  map[ethpb.Checkpoint][]int
	chainCache   *lru.Cache
	ebbCache     *lru.Cache
	viewCache    *lru.Cache
}

type config struct {
	cacheSize int
}

// Option configures a Store.
type Option func(*config)

// WithCacheSize sets the number of entries kept by the chain, boundary
// block and justification caches.
func WithCacheSize(size int) Option {
	return func(c *config) {
		c.cacheSize = size
	}
}

// New returns an empty store.
func New(opts ...Option) (*Store, error) {
	cfg := &config{cacheSize: defaultCacheSize}
	for _, o := range opts {
		o(cfg)
	}
	chainCache, err := lru.New(cfg.cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "could not create chain cache")
	}
	ebbCache, err := lru.New(cfg.cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "could not create boundary block cache")
	}
	viewCache, err := lru.New(cfg.cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "could not create justification cache")
	}
	return &Store{
		nodesIndices: make(map[[32]byte]uint64),
		genesis:      NonExistentNode,
		linkVotes:    make(map[linkKey][]int),
		sourceVotes:  make(map[ethpb.Checkpoint][]int),
		targetVotes:  make(map[ethpb.Checkpoint][]int),
		chainCache:   chainCache,
		ebbCache:     ebbCache,
		viewCache:    viewCache,
	}, nil
}

// InsertBlock adds a block and its post-state under root. The first block
// must be the slot 0 genesis block; every later block must extend a known
// parent with a strictly greater slot. Re-inserting a known root does
// nothing.
func (s *Store) InsertBlock(ctx context.Context, root [32]byte, block *ethpb.BeaconBlock, st state.BeaconState) error {
	_, span := trace.StartSpan(ctx, "gasper.InsertBlock")
	defer span.End()

	if block == nil || block.Body == nil {
		return errNilBlock
	}
	bodyRoot, err := block.Body.HashTreeRoot()
	if err != nil {
		return errors.Wrap(err, "could not hash block body")
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.nodesIndices[root]; ok {
		return nil
	}
	parent := NonExistentNode
	if block.Slot == 0 {
		if s.genesis != NonExistentNode {
			rejectedBlockCount.WithLabelValues("duplicate_genesis").Inc()
			return structural(root, ErrDuplicateGenesis)
		}
	} else {
		idx, ok := s.nodesIndices[block.ParentRoot]
		if !ok {
			rejectedBlockCount.WithLabelValues("missing_parent").Inc()
			return structural(root, ErrMissingParent)
		}
		if s.nodes[idx].slot >= block.Slot {
			rejectedBlockCount.WithLabelValues("slot_not_decreasing").Inc()
			return structural(root, errors.Wrapf(ErrSlotNotDecreasing, "parent slot %d, block slot %d", s.nodes[idx].slot, block.Slot))
		}
		parent = idx
	}

	var stateCopy state.BeaconState
	if st != nil {
		stateCopy = st.Copy()
	}
	handle := uint64(len(s.nodes))
	s.nodes = append(s.nodes, &Node{
		root:   root,
		slot:   block.Slot,
		parent: parent,
		header: &ethpb.BeaconBlockHeader{
			Slot:          block.Slot,
			ProposerIndex: block.ProposerIndex,
			ParentRoot:    block.ParentRoot,
			StateRoot:     block.StateRoot,
			BodyRoot:      bodyRoot,
		},
		state: stateCopy,
	})
	s.nodesIndices[root] = handle
	if parent == NonExistentNode {
		s.genesis = handle
	}
	blockCount.Set(float64(len(s.nodes)))
	log.WithFields(logrus.Fields{
		"slot": block.Slot,
		"root": rootString(root),
	}).Debug("Inserted block")
	return nil
}

// InsertAttestation appends an attestation to the received votes. Votes are
// recorded whether or not they are well formed.
func (s *Store) InsertAttestation(ctx context.Context, att *ethpb.PendingAttestation) error {
	_, span := trace.StartSpan(ctx, "gasper.InsertAttestation")
	defer span.End()

	if att == nil || att.Data == nil || att.AggregationBits == nil {
		return errNilAttestation
	}
	if att.Data.Source == nil || att.Data.Target == nil {
		return errors.Wrap(errNilCheckpoint, "attestation without source or target")
	}
	cp := ethpb.CopyPendingAttestation(att)

	s.lock.Lock()
	defer s.lock.Unlock()

	idx := len(s.votes)
	s.votes = append(s.votes, cp)
	key := linkKey{source: *cp.Data.Source, target: *cp.Data.Target}
	s.linkVotes[key] = append(s.linkVotes[key], idx)
	s.sourceVotes[key.source] = append(s.sourceVotes[key.source], idx)
	s.targetVotes[key.target] = append(s.targetVotes[key.target], idx)
	voteCount.Set(float64(len(s.votes)))
	return nil
}

// Snapshot returns a read-only view of the store as it is now. Later
// insertions are not visible through it.
func (s *Store) Snapshot() *Snapshot {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return &Snapshot{
		store:   s,
		nodes:   s.nodes[:len(s.nodes):len(s.nodes)],
		votes:   s.votes[:len(s.votes):len(s.votes)],
		genesis: s.genesis,
	}
}

// HasBlock reports whether root is in the store.
func (s *Store) HasBlock(root [32]byte) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	_, ok := s.nodesIndices[root]
	return ok
}

// BlockCount returns the number of blocks in the store.
func (s *Store) BlockCount() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.nodes)
}

// VoteCount returns the number of attestations received.
func (s *Store) VoteCount() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.votes)
}

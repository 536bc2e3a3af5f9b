package slasher

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/forkchoice/gasper"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	"github.com/prysmaticlabs/gasper/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
	"golang.org/x/sync/errgroup"
)

var errNilCheckpoint = errors.New("nil checkpoint")

// Evidence is a pair of supermajority links whose voter sets intersect in
// validators that broke Rule. For RuleII the First link surrounds the Second.
type Evidence struct {
	Rule         Rule
	First        *gasper.Link
	Second       *gasper.Link
	Intersection []uint64
}

// checkpointInfo is what the search needs to know about one checkpoint.
type checkpointInfo struct {
	cp         *ethpb.Checkpoint
	status     gasper.CheckpointState
	finalizing *gasper.Link
	// k is the finalization distance of finalizing.
	k types.Epoch
}

// FindSlashableIntersection looks for validators that must have broken a
// slashing rule for cp1 and cp2 to hold their states in snap. It returns nil
// when the checkpoints do not conflict in a way that implies a violation:
//
//   - both justified at the same epoch with different roots give RuleI
//     evidence from their justifying links;
//   - a 1- or 2-finalized checkpoint and a later justified checkpoint whose
//     chain does not include it give RuleI or RuleII evidence, found by
//     walking the justifying links of the later one back towards the
//     finalized epoch.
func FindSlashableIntersection(ctx context.Context, snap *gasper.Snapshot, cp1, cp2 *ethpb.Checkpoint) (*Evidence, error) {
	ctx, span := trace.StartSpan(ctx, "slasher.FindSlashableIntersection")
	defer span.End()

	if cp1 == nil || cp2 == nil {
		return nil, errNilCheckpoint
	}
	if *cp1 == *cp2 {
		return nil, nil
	}

	infos := make([]*checkpointInfo, 2)
	g, gctx := errgroup.WithContext(ctx)
	for i, cp := range []*ethpb.Checkpoint{cp1, cp2} {
		i, cp := i, cp
		g.Go(func() error {
			info, err := describe(gctx, snap, cp)
			if err != nil {
				return err
			}
			infos[i] = info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	first, second := infos[0], infos[1]
	if first.status == gasper.Unjustified || second.status == gasper.Unjustified {
		return nil, nil
	}

	var (
		ev  *Evidence
		err error
	)
	switch {
	case cp1.Epoch == cp2.Epoch:
		ev, err = sameEpoch(snap, cp1, cp2)
	case first.finalizing != nil && cp2.Epoch > cp1.Epoch:
		ev, err = finalizedConflict(snap, first, cp2)
	case second.finalizing != nil && cp1.Epoch > cp2.Epoch:
		ev, err = finalizedConflict(snap, second, cp1)
	}
	if err != nil || ev == nil {
		return nil, err
	}
	evidenceFound.WithLabelValues(ev.Rule.String()).Inc()
	log.WithFields(logrus.Fields{
		"rule":         ev.Rule.String(),
		"first":        linkString(ev.First),
		"second":       linkString(ev.Second),
		"slashableSet": len(ev.Intersection),
	}).Info("Found slashable intersection")
	return ev, nil
}

func describe(ctx context.Context, snap *gasper.Snapshot, cp *ethpb.Checkpoint) (*checkpointInfo, error) {
	st, err := snap.Status(ctx, cp)
	if err != nil {
		return nil, err
	}
	info := &checkpointInfo{cp: cp, status: st}
	switch st {
	case gasper.OneFinalized:
		info.k = 1
	case gasper.TwoFinalized:
		info.k = 2
	default:
		return info, nil
	}
	info.finalizing, err = snap.FinalizingLink(cp, info.k)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// sameEpoch handles two justified checkpoints of one epoch.
func sameEpoch(snap *gasper.Snapshot, cp1, cp2 *ethpb.Checkpoint) (*Evidence, error) {
	l1, err := snap.JustifyingLink(cp1)
	if err != nil {
		return nil, err
	}
	l2, err := snap.JustifyingLink(cp2)
	if err != nil {
		return nil, err
	}
	if l1 == nil || l2 == nil {
		return nil, nil
	}
	return newEvidence(RuleI, l1, l2)
}

// finalizedConflict walks the justification of c back from its epoch until
// it either lands inside the finalized span of f or jumps over it.
func finalizedConflict(snap *gasper.Snapshot, f *checkpointInfo, c *ethpb.Checkpoint) (*Evidence, error) {
	onChain, err := snap.Checkpoint(c.Root, f.cp.Epoch)
	if err != nil {
		return nil, err
	}
	if *onChain == *f.cp {
		return nil, nil
	}
	end := f.finalizing.Target.Epoch
	cur := c
	for {
		if cur.Epoch <= end {
			other, err := collidingLink(snap, f, cur.Epoch)
			if err != nil || other == nil {
				return nil, err
			}
			mine, err := snap.JustifyingLink(cur)
			if err != nil || mine == nil {
				return nil, err
			}
			return newEvidence(RuleI, mine, other)
		}
		link, err := snap.JustifyingLink(cur)
		if err != nil || link == nil {
			return nil, err
		}
		if link.Source.Epoch < f.cp.Epoch {
			return newEvidence(RuleII, link, f.finalizing)
		}
		cur = link.Source
	}
}

// collidingLink returns the link of f's finalized span whose target has the
// given epoch.
func collidingLink(snap *gasper.Snapshot, f *checkpointInfo, epoch types.Epoch) (*gasper.Link, error) {
	switch epoch {
	case f.cp.Epoch:
		return snap.JustifyingLink(f.cp)
	case f.finalizing.Target.Epoch:
		return f.finalizing, nil
	default:
		mid, err := snap.Checkpoint(f.finalizing.Target.Root, epoch)
		if err != nil {
			return nil, err
		}
		return snap.JustifyingLink(mid)
	}
}

func newEvidence(rule Rule, first, second *gasper.Link) (*Evidence, error) {
	both, err := first.Voters.And(second.Voters)
	if err != nil {
		return nil, errors.Wrap(err, "could not intersect link voters")
	}
	indices := both.BitIndices()
	intersection := make([]uint64, len(indices))
	for i, v := range indices {
		intersection[i] = uint64(v)
	}
	return &Evidence{Rule: rule, First: first, Second: second, Intersection: intersection}, nil
}

func linkString(l *gasper.Link) string {
	return fmt.Sprintf("%d/%#x -> %d/%#x",
		l.Source.Epoch, bytesutil.Trunc(l.Source.Root[:]), l.Target.Epoch, bytesutil.Trunc(l.Target.Root[:]))
}

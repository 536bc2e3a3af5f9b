package gasper

import (
	"context"
	"fmt"
	"runtime"

	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"go.opencensus.io/trace"
	"golang.org/x/sync/errgroup"
)

// CheckpointState is the strongest justification property a checkpoint has.
type CheckpointState int

const (
	// Unjustified checkpoints have no supermajority link from a justified checkpoint.
	Unjustified CheckpointState = iota
	// Justified checkpoints are genesis or the target of a link from a justified checkpoint.
	Justified
	// OneFinalized checkpoints are justified with a link to the next epoch.
	OneFinalized
	// TwoFinalized checkpoints are justified, followed by a justified
	// checkpoint, with a link over both.
	TwoFinalized
)

func (c CheckpointState) String() string {
	switch c {
	case Unjustified:
		return "unjustified"
	case Justified:
		return "justified"
	case OneFinalized:
		return "one-finalized"
	case TwoFinalized:
		return "two-finalized"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// EpochStatus pairs a checkpoint with its state.
type EpochStatus struct {
	Checkpoint *ethpb.Checkpoint
	State      CheckpointState
}

// Status returns the strongest state of cp. One-finalization is reported
// ahead of two-finalization.
func (s *Snapshot) Status(ctx context.Context, cp *ethpb.Checkpoint) (CheckpointState, error) {
	_, span := trace.StartSpan(ctx, "gasper.Status")
	defer span.End()

	justified, err := s.IsJustified(cp)
	if err != nil || !justified {
		return Unjustified, err
	}
	if ctx.Err() != nil {
		return Unjustified, ctx.Err()
	}
	one, err := s.IsOneFinalized(cp)
	if err != nil {
		return Unjustified, err
	}
	if one {
		return OneFinalized, nil
	}
	two, err := s.IsTwoFinalized(cp)
	if err != nil {
		return Unjustified, err
	}
	if two {
		return TwoFinalized, nil
	}
	return Justified, nil
}

// ChainStatus reports the state of every checkpoint of head's chain from
// epoch 0 through epoch. Finality is judged only by links inside the chain
// up to epoch.
func (s *Snapshot) ChainStatus(ctx context.Context, head [32]byte, epoch types.Epoch) ([]*EpochStatus, error) {
	ctx, span := trace.StartSpan(ctx, "gasper.ChainStatus")
	defer span.End()

	h, ok := s.handle(head)
	if !ok {
		return nil, structural(head, ErrUnknownRoot)
	}
	v, err := s.justification(h, epoch)
	if err != nil {
		return nil, err
	}

	out := make([]*EpochStatus, len(v.checkpoints))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for e := range v.checkpoints {
		e := e
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			cp := v.checkpoints[e]
			st := Unjustified
			if v.justified[e] {
				st = Justified
				switch {
				case e+1 < len(v.checkpoints) && s.IsSupermajorityLink(&cp, &v.checkpoints[e+1]):
					st = OneFinalized
				case e+2 < len(v.checkpoints) && v.justified[e+1] && s.IsSupermajorityLink(&cp, &v.checkpoints[e+2]):
					st = TwoFinalized
				}
			}
			out[e] = &EpochStatus{Checkpoint: &cp, State: st}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// JustifiedCheckpoints returns the justified checkpoints of head's chain up
// to epoch in increasing epoch order. Genesis is always first.
func (s *Snapshot) JustifiedCheckpoints(ctx context.Context, head [32]byte, epoch types.Epoch) ([]*ethpb.Checkpoint, error) {
	statuses, err := s.ChainStatus(ctx, head, epoch)
	if err != nil {
		return nil, err
	}
	var out []*ethpb.Checkpoint
	for _, st := range statuses {
		if st.State != Unjustified {
			out = append(out, st.Checkpoint)
		}
	}
	return out, nil
}

func checkpointString(cp *ethpb.Checkpoint) string {
	return fmt.Sprintf("(%d, %s)", cp.Epoch, rootString(cp.Root))
}

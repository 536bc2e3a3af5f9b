// Package slasher detects violations of the two Casper FFG slashing
// conditions among attestations, and locates the validators a pair of
// conflicting justified or finalized checkpoints proves to be slashable.
package slasher

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/forkchoice/gasper"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
)

// Rule is a slashing condition.
type Rule int

const (
	// RuleI forbids two votes with the same target epoch and different targets.
	RuleI Rule = iota + 1
	// RuleII forbids a vote whose source and target epochs surround another vote's.
	RuleII
)

func (r Rule) String() string {
	switch r {
	case RuleI:
		return "double-vote"
	case RuleII:
		return "surround-vote"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// Violation is a pair of attestations by one validator breaking a rule. For
// RuleII, First is the surrounding vote.
type Violation struct {
	Validator uint64
	Rule      Rule
	First     *ethpb.PendingAttestation
	Second    *ethpb.PendingAttestation
}

// wellFormed drops attestations that cannot take part in detection.
func wellFormed(att *ethpb.PendingAttestation) bool {
	return att != nil && att.AggregationBits != nil && att.Data != nil &&
		att.Data.Source != nil && att.Data.Target != nil
}

// attributed reports whether v's committee position is set in att.
func attributed(att *ethpb.PendingAttestation, v uint64) bool {
	return wellFormed(att) && v < att.AggregationBits.Len() && att.AggregationBits.BitAt(v)
}

func isDoubleVote(a1, a2 *ethpb.PendingAttestation) bool {
	return a1.Data.Target.Epoch == a2.Data.Target.Epoch && a1.Data.Target.Root != a2.Data.Target.Root
}

func surrounds(a1, a2 *ethpb.PendingAttestation) bool {
	return a1.Data.Source.Epoch < a2.Data.Source.Epoch &&
		a2.Data.Source.Epoch < a2.Data.Target.Epoch &&
		a2.Data.Target.Epoch < a1.Data.Target.Epoch
}

// ViolatesRuleI reports whether validator v has two attestations in atts
// with equal target epochs and different target roots.
func ViolatesRuleI(atts []*ethpb.PendingAttestation, v uint64) bool {
	seen := make(map[uint64][32]byte)
	for _, att := range atts {
		if !attributed(att, v) {
			continue
		}
		epoch := uint64(att.Data.Target.Epoch)
		root, ok := seen[epoch]
		if ok && root != att.Data.Target.Root {
			return true
		}
		seen[epoch] = att.Data.Target.Root
	}
	return false
}

// ViolatesRuleII reports whether validator v cast both attestations and a1
// surrounds a2: a1.source < a2.source < a2.target < a1.target by epoch.
func ViolatesRuleII(a1, a2 *ethpb.PendingAttestation, v uint64) bool {
	return attributed(a1, v) && attributed(a2, v) && surrounds(a1, a2)
}

// IsSlashableRuleII is ViolatesRuleII restricted to attestations that are
// well formed against snap. An attestation that fails validation makes the
// pair not slashable; store errors are returned.
func IsSlashableRuleII(snap *gasper.Snapshot, a1, a2 *ethpb.PendingAttestation, v uint64) (bool, error) {
	if !ViolatesRuleII(a1, a2, v) {
		return false, nil
	}
	for _, att := range []*ethpb.PendingAttestation{a1, a2} {
		err := snap.ValidateAttestation(att.Data)
		if errors.Is(err, gasper.ErrInvalidAttestation) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}
	return true, nil
}

// DetectRuleViolations scans atts for every validator with a double or
// surround vote. Each offending pair is reported once per validator, in
// validator order and then in arrival order.
func DetectRuleViolations(atts []*ethpb.PendingAttestation) []*Violation {
	byValidator := make(map[uint64][]int)
	for i, att := range atts {
		if !wellFormed(att) {
			continue
		}
		for _, v := range att.AggregationBits.BitIndices() {
			byValidator[uint64(v)] = append(byValidator[uint64(v)], i)
		}
	}
	validators := make([]uint64, 0, len(byValidator))
	for v := range byValidator {
		validators = append(validators, v)
	}
	sort.Slice(validators, func(i, j int) bool { return validators[i] < validators[j] })

	var out []*Violation
	for _, v := range validators {
		idx := byValidator[v]
		for i := 0; i < len(idx); i++ {
			for j := i + 1; j < len(idx); j++ {
				a1, a2 := atts[idx[i]], atts[idx[j]]
				var violation *Violation
				switch {
				case isDoubleVote(a1, a2):
					violation = &Violation{Validator: v, Rule: RuleI, First: a1, Second: a2}
				case surrounds(a1, a2):
					violation = &Violation{Validator: v, Rule: RuleII, First: a1, Second: a2}
				case surrounds(a2, a1):
					violation = &Violation{Validator: v, Rule: RuleII, First: a2, Second: a1}
				default:
					continue
				}
				violationsDetected.WithLabelValues(violation.Rule.String()).Inc()
				out = append(out, violation)
			}
		}
	}
	return out
}

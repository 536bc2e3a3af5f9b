package slasher_test

import (
	"testing"

	"github.com/prysmaticlabs/gasper/beacon-chain/slasher"
	"github.com/prysmaticlabs/gasper/config/params"
	types "github.com/prysmaticlabs/gasper/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
	"github.com/prysmaticlabs/gasper/testing/util"
)

func vote(source, target types.Epoch, targetRoot byte, voters ...uint64) *ethpb.PendingAttestation {
	return util.Vote(
		util.Checkpoint(source, [32]byte{'s'}),
		util.Checkpoint(target, [32]byte{targetRoot}),
		[32]byte{targetRoot},
		0,
		voters,
	)
}

func TestRule_String(t *testing.T) {
	assert.Equal(t, "double-vote", slasher.RuleI.String())
	assert.Equal(t, "surround-vote", slasher.RuleII.String())
	assert.Equal(t, "unknown(0)", slasher.Rule(0).String())
}

func TestViolatesRuleI(t *testing.T) {
	params.SetupMinimalConfig(t)
	tests := []struct {
		name string
		atts []*ethpb.PendingAttestation
		want bool
	}{
		{
			name: "different roots same epoch",
			atts: []*ethpb.PendingAttestation{vote(0, 3, 'a', 1, 2), vote(1, 3, 'b', 1)},
			want: true,
		},
		{
			name: "same root same epoch",
			atts: []*ethpb.PendingAttestation{vote(0, 3, 'a', 1), vote(1, 3, 'a', 1)},
			want: false,
		},
		{
			name: "different epochs",
			atts: []*ethpb.PendingAttestation{vote(0, 3, 'a', 1), vote(0, 4, 'b', 1)},
			want: false,
		},
		{
			name: "other validator",
			atts: []*ethpb.PendingAttestation{vote(0, 3, 'a', 1), vote(0, 3, 'b', 2)},
			want: false,
		},
		{
			name: "malformed votes are ignored",
			atts: []*ethpb.PendingAttestation{nil, {Data: &ethpb.AttestationData{}}, vote(0, 3, 'a', 1)},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slasher.ViolatesRuleI(tt.atts, 1))
		})
	}
}

func TestViolatesRuleII(t *testing.T) {
	params.SetupMinimalConfig(t)
	outer := vote(1, 6, 'a', 4)
	inner := vote(2, 5, 'b', 4)
	assert.Equal(t, true, slasher.ViolatesRuleII(outer, inner, 4))
	assert.Equal(t, false, slasher.ViolatesRuleII(inner, outer, 4), "order matters")
	assert.Equal(t, false, slasher.ViolatesRuleII(outer, inner, 5), "not cast by the validator")

	// Disjoint and touching intervals do not surround.
	assert.Equal(t, false, slasher.ViolatesRuleII(vote(1, 2, 'a', 4), vote(3, 5, 'b', 4), 4))
	assert.Equal(t, false, slasher.ViolatesRuleII(vote(3, 5, 'a', 4), vote(1, 2, 'b', 4), 4))
	assert.Equal(t, false, slasher.ViolatesRuleII(vote(1, 6, 'a', 4), vote(1, 5, 'b', 4), 4))
	assert.Equal(t, false, slasher.ViolatesRuleII(vote(1, 6, 'a', 4), vote(2, 6, 'b', 4), 4))
	assert.Equal(t, false, slasher.ViolatesRuleII(nil, inner, 4))
}

func TestDetectRuleViolations(t *testing.T) {
	params.SetupMinimalConfig(t)
	atts := []*ethpb.PendingAttestation{
		vote(2, 5, 'b', 3, 7),
		vote(1, 6, 'a', 3),
		vote(0, 5, 'c', 7, 9),
		vote(0, 1, 'd', 9),
		nil,
	}
	got := slasher.DetectRuleViolations(atts)
	require.Equal(t, 2, len(got))

	assert.Equal(t, uint64(3), got[0].Validator)
	assert.Equal(t, slasher.RuleII, got[0].Rule)
	assert.Equal(t, atts[1], got[0].First, "surrounding vote first")
	assert.Equal(t, atts[0], got[0].Second)

	assert.Equal(t, uint64(7), got[1].Validator)
	assert.Equal(t, slasher.RuleI, got[1].Rule)
	assert.Equal(t, atts[0], got[1].First)
	assert.Equal(t, atts[2], got[1].Second)

	assert.Equal(t, 0, len(slasher.DetectRuleViolations(nil)))
}

func TestDetectRuleViolations_AgreesWithPredicates(t *testing.T) {
	params.SetupMinimalConfig(t)
	atts := []*ethpb.PendingAttestation{
		vote(0, 4, 'a', 0, 1, 2),
		vote(1, 4, 'b', 1),
		vote(0, 7, 'c', 2),
		vote(2, 3, 'd', 2, 0),
	}
	for _, v := range slasher.DetectRuleViolations(atts) {
		switch v.Rule {
		case slasher.RuleI:
			assert.Equal(t, true, slasher.ViolatesRuleI([]*ethpb.PendingAttestation{v.First, v.Second}, v.Validator))
		case slasher.RuleII:
			assert.Equal(t, true, slasher.ViolatesRuleII(v.First, v.Second, v.Validator))
		}
	}
	assert.Equal(t, true, slasher.ViolatesRuleI(atts, 1))
	assert.Equal(t, false, slasher.ViolatesRuleI(atts, 0))
	assert.Equal(t, true, slasher.ViolatesRuleII(atts[2], atts[3], 2))
}

package blockchain

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/gasper/beacon-chain/slasher"
	ethpb "github.com/prysmaticlabs/gasper/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

// ReceiveAttestation records a gossip attestation as a vote once it is well
// formed against the current store.
func (s *Service) ReceiveAttestation(ctx context.Context, att *ethpb.Attestation) error {
	ctx, span := trace.StartSpan(ctx, "blockChain.ReceiveAttestation")
	defer span.End()

	if err := helpers.ValidateNilAttestation(att); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	if !s.initialized {
		return errNotInitialized
	}
	data := ethpb.CopyAttestationData(att.Data)
	data.Source = s.withGenesisRoot(data.Source)
	data.Target = s.withGenesisRoot(data.Target)
	if err := s.cfg.store.Snapshot().ValidateAttestation(data); err != nil {
		rejectedAttestationCount.Inc()
		log.WithError(err).WithFields(logrus.Fields{
			"slot":        data.Slot,
			"targetEpoch": data.Target.Epoch,
		}).Warn("Rejected attestation")
		return err
	}
	vote := &ethpb.PendingAttestation{
		AggregationBits: append(att.AggregationBits[:0:0], att.AggregationBits...),
		Data:            data,
	}
	if err := s.cfg.store.InsertAttestation(ctx, vote); err != nil {
		return errors.Wrap(err, "could not record attestation")
	}
	processedAttestationCount.Inc()
	return nil
}

// SlashableVotes scans every recorded vote for double and surround votes.
func (s *Service) SlashableVotes() []*slasher.Violation {
	violations := slasher.DetectRuleViolations(s.cfg.store.Snapshot().Votes())
	for _, v := range violations {
		log.WithFields(logrus.Fields{
			"validator": v.Validator,
			"rule":      v.Rule.String(),
		}).Info("Detected slashable votes")
	}
	return violations
}

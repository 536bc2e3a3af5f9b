package blockchain

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	processedBlockCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "beacon_blocks_processed_total",
		Help: "The number of blocks applied and inserted into the store.",
	})
	rejectedBlockCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "beacon_blocks_rejected_total",
		Help: "The number of blocks that failed the state transition or insertion.",
	})
	processedAttestationCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "beacon_attestations_recorded_total",
		Help: "The number of attestations recorded as votes, from blocks and from gossip.",
	})
	rejectedAttestationCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "beacon_attestations_rejected_total",
		Help: "The number of gossip attestations that were not well formed.",
	})
)

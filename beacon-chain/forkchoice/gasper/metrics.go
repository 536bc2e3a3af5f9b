package gasper

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

var (
	log = logrus.WithField("prefix", "forkchoice-gasper")

	blockCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gasper_store_block_count",
			Help: "The number of blocks in the gasper store.",
		},
	)
	voteCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gasper_store_vote_count",
			Help: "The number of attestations received by the gasper store.",
		},
	)
	rejectedBlockCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gasper_store_rejected_block_count",
			Help: "The number of block insertions rejected by the gasper store.",
		},
		[]string{"reason"},
	)
	chainCacheHit = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gasper_chain_cache_hit",
			Help: "The number of chain, boundary block and justification lookups served from cache.",
		},
	)
	chainCacheMiss = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gasper_chain_cache_miss",
			Help: "The number of chain and boundary block lookups computed.",
		},
	)
	justificationQueryCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gasper_justification_query_count",
			Help: "The number of justification evaluations over a chain.",
		},
	)
)

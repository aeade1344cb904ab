package node

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transactionsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gocairn_transactions_accepted_total",
		Help: "Transactions admitted to the pending buffer.",
	})

	transactionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gocairn_transactions_rejected_total",
		Help: "Transactions rejected at the admission gate.",
	})

	blocksMined = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gocairn_blocks_mined_total",
		Help: "Blocks mined and appended to the chain.",
	})

	miningDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gocairn_mining_duration_seconds",
		Help:    "Wall time of the proof-of-work search per block.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	})
)

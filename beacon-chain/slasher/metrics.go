package slasher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

var (
	log = logrus.WithField("prefix", "slasher")

	evidenceFound = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slasher_evidence_found_total",
			Help: "The number of slashable intersections found, by violated rule.",
		},
		[]string{"rule"},
	)
	violationsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slasher_rule_violations_total",
			Help: "The number of per validator rule violations found in vote scans.",
		},
		[]string{"rule"},
	)
)

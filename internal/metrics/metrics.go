package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fundraiser_logins_total",
		Help: "Login requests, labeled by whether the account was created",
	}, []string{"outcome"})

	DonationsRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fundraiser_donations_recorded_total",
		Help: "Donations accepted",
	})

	DonationsAmountTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fundraiser_donations_amount_total",
		Help: "Accepted donation amount, in currency units",
	})

	SummaryRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fundraiser_summary_requests_total",
		Help: "Referral summary requests served",
	})

	SummaryTreeDepth = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fundraiser_summary_tree_depth",
		Help:    "Depth of the referral tree walked per summary request",
		Buckets: prometheus.ExponentialBuckets(1, 2, 8),
	})
)

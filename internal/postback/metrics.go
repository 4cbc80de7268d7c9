package postback

import "github.com/prometheus/client_golang/prometheus"

var (
	postbackRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postback_requests_total",
			Help: "Postbacks processed, by outcome",
		},
		[]string{"outcome"},
	)
	postbackPayout = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postback_payout_total",
			Help: "Sum of credited payouts, by campaign",
		},
		[]string{"campaign"},
	)
	unknownEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postback_unknown_events_total",
			Help: "Postbacks recorded with an unmapped event name",
		},
		[]string{"campaign"},
	)
	notifierFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notifier_failures_total",
			Help: "Earning notifications that failed to send",
		},
	)
)

func init() {
	prometheus.MustRegister(postbackRequests, postbackPayout, unknownEvents, notifierFailures)
}

package recommendation

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	sourcePersonalized = "personalized"
	sourceSimilar      = "similar"
	sourceTrending     = "trending"
	sourceFeed         = "feed"
)

var (
	recommendationsServedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reco_recommendations_served_total",
			Help: "Count of recommendation entries served, by source.",
		},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(recommendationsServedTotal)
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

// Stub backend metrics.
var (
	CatalogHadiths = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "hadith_stub",
			Name:      "catalog_hadiths",
			Help:      "Number of hadiths loaded into the fixture catalog",
		},
	)

	SearchQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hadith_stub",
			Name:      "search_queries_total",
			Help:      "Total number of search queries by detected language and outcome",
		},
		[]string{"lang", "status"},
	)
)

func init() {
	prometheus.MustRegister(CatalogHadiths)
	prometheus.MustRegister(SearchQueriesTotal)
}

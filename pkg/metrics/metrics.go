package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ThemeChanges counts theme submissions by resulting theme and whether the
	// submitted value was accepted (accepted|ignored).
	ThemeChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "companydesk_theme_changes_total",
			Help: "Total number of theme submissions",
		},
		[]string{"theme", "result"},
	)

	// CompanyQueries counts company list loads by result (success|error).
	CompanyQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "companydesk_company_queries_total",
			Help: "Total number of company list queries",
		},
		[]string{"result"},
	)

	// CompaniesReturned observes how many rows each company list load returned.
	CompaniesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "companydesk_companies_returned",
			Help:    "Rows returned per company list query",
			Buckets: []float64{0, 1, 10, 25, 50, 75, 100},
		},
	)

	// CompaniesTotal tracks the number of stored companies, refreshed by the stats job.
	CompaniesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "companydesk_companies_total",
			Help: "Number of companies stored",
		},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "companydesk_http_latency_seconds",
			Help:    "HTTP endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

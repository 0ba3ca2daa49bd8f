package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the marketplace's prometheus collectors
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ListingsCreated      prometheus.Counter
	ListingsRejected     prometheus.Counter
	PurchasesInitiated   prometheus.Counter
	PurchasesConfirmed   prometheus.Counter
	PurchasesFailed      prometheus.Counter
	ReservationConflicts prometheus.Counter
	WebhookEvents        *prometheus.CounterVec
	RateLimited          *prometheus.CounterVec
}

// New registers the marketplace collectors on the given registerer
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "marketplace_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "marketplace_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		ListingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "marketplace_listings_created_total",
			Help: "Listings accepted into the marketplace",
		}),

		ListingsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "marketplace_listings_rejected_total",
			Help: "Listing creations rejected by the eligibility policy",
		}),

		PurchasesInitiated: factory.NewCounter(prometheus.CounterOpts{
			Name: "marketplace_purchases_initiated_total",
			Help: "Purchase initiations that reserved a listing",
		}),

		PurchasesConfirmed: factory.NewCounter(prometheus.CounterOpts{
			Name: "marketplace_purchases_confirmed_total",
			Help: "Purchases settled into a transaction",
		}),

		PurchasesFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "marketplace_purchases_failed_total",
			Help: "Purchase confirmations rejected or failed",
		}),

		ReservationConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "marketplace_reservation_conflicts_total",
			Help: "Purchase initiations that lost the reservation race",
		}),

		WebhookEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "marketplace_webhook_events_total",
			Help: "Gateway webhook events by type and outcome",
		}, []string{"type", "outcome"}),

		RateLimited: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "marketplace_rate_limited_total",
			Help: "Requests rejected by the rate limiter, by limiter scope",
		}, []string{"scope"}),
	}
}

// NewDefault registers the collectors on the default prometheus registry
func NewDefault() *Metrics {
	return New(prometheus.DefaultRegisterer)
}

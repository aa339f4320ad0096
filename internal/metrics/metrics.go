package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ListingQueries       *prometheus.CounterVec
	BookingsCreated      prometheus.Counter
	UsersRegistered      prometheus.Counter
	NotificationFailures prometheus.Counter
	LedgerErrors         *prometheus.CounterVec
}

// New registers the service collectors on reg. Tests pass a fresh prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ListingQueries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "staybooking",
			Name:      "listing_queries_total",
			Help:      "Listing queries served, by cache outcome.",
		}, []string{"cache"}),
		BookingsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: "staybooking",
			Name:      "bookings_created_total",
			Help:      "Bookings durably recorded.",
		}),
		UsersRegistered: f.NewCounter(prometheus.CounterOpts{
			Namespace: "staybooking",
			Name:      "users_registered_total",
			Help:      "Users durably recorded.",
		}),
		NotificationFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: "staybooking",
			Name:      "notification_failures_total",
			Help:      "Booking confirmations that could not be handed to the notifier.",
		}),
		LedgerErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "staybooking",
			Name:      "ledger_errors_total",
			Help:      "Ledger operations that failed with a persistence error.",
		}, []string{"op"}),
	}
}

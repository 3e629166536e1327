package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "The total number of bookings created",
	})
	bookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_cancelled_total",
		Help: "The total number of bookings cancelled",
	})
	bookingsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_rejected_insufficient_total",
		Help: "The total number of bookings rejected for insufficient inventory",
	})
	invariantViolations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_invariant_violations_total",
		Help: "The total number of detected inventory invariant violations",
	})
)

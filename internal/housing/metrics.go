package housing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hostel_bookings_total",
		Help: "Booking attempts, labeled by outcome",
	}, []string{"outcome"})

	externalTransfersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hostel_external_transfers_total",
		Help: "Value moved across the system boundary, labeled by direction",
	}, []string{"direction"})
)

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if code := ReasonCode(err); code != "" {
		return code
	}
	return "error"
}

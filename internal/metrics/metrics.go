package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "payos_link",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "status"})

	// PaymentLinksTotal counts link creations by outcome: "created" or an error kind.
	PaymentLinksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "payos_link",
		Subsystem: "links",
		Name:      "created_total",
		Help:      "Payment link creation attempts by result.",
	}, []string{"result"})

	GatewayDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "payos_link",
		Subsystem: "gateway",
		Name:      "call_duration_seconds",
		Help:      "Latency of PayOS create-payment-link calls.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15, 30},
	}, []string{"result"})
)

func ObserveRequest(route string, status int, d time.Duration) {
	RequestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(d.Seconds())
}

func ObserveGateway(err error, d time.Duration) {
	result := "success"
	if err != nil {
		result = "error"
	}
	GatewayDuration.WithLabelValues(result).Observe(d.Seconds())
}

func Handler() http.Handler {
	return promhttp.Handler()
}

package metrics

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"photostudio-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Ledger status changes, labelled by the operation and the resulting status.
	LedgerTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_transitions_total",
			Help: "Transaction status changes recorded by the ledger",
		},
		[]string{"action", "status"},
	)

	RefundReviews = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refund_reviews_total",
			Help: "Refund requests reviewed by staff",
		},
		[]string{"decision"}, // approved|rejected
	)

	MailDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_mail_deliveries_total",
			Help: "Customer notification emails by outcome",
		},
		[]string{"outcome"},
	)

	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	initOnce sync.Once
)

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(LedgerTransitions)
		prometheus.MustRegister(RefundReviews)
		prometheus.MustRegister(MailDeliveries)
		prometheus.MustRegister(httpLatency)
	})
}

// Handler serves the default registry on a fiber route.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// HTTPMetrics records request latency keyed by the matched route pattern.
func HTTPMetrics() fiber.Handler {
	Init()

	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = apperror.Status(err)
			}
		}

		httpLatency.WithLabelValues(ctx.Method(), ctx.Route().Path, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
		return err
	}
}

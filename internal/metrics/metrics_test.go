package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsObservesRoutePattern(t *testing.T) {
	app := fiber.New()
	app.Use(HTTPMetrics())
	app.Get("/transactions/:id", func(ctx *fiber.Ctx) error { return ctx.SendStatus(204) })
	app.Get("/metrics", Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/transactions/42", nil))
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)

	assert.GreaterOrEqual(t, testutil.CollectAndCount(httpLatency), 1)

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestLedgerCounters(t *testing.T) {
	Init()
	before := testutil.ToFloat64(LedgerTransitions.WithLabelValues("approve", "Completed"))
	LedgerTransitions.WithLabelValues("approve", "Completed").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(LedgerTransitions.WithLabelValues("approve", "Completed")))
}

// Package metrics provides Prometheus metrics for the customizer service
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/modgarage/customizer/internal/dispatcher"
	"github.com/modgarage/customizer/internal/valuation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "customizer_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "customizer_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// Domain metrics
	ValuationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "customizer_valuations_total",
			Help: "Total number of design valuations",
		},
		[]string{"base_model", "rating"},
	)

	DesignsStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "customizer_designs_stored",
			Help: "Number of designs currently stored",
		},
	)
)

// stored mirrors DesignsStored for log context.
var stored atomic.Int64

// RecordRequest records one served HTTP request.
func RecordRequest(route, method string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// SetStored sets the stored designs gauge.
func SetStored(n int) {
	stored.Store(int64(n))
	DesignsStored.Set(float64(n))
}

// Stored returns the current stored designs count.
func Stored() int64 {
	return stored.Load()
}

func addStored(delta int64) {
	DesignsStored.Set(float64(stored.Add(delta)))
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

var errNoDesignEvent = errors.New("metrics: payload is not a DesignEvent")

// RegisterHandlers subscribes the design counters to lifecycle events.
func RegisterHandlers(d *dispatcher.Dispatcher) {
	d.Register(dispatcher.CmdDesignValuated, onValuated)
	d.Register(dispatcher.CmdDesignCreated, func(e dispatcher.Event) (any, error) {
		addStored(1)
		return nil, nil
	})
	d.Register(dispatcher.CmdDesignDeleted, func(e dispatcher.Event) (any, error) {
		addStored(-1)
		return nil, nil
	})
}

func onValuated(e dispatcher.Event) (any, error) {
	ev, ok := dispatcher.DesignEventFrom(e)
	if !ok {
		return nil, errNoDesignEvent
	}

	v := ev.Valuation
	if v == nil {
		computed, err := valuation.Valuate(ev.Design)
		if err != nil {
			return nil, err
		}
		v = &computed
	}
	ValuationsTotal.WithLabelValues(ev.Design.BaseModel, v.Rating.String()).Inc()
	return nil, nil
}

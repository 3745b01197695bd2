// Package metrics instruments a generation run with Prometheus collectors
// and exposes them over an optional gin server, grounded on the teacher
// repository's MetricsService (internal/service/metrics_service.go) and its
// gin-mounted /metrics handler, adapted from per-HTTP-request counters to
// per-run scheduling counters.
package metrics

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/andes-indica/timetable-scheduler/pkg/logger"
)

// Collector holds the scheduler's Prometheus instrumentation.
type Collector struct {
	registry *prometheus.Registry
	handler  http.Handler

	sessionsPlaced      *prometheus.CounterVec
	sessionsUnplaceable *prometheus.CounterVec
	roomAllocations     *prometheus.CounterVec
	runDuration         prometheus.Histogram
	coursesLoaded       prometheus.Gauge
	roomsLoaded         prometheus.Gauge
}

// New registers the collector set for one process.
func New() *Collector {
	registry := prometheus.NewRegistry()

	sessionsPlaced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_sessions_placed_total",
		Help: "Total sessions successfully placed, by kind",
	}, []string{"kind"})

	sessionsUnplaceable := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_sessions_unplaceable_total",
		Help: "Total required sessions that could not be placed, by kind",
	}, []string{"kind"})

	roomAllocations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_room_allocations_total",
		Help: "Room allocation attempts by outcome",
	}, []string{"outcome"})

	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_run_duration_seconds",
		Help:    "Duration of a full generation run",
		Buckets: prometheus.DefBuckets,
	})

	coursesLoaded := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "timetable_courses_loaded",
		Help: "Number of course catalog rows loaded in the most recent run",
	})

	roomsLoaded := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "timetable_rooms_loaded",
		Help: "Number of rooms loaded in the most recent run",
	})

	registry.MustRegister(sessionsPlaced, sessionsUnplaceable, roomAllocations, runDuration, coursesLoaded, roomsLoaded)

	return &Collector{
		registry:            registry,
		handler:             promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		sessionsPlaced:      sessionsPlaced,
		sessionsUnplaceable: sessionsUnplaceable,
		roomAllocations:     roomAllocations,
		runDuration:         runDuration,
		coursesLoaded:       coursesLoaded,
		roomsLoaded:         roomsLoaded,
	}
}

// ObservePlaced records a successfully placed session of the given kind.
func (c *Collector) ObservePlaced(kind string) {
	if c == nil {
		return
	}
	c.sessionsPlaced.WithLabelValues(kind).Inc()
}

// ObserveUnplaceable records a session that could not be placed.
func (c *Collector) ObserveUnplaceable(kind string) {
	if c == nil {
		return
	}
	c.sessionsUnplaceable.WithLabelValues(kind).Inc()
}

// ObserveRoomAllocation records a room allocation outcome ("ok" or "failed").
func (c *Collector) ObserveRoomAllocation(outcome string) {
	if c == nil {
		return
	}
	c.roomAllocations.WithLabelValues(outcome).Inc()
}

// ObserveRunDuration records the wall-clock duration of a completed run.
func (c *Collector) ObserveRunDuration(seconds float64) {
	if c == nil {
		return
	}
	c.runDuration.Observe(seconds)
}

// SetCatalogSize records the input sizes for the most recent run.
func (c *Collector) SetCatalogSize(courses, rooms int) {
	if c == nil {
		return
	}
	c.coursesLoaded.Set(float64(courses))
	c.roomsLoaded.Set(float64(rooms))
}

// Handler exposes the Prometheus scrape handler.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return c.handler
}

// Serve starts a minimal gin server exposing /metrics and /healthz on addr,
// blocking until the server exits. The caller runs this in a goroutine; a
// run never depends on it (spec.md's Non-goals keep observability a
// side-channel, not part of the scheduling contract). Requests are logged
// through the shared logger middleware, same as the teacher's HTTP surface.
func (c *Collector) Serve(addr string, log *zap.Logger) error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinMiddleware(log))
	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})
	router.GET("/metrics", gin.WrapH(c.Handler()))
	return router.Run(addr)
}

package middleware

import (
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

type MetricsBuilder struct {
	Namespace  string
	Subsystem  string
	Name       string
	Help       string
	InstanceID string
	registerer prometheus.Registerer
}

func NewMetricsBuilder(namespace, subsystem, name, help, instanceID string) *MetricsBuilder {
	return &MetricsBuilder{
		Namespace:  namespace,
		Subsystem:  subsystem,
		Name:       name,
		Help:       help,
		InstanceID: instanceID,
		registerer: prometheus.DefaultRegisterer,
	}
}

// Registerer swaps the registry; tests pass a fresh one per router.
func (m *MetricsBuilder) Registerer(r prometheus.Registerer) *MetricsBuilder {
	m.registerer = r
	return m
}

// Build records response time per method, route pattern and status, and
// the number of in-flight requests.
func (m *MetricsBuilder) Build() func(http.Handler) http.Handler {
	labels := []string{"method", "pattern", "status"}
	summary := prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: m.Namespace,
		Subsystem: m.Subsystem,
		Name:      m.Name + "_resp_time",
		Help:      m.Help,
		ConstLabels: prometheus.Labels{
			"instance_id": m.InstanceID,
		},
		Objectives: map[float64]float64{
			0.5:   0.01,
			0.9:   0.01,
			0.99:  0.005,
			0.999: 0.0001,
		},
	}, labels)
	m.registerer.MustRegister(summary)

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: m.Namespace,
		Subsystem: m.Subsystem,
		Name:      m.Name + "_active_req",
		Help:      m.Help,
		ConstLabels: prometheus.Labels{
			"instance_id": m.InstanceID,
		},
	})
	m.registerer.MustRegister(gauge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			gauge.Inc()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				gauge.Dec()
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				summary.WithLabelValues(r.Method, routePattern(r), strconv.Itoa(status)).
					Observe(float64(time.Since(start).Milliseconds()))
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

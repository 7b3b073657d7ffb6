package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contadores e histogramas del motor de previsión.
type Metrics struct {
	ForecastRuns    *prometheus.CounterVec
	FitDuration     prometheus.Histogram
	ForecastRowsSet prometheus.Gauge
}

// New registra los colectores en el registry por defecto de Prometheus.
func New() *Metrics {
	return &Metrics{
		ForecastRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forecast",
			Name:      "runs_total",
			Help:      "Corridas de previsión por producto, etiquetadas por resultado.",
		}, []string{"outcome"}), // ok | no_history | insufficient_history | error
		FitDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "forecast",
			Name:      "fit_duration_seconds",
			Help:      "Duración del ciclo fit+predict+persist por producto.",
			Buckets:   prometheus.DefBuckets,
		}),
		ForecastRowsSet: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "forecast",
			Name:      "last_batch_products",
			Help:      "Productos procesados en la última corrida batch.",
		}),
	}
}

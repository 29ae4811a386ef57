package crowdestate

import (
	"github.com/marcelofeitoza/crowd-estate/schema"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	MetricNameSpace = "crowdestate"
)

var (
	operationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricNameSpace,
			Name:      "operations_total",
			Help:      "accounting and governance operations by outcome",
		},
		[]string{"op", "status"},
	)

	propertiesGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: MetricNameSpace,
			Name:      "open_properties",
			Help:      "properties currently open for investment",
		},
	)

	unitsSoldGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: MetricNameSpace,
			Name:      "units_sold",
			Help:      "ownership units held by investors across all properties",
		},
	)

	dividendsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: MetricNameSpace,
			Name:      "dividends_declared",
			Help:      "cumulative declared dividends in payment base units",
		},
	)
)

func init() {
	prometheus.MustRegister(
		operationTotal,
		propertiesGauge,
		unitsSoldGauge,
		dividendsGauge,
	)
}

func metricOperation(op string, err error) {
	status := "ok"
	if err != nil {
		status = "err"
	}
	operationTotal.WithLabelValues(op, status).Inc()
}

func metricPlatformStats(stats schema.PlatformStats) {
	propertiesGauge.Set(float64(stats.OpenProperties))
	unitsSoldGauge.Set(float64(stats.UnitsSold))
	dividendsGauge.Set(float64(stats.DividendsDeclared))
}

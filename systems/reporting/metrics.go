package reporting

import "github.com/prometheus/client_golang/prometheus"

const (
	resultOK     = "ok"
	resultFailed = "failed"

	reasonRate      = "rate"
	reasonLevel     = "level"
	reasonDuplicate = "duplicate"
	reasonStopped   = "stopped"
	reasonNoURL     = "no_url"
)

type metrics struct {
	reports           *prometheus.CounterVec
	dropped           *prometheus.CounterVec
	registeredDevices prometheus.Gauge
	installationUp    prometheus.Gauge
	backlog           prometheus.Gauge
}

// Creates collectors and registers them in the provided registry.
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		reports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "monitor_reports_total",
				Help: "Reports sent to the collector.",
			},
			[]string{"kind", "result"},
		),
		dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "monitor_reports_dropped_total",
				Help: "Reports dropped before reaching the collector.",
			},
			[]string{"kind", "reason"},
		),
		registeredDevices: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "monitor_registered_devices",
				Help: "Number of monitored devices.",
			},
		),
		installationUp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "monitor_installation_up",
				Help: "Whether installation is up.",
			},
		),
		backlog: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "monitor_reports_backlog",
				Help: "Reports waiting for delivery.",
			},
		),
	}

	reg.MustRegister(m.reports)
	reg.MustRegister(m.dropped)
	reg.MustRegister(m.registeredDevices)
	reg.MustRegister(m.installationUp)
	reg.MustRegister(m.backlog)
	return m
}

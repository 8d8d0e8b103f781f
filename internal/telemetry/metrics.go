// Package telemetry exposes run progress as Prometheus metrics.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ising-mc/internal/ising"
)

// Metrics holds the collectors for one simulation on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	temperature    prometheus.Gauge
	field          prometheus.Gauge
	magnetization  prometheus.Gauge
	orderParameter prometheus.Gauge
	acceptance     prometheus.Gauge

	steps    prometheus.Counter
	trials   prometheus.Counter
	accepted prometheus.Counter
	samples  prometheus.Counter
}

// New registers the collectors. constLabels are attached to every series.
func New(constLabels prometheus.Labels) *Metrics {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "ising", Name: name, Help: help, ConstLabels: constLabels})
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ising", Name: name, Help: help, ConstLabels: constLabels})
	}
	m := &Metrics{
		registry:       prometheus.NewRegistry(),
		temperature:    gauge("temperature", "Temperature of the last step."),
		field:          gauge("field", "External field of the last step."),
		magnetization:  gauge("magnetization", "Mean spin after the last step."),
		orderParameter: gauge("order_parameter", "Normalised nearest-neighbour correlation after the last step."),
		acceptance:     gauge("acceptance_ratio", "Accepted flips over trials in the last step."),
		steps:          counter("steps_total", "Completed simulation steps."),
		trials:         counter("trials_total", "Metropolis trials performed."),
		accepted:       counter("accepted_total", "Metropolis trials accepted."),
		samples:        counter("samples_total", "Block samples recorded."),
	}
	m.registry.MustRegister(
		m.temperature, m.field, m.magnetization, m.orderParameter, m.acceptance,
		m.steps, m.trials, m.accepted, m.samples,
	)
	return m
}

// Observe records one step. trials is the number of trials the step ran.
func (m *Metrics) Observe(f ising.Frame, trials int) {
	if m == nil {
		return
	}
	m.temperature.Set(f.Temperature)
	m.field.Set(f.Field)
	m.magnetization.Set(f.Magnetization)
	m.orderParameter.Set(f.OrderParameter)
	if trials > 0 {
		m.acceptance.Set(float64(f.Accepted) / float64(trials))
	}
	m.steps.Inc()
	m.trials.Add(float64(trials))
	m.accepted.Add(float64(f.Accepted))
	if f.Sample != nil {
		m.samples.Inc()
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

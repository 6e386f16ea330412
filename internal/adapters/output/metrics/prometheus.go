package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"echonet-alexa-bridge/internal/domain/alexa"
	"echonet-alexa-bridge/internal/ports"
)

const namespace = "echonet_bridge"

type Metrics struct {
	directives      *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	roomTemperature *prometheus.GaugeVec
	targetSetpoint  *prometheus.GaugeVec
	powerState      *prometheus.GaugeVec
}

var (
	_ ports.Metrics        = (*Metrics)(nil)
	_ ports.StatePublisher = (*Metrics)(nil)
)

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		directives: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "directives_total",
				Help:      "Alexa directives handled, by result.",
			},
			[]string{"namespace", "name", "result"}),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "directive_duration_seconds",
				Help:      "Time spent handling a directive.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"namespace", "name"}),
		roomTemperature: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "room_temperature_celsius",
				Help:      "Last reported room temperature.",
			},
			[]string{"endpoint"}),
		targetSetpoint: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "target_setpoint_celsius",
				Help:      "Last reported target setpoint, 0 when off.",
			},
			[]string{"endpoint"}),
		powerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "power_state",
				Help:      "Last reported power state (1 on, 0 off).",
			},
			[]string{"endpoint"}),
	}
	reg.MustRegister(m.directives)
	reg.MustRegister(m.duration)
	reg.MustRegister(m.roomTemperature)
	reg.MustRegister(m.targetSetpoint)
	reg.MustRegister(m.powerState)
	return m
}

func (m *Metrics) ObserveDirective(namespace, name, result string, elapsed time.Duration) {
	m.directives.WithLabelValues(namespace, name, result).Inc()
	m.duration.WithLabelValues(namespace, name).Observe(elapsed.Seconds())
}

// Publish updates the per-endpoint gauges from a state report.
func (m *Metrics) Publish(ctx context.Context, endpointID string, properties []alexa.Property) error {
	for _, p := range properties {
		switch p.Name {
		case "temperature":
			if t, ok := p.Value.(alexa.Temperature); ok {
				m.roomTemperature.WithLabelValues(endpointID).Set(t.Value)
			}
		case "targetSetpoint":
			if t, ok := p.Value.(alexa.Temperature); ok {
				m.targetSetpoint.WithLabelValues(endpointID).Set(t.Value)
			}
		case "powerState":
			v := 0.0
			if p.Value == "ON" {
				v = 1
			}
			m.powerState.WithLabelValues(endpointID).Set(v)
		}
	}
	return nil
}

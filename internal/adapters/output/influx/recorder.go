package influx

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"echonet-alexa-bridge/internal/domain/alexa"
	"echonet-alexa-bridge/internal/domain/model"
	"echonet-alexa-bridge/internal/ports"
)

const Measurement = "thermostat"

type pointWriter interface {
	WritePoint(ctx context.Context, point ...*write.Point) error
}

// Recorder writes one "thermostat" point per state report, tagged with the
// endpoint id.
type Recorder struct {
	writer pointWriter
	close  func()
}

var _ ports.StatePublisher = (*Recorder)(nil)

func NewRecorder(cfg model.InfluxDBConfig) *Recorder {
	client := influxdb2.NewClient(cfg.URL, cfg.Token)
	return &Recorder{
		writer: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		close:  client.Close,
	}
}

func (r *Recorder) Publish(ctx context.Context, endpointID string, properties []alexa.Property) error {
	return r.writer.WritePoint(ctx, Point(endpointID, properties))
}

func (r *Recorder) Close() {
	if r.close != nil {
		r.close()
	}
}

// Point converts property reports into a single point. The sample time of the
// first report is used.
func Point(endpointID string, properties []alexa.Property) *write.Point {
	at := time.Now()
	if len(properties) > 0 {
		if t, err := time.Parse(alexa.TimeLayout, properties[0].TimeOfSample); err == nil {
			at = t
		}
	}

	p := influxdb2.NewPointWithMeasurement(Measurement).
		AddTag("endpoint", endpointID).
		SetTime(at)
	for _, prop := range properties {
		switch v := prop.Value.(type) {
		case alexa.Temperature:
			switch prop.Name {
			case "temperature":
				p.AddField("room_temperature", v.Value)
			case "targetSetpoint":
				p.AddField("target_setpoint", v.Value)
			}
		default:
			switch prop.Name {
			case "powerState":
				p.AddField("power", v == "ON")
			case "thermostatMode":
				p.AddField("mode", fmt.Sprint(v))
			}
		}
	}
	return p
}

package alexa

import (
	"time"

	"github.com/google/uuid"
)

// TimeLayout matches the ISO-8601 timestamps Alexa expects, with milliseconds.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

const (
	DisplayCategoryThermostat        = "THERMOSTAT"
	DisplayCategoryTemperatureSensor = "TEMPERATURE_SENSOR"
	DisplayCategorySceneTrigger      = "SCENE_TRIGGER"
)

func newHeader(namespace, name, correlationToken string) Header {
	return Header{
		Namespace:        namespace,
		Name:             name,
		MessageID:        uuid.NewString(),
		CorrelationToken: correlationToken,
		PayloadVersion:   PayloadVersion,
	}
}

func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

func NewDiscoverResponse(endpoints []DiscoveryEndpoint) *Response {
	if endpoints == nil {
		endpoints = []DiscoveryEndpoint{}
	}
	return &Response{
		Event: Event{
			Header:  newHeader(NamespaceDiscovery, "Discover.Response", ""),
			Payload: DiscoveryPayload{Endpoints: endpoints},
		},
	}
}

func NewAcceptGrantResponse() *Response {
	return &Response{
		Event: Event{
			Header:  newHeader(NamespaceAuthorization, "AcceptGrant.Response", ""),
			Payload: struct{}{},
		},
	}
}

// NewStateReport answers a ReportState directive.
func NewStateReport(req *Request, properties []Property) *Response {
	return &Response{
		Event: Event{
			Header:   newHeader(NamespaceAlexa, "StateReport", req.Directive.Header.CorrelationToken),
			Endpoint: &Endpoint{EndpointID: req.EndpointID()},
			Payload:  struct{}{},
		},
		Context: &Context{Properties: properties},
	}
}

// NewResponse acknowledges a controller directive.
func NewResponse(req *Request, properties []Property) *Response {
	return &Response{
		Event: Event{
			Header:   newHeader(NamespaceAlexa, "Response", req.Directive.Header.CorrelationToken),
			Endpoint: &Endpoint{EndpointID: req.EndpointID()},
			Payload:  struct{}{},
		},
		Context: &Context{Properties: properties},
	}
}

func NewActivationStarted(req *Request, at time.Time) *Response {
	return &Response{
		Event: Event{
			Header:   newHeader(NamespaceScene, "ActivationStarted", req.Directive.Header.CorrelationToken),
			Endpoint: &Endpoint{EndpointID: req.EndpointID()},
			Payload: ScenePayload{
				Cause:     SceneCause{Type: "APP_INTERACTION"},
				Timestamp: FormatTime(at),
			},
		},
		Context: &Context{},
	}
}

// NewErrorResponse builds the ErrorResponse for err. The endpoint is always
// present and carries "" when the directive addressed no endpoint.
func NewErrorResponse(req *Request, err error) *Response {
	return &Response{
		Event: Event{
			Header:   newHeader(NamespaceAlexa, "ErrorResponse", ""),
			Endpoint: &Endpoint{EndpointID: req.EndpointID()},
			Payload:  ErrorPayloadFor(err),
		},
	}
}

func retrievable(names ...string) *CapabilityProperties {
	supported := make([]SupportedProperty, 0, len(names))
	for _, n := range names {
		supported = append(supported, SupportedProperty{Name: n})
	}
	return &CapabilityProperties{Supported: supported, ProactivelyReported: true, Retrievable: true}
}

// ThermostatCapabilities advertises thermostat control, temperature sensing,
// power control and the mandatory Alexa interface.
func ThermostatCapabilities() []Capability {
	return []Capability{
		{
			Type:       "AlexaInterface",
			Interface:  NamespaceThermostat,
			Version:    PayloadVersion,
			Properties: retrievable("targetSetpoint", "thermostatMode"),
			Configuration: ThermostatConfiguration{
				SupportedModes:     []string{"AUTO", "COOL", "HEAT"},
				SupportsScheduling: false,
			},
		},
		{
			Type:       "AlexaInterface",
			Interface:  NamespaceTemperature,
			Version:    PayloadVersion,
			Properties: retrievable("temperature"),
		},
		{
			Type:       "AlexaInterface",
			Interface:  NamespacePower,
			Version:    PayloadVersion,
			Properties: retrievable("powerState"),
		},
		{
			Type:      "AlexaInterface",
			Interface: NamespaceAlexa,
			Version:   PayloadVersion,
		},
	}
}

func SceneCapabilities() []Capability {
	f := false
	return []Capability{
		{
			Type:                 "AlexaInterface",
			Interface:            NamespaceScene,
			Version:              PayloadVersion,
			SupportsDeactivation: &f,
			ProactivelyReported:  &f,
		},
		{
			Type:      "AlexaInterface",
			Interface: NamespaceAlexa,
			Version:   PayloadVersion,
		},
	}
}

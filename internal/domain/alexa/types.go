// Package alexa holds the Alexa Smart Home (payload version 3) envelope types
// and the builders for the responses this bridge sends back.
package alexa

import "encoding/json"

const PayloadVersion = "3"

// Namespaces
const (
	NamespaceAlexa         = "Alexa"
	NamespaceDiscovery     = "Alexa.Discovery"
	NamespaceAuthorization = "Alexa.Authorization"
	NamespaceThermostat    = "Alexa.ThermostatController"
	NamespaceTemperature   = "Alexa.TemperatureSensor"
	NamespacePower         = "Alexa.PowerController"
	NamespaceScene         = "Alexa.SceneController"
)

// Directive names
const (
	NameDiscover                = "Discover"
	NameAcceptGrant             = "AcceptGrant"
	NameReportState             = "ReportState"
	NameSetTargetTemperature    = "SetTargetTemperature"
	NameAdjustTargetTemperature = "AdjustTargetTemperature"
	NameSetThermostatMode       = "SetThermostatMode"
	NameTurnOn                  = "TurnOn"
	NameTurnOff                 = "TurnOff"
	NameActivate                = "Activate"
	NameDeactivate              = "Deactivate"
)

const ScaleCelsius = "CELSIUS"

type Request struct {
	Directive Directive `json:"directive"`
}

type Directive struct {
	Header   Header          `json:"header"`
	Endpoint *Endpoint       `json:"endpoint,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

type Header struct {
	Namespace        string `json:"namespace"`
	Name             string `json:"name"`
	MessageID        string `json:"messageId"`
	CorrelationToken string `json:"correlationToken,omitempty"`
	PayloadVersion   string `json:"payloadVersion"`
}

type Endpoint struct {
	EndpointID string `json:"endpointId"`
}

// EndpointID returns the addressed endpoint id or "" when the directive has none.
func (r *Request) EndpointID() string {
	if r == nil || r.Directive.Endpoint == nil {
		return ""
	}
	return r.Directive.Endpoint.EndpointID
}

// DecodePayload unmarshals the directive payload into v.
func (r *Request) DecodePayload(v any) error {
	if len(r.Directive.Payload) == 0 {
		return json.Unmarshal([]byte("{}"), v)
	}
	return json.Unmarshal(r.Directive.Payload, v)
}

type Response struct {
	Event   Event    `json:"event"`
	Context *Context `json:"context,omitempty"`
}

type Event struct {
	Header   Header    `json:"header"`
	Endpoint *Endpoint `json:"endpoint,omitempty"`
	Payload  any       `json:"payload"`
}

type Context struct {
	Properties []Property `json:"properties,omitempty"`
}

type Property struct {
	Namespace                 string `json:"namespace"`
	Name                      string `json:"name"`
	Value                     any    `json:"value"`
	TimeOfSample              string `json:"timeOfSample"`
	UncertaintyInMilliseconds int    `json:"uncertaintyInMilliseconds"`
}

type Temperature struct {
	Value float64 `json:"value"`
	Scale string  `json:"scale"`
}

// Directive payloads

type TemperaturePayload struct {
	Value float64 `json:"value"`
	Scale string  `json:"scale,omitempty"`
}

type SetTargetTemperaturePayload struct {
	TargetSetpoint TemperaturePayload `json:"targetSetpoint"`
}

type AdjustTargetTemperaturePayload struct {
	TargetSetpointDelta TemperaturePayload `json:"targetSetpointDelta"`
}

type ThermostatModePayload struct {
	Value      string `json:"value"`
	CustomName string `json:"customName,omitempty"`
}

type SetThermostatModePayload struct {
	ThermostatMode ThermostatModePayload `json:"thermostatMode"`
}

// Discovery

type DiscoveryPayload struct {
	Endpoints []DiscoveryEndpoint `json:"endpoints"`
}

type DiscoveryEndpoint struct {
	EndpointID        string       `json:"endpointId"`
	ManufacturerName  string       `json:"manufacturerName"`
	FriendlyName      string       `json:"friendlyName"`
	Description       string       `json:"description"`
	DisplayCategories []string     `json:"displayCategories"`
	Capabilities      []Capability `json:"capabilities"`
}

type Capability struct {
	Type                 string                `json:"type"`
	Interface            string                `json:"interface"`
	Version              string                `json:"version"`
	Properties           *CapabilityProperties `json:"properties,omitempty"`
	Configuration        any                   `json:"configuration,omitempty"`
	SupportsDeactivation *bool                 `json:"supportsDeactivation,omitempty"`
	ProactivelyReported  *bool                 `json:"proactivelyReported,omitempty"`
}

type CapabilityProperties struct {
	Supported           []SupportedProperty `json:"supported"`
	ProactivelyReported bool                `json:"proactivelyReported"`
	Retrievable         bool                `json:"retrievable"`
}

type SupportedProperty struct {
	Name string `json:"name"`
}

type ThermostatConfiguration struct {
	SupportedModes     []string `json:"supportedModes"`
	SupportsScheduling bool     `json:"supportsScheduling"`
}

// Scenes

type SceneCause struct {
	Type string `json:"type"`
}

type ScenePayload struct {
	Cause     SceneCause `json:"cause"`
	Timestamp string     `json:"timestamp"`
}

// Errors

type ErrorPayload struct {
	Type       string      `json:"type"`
	Message    string      `json:"message"`
	ValidRange *ValidRange `json:"validRange,omitempty"`
}

type ValidRange struct {
	MinimumValue Temperature `json:"minimumValue"`
	MaximumValue Temperature `json:"maximumValue"`
}

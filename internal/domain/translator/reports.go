package translator

import (
	"time"

	"echonet-alexa-bridge/internal/domain/alexa"
	"echonet-alexa-bridge/internal/domain/model"
)

// ReportedSetpoint is the target setpoint shown to Alexa. It is 0 while the
// unit is off or circulating air, where the app must not offer a setpoint.
func ReportedSetpoint(p *model.DeviceProperties) int {
	if !p.OperationStatus || p.OperationMode == model.OperationModeCirculation {
		return 0
	}
	return p.TargetTemperature
}

func powerState(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

// Reports builds the property reports, in the order thermostatMode,
// targetSetpoint, temperature, powerState.
func Reports(p *model.DeviceProperties, at time.Time, uncertainty int) []alexa.Property {
	sampled := alexa.FormatTime(at)
	return []alexa.Property{
		{
			Namespace:                 alexa.NamespaceThermostat,
			Name:                      "thermostatMode",
			Value:                     ToAssistantMode(p.OperationStatus, p.OperationMode),
			TimeOfSample:              sampled,
			UncertaintyInMilliseconds: uncertainty,
		},
		{
			Namespace:                 alexa.NamespaceThermostat,
			Name:                      "targetSetpoint",
			Value:                     alexa.Temperature{Value: float64(ReportedSetpoint(p)), Scale: alexa.ScaleCelsius},
			TimeOfSample:              sampled,
			UncertaintyInMilliseconds: uncertainty,
		},
		{
			Namespace:                 alexa.NamespaceTemperature,
			Name:                      "temperature",
			Value:                     alexa.Temperature{Value: p.RoomTemperature, Scale: alexa.ScaleCelsius},
			TimeOfSample:              sampled,
			UncertaintyInMilliseconds: uncertainty,
		},
		{
			Namespace:                 alexa.NamespacePower,
			Name:                      "powerState",
			Value:                     powerState(p.OperationStatus),
			TimeOfSample:              sampled,
			UncertaintyInMilliseconds: uncertainty,
		},
	}
}

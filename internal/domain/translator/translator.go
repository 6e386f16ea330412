// Package translator converts between ECHONET Lite device properties and the
// Alexa thermostat vocabulary.
package translator

import (
	"echonet-alexa-bridge/internal/domain/model"
)

// ThermostatMode is the Alexa ThermostatController mode vocabulary.
type ThermostatMode string

const (
	ThermostatAuto       ThermostatMode = "AUTO"
	ThermostatCool       ThermostatMode = "COOL"
	ThermostatHeat       ThermostatMode = "HEAT"
	ThermostatFan        ThermostatMode = "FAN"
	ThermostatDehumidify ThermostatMode = "DEHUMIDIFY"
	ThermostatOff        ThermostatMode = "OFF"
	ThermostatCustom     ThermostatMode = "CUSTOM"
)

// ToAssistantMode maps a device state to the Alexa mode. Modes Alexa cannot
// express directly are reported as CUSTOM.
func ToAssistantMode(operationStatus bool, mode model.OperationMode) ThermostatMode {
	if !operationStatus {
		return ThermostatOff
	}
	switch mode {
	case model.OperationModeAuto:
		return ThermostatAuto
	case model.OperationModeCooling:
		return ThermostatCool
	case model.OperationModeHeating:
		return ThermostatHeat
	}
	return ThermostatCustom
}

// ToBackendMode maps an Alexa mode to an ECHONET operation mode. customName is
// only consulted for CUSTOM. ok is false for OFF and unknown custom names,
// which callers treat as "turn off".
func ToBackendMode(mode ThermostatMode, customName string) (model.OperationMode, bool) {
	switch mode {
	case ThermostatAuto:
		return model.OperationModeAuto, true
	case ThermostatCool:
		return model.OperationModeCooling, true
	case ThermostatHeat:
		return model.OperationModeHeating, true
	case ThermostatFan:
		return model.OperationModeCirculation, true
	case ThermostatDehumidify:
		return model.OperationModeDehumidification, true
	case ThermostatCustom:
		switch customName {
		case "DEHUMIDIFY":
			return model.OperationModeDehumidification, true
		case "FAN":
			return model.OperationModeCirculation, true
		}
	}
	return "", false
}

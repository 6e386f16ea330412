package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type DeviceID = string

type OperationMode string

const (
	OperationModeAuto             OperationMode = "auto"
	OperationModeCooling          OperationMode = "cooling"
	OperationModeHeating          OperationMode = "heating"
	OperationModeDehumidification OperationMode = "dehumidification"
	OperationModeCirculation      OperationMode = "circulation"
	OperationModeOther            OperationMode = "other"
)

// PropertyName is the backend name of a device property.
type PropertyName string

const (
	PropertyOperationStatus   PropertyName = "operationStatus"
	PropertyOperationMode     PropertyName = "operationMode"
	PropertyTargetTemperature PropertyName = "targetTemperature"
	PropertyAirFlowLevel      PropertyName = "airFlowLevel"
	PropertyProductCode       PropertyName = "productCode"
	PropertyRoomTemperature   PropertyName = "roomTemperature"
)

// AirFlowLevel is either "auto" or a numeric level.
type AirFlowLevel struct {
	Auto  bool
	Level int
}

func AirFlowAuto() AirFlowLevel { return AirFlowLevel{Auto: true} }

func AirFlowLevelOf(level int) AirFlowLevel { return AirFlowLevel{Level: level} }

func (a AirFlowLevel) String() string {
	if a.Auto {
		return "auto"
	}
	return strconv.Itoa(a.Level)
}

func (a AirFlowLevel) MarshalJSON() ([]byte, error) {
	if a.Auto {
		return []byte(`"auto"`), nil
	}
	return []byte(strconv.Itoa(a.Level)), nil
}

func (a *AirFlowLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "auto" {
			return fmt.Errorf("invalid air flow level %q", s)
		}
		*a = AirFlowAuto()
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid air flow level %s", data)
	}
	*a = AirFlowLevelOf(int(n))
	return nil
}

// DeviceProperties is a snapshot of one air conditioner as reported by the backend.
type DeviceProperties struct {
	ID                DeviceID      `json:"id"`
	OperationStatus   bool          `json:"operationStatus"`
	OperationMode     OperationMode `json:"operationMode"`
	TargetTemperature int           `json:"targetTemperature"`
	AirFlowLevel      AirFlowLevel  `json:"airFlowLevel"`
	ProductCode       string        `json:"productCode"`
	RoomTemperature   float64       `json:"roomTemperature"`
}

// PropertiesUpdate carries only the fields that change.
type PropertiesUpdate struct {
	OperationStatus   *bool          `json:"operationStatus,omitempty"`
	OperationMode     *OperationMode `json:"operationMode,omitempty"`
	TargetTemperature *int           `json:"targetTemperature,omitempty"`
	AirFlowLevel      *AirFlowLevel  `json:"airFlowLevel,omitempty"`
}

func (u *PropertiesUpdate) SetOperationStatus(on bool) *PropertiesUpdate {
	u.OperationStatus = &on
	return u
}

func (u *PropertiesUpdate) SetOperationMode(mode OperationMode) *PropertiesUpdate {
	u.OperationMode = &mode
	return u
}

func (u *PropertiesUpdate) SetTargetTemperature(t int) *PropertiesUpdate {
	u.TargetTemperature = &t
	return u
}

func (u *PropertiesUpdate) SetAirFlowLevel(level AirFlowLevel) *PropertiesUpdate {
	u.AirFlowLevel = &level
	return u
}

func (u *PropertiesUpdate) IsEmpty() bool {
	return u.OperationStatus == nil && u.OperationMode == nil && u.TargetTemperature == nil && u.AirFlowLevel == nil
}

// Apply merges an update that was accepted by the backend into the snapshot.
// Server-side derived fields are not refreshed.
func (p *DeviceProperties) Apply(u *PropertiesUpdate) {
	if u.OperationStatus != nil {
		p.OperationStatus = *u.OperationStatus
	}
	if u.OperationMode != nil {
		p.OperationMode = *u.OperationMode
	}
	if u.TargetTemperature != nil {
		p.TargetTemperature = *u.TargetTemperature
	}
	if u.AirFlowLevel != nil {
		p.AirFlowLevel = *u.AirFlowLevel
	}
}

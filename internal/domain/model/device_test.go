package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceProperties_Decode(t *testing.T) {
	raw := `{
		"id": "dev-1",
		"operationStatus": true,
		"operationMode": "cooling",
		"targetTemperature": 26,
		"airFlowLevel": "auto",
		"productCode": "43532d303030303030303030",
		"roomTemperature": 27.5
	}`
	var p DeviceProperties
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, "dev-1", p.ID)
	assert.True(t, p.OperationStatus)
	assert.Equal(t, OperationModeCooling, p.OperationMode)
	assert.Equal(t, 26, p.TargetTemperature)
	assert.True(t, p.AirFlowLevel.Auto)
	assert.Equal(t, 27.5, p.RoomTemperature)

	require.NoError(t, json.Unmarshal([]byte(`{"airFlowLevel": 3}`), &p))
	assert.False(t, p.AirFlowLevel.Auto)
	assert.Equal(t, 3, p.AirFlowLevel.Level)

	assert.Error(t, json.Unmarshal([]byte(`{"airFlowLevel": "fast"}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"airFlowLevel": true}`), &p))
}

func TestPropertiesUpdate_OnlyChangedFields(t *testing.T) {
	u := (&PropertiesUpdate{}).SetTargetTemperature(22).SetOperationStatus(true)
	data, err := json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t, `{"targetTemperature":22,"operationStatus":true}`, string(data))

	u = (&PropertiesUpdate{}).SetAirFlowLevel(AirFlowAuto())
	data, err = json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t, `{"airFlowLevel":"auto"}`, string(data))

	u = (&PropertiesUpdate{}).SetAirFlowLevel(AirFlowLevelOf(4))
	data, err = json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t, `{"airFlowLevel":4}`, string(data))

	// false must still be sent
	u = (&PropertiesUpdate{}).SetOperationStatus(false)
	data, err = json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t, `{"operationStatus":false}`, string(data))

	assert.True(t, (&PropertiesUpdate{}).IsEmpty())
	assert.False(t, u.IsEmpty())
}

func TestDeviceProperties_Apply(t *testing.T) {
	p := DeviceProperties{
		ID:                "dev-1",
		OperationMode:     OperationModeHeating,
		TargetTemperature: 20,
		RoomTemperature:   18,
	}
	p.Apply((&PropertiesUpdate{}).SetOperationStatus(true).SetTargetTemperature(23))

	assert.True(t, p.OperationStatus)
	assert.Equal(t, 23, p.TargetTemperature)
	assert.Equal(t, OperationModeHeating, p.OperationMode)
	assert.Equal(t, 18.0, p.RoomTemperature)

	p.Apply((&PropertiesUpdate{}).SetOperationMode(OperationModeCooling).SetAirFlowLevel(AirFlowLevelOf(2)))
	assert.Equal(t, OperationModeCooling, p.OperationMode)
	assert.Equal(t, "2", p.AirFlowLevel.String())
}

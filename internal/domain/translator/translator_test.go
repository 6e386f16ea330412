package translator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echonet-alexa-bridge/internal/domain/alexa"
	"echonet-alexa-bridge/internal/domain/model"
)

var jst = time.FixedZone("JST", 9*60*60)

func TestToAssistantMode(t *testing.T) {
	for _, mode := range []model.OperationMode{
		model.OperationModeAuto, model.OperationModeCooling, model.OperationModeHeating,
		model.OperationModeDehumidification, model.OperationModeCirculation, model.OperationModeOther,
	} {
		assert.Equal(t, ThermostatOff, ToAssistantMode(false, mode), mode)
	}

	assert.Equal(t, ThermostatAuto, ToAssistantMode(true, model.OperationModeAuto))
	assert.Equal(t, ThermostatCool, ToAssistantMode(true, model.OperationModeCooling))
	assert.Equal(t, ThermostatHeat, ToAssistantMode(true, model.OperationModeHeating))
	assert.Equal(t, ThermostatCustom, ToAssistantMode(true, model.OperationModeDehumidification))
	assert.Equal(t, ThermostatCustom, ToAssistantMode(true, model.OperationModeCirculation))
	assert.Equal(t, ThermostatCustom, ToAssistantMode(true, model.OperationModeOther))
}

func TestToBackendMode(t *testing.T) {
	cases := []struct {
		mode   ThermostatMode
		custom string
		want   model.OperationMode
		ok     bool
	}{
		{ThermostatAuto, "", model.OperationModeAuto, true},
		{ThermostatCool, "", model.OperationModeCooling, true},
		{ThermostatHeat, "", model.OperationModeHeating, true},
		{ThermostatFan, "", model.OperationModeCirculation, true},
		{ThermostatDehumidify, "", model.OperationModeDehumidification, true},
		{ThermostatCustom, "DEHUMIDIFY", model.OperationModeDehumidification, true},
		{ThermostatCustom, "FAN", model.OperationModeCirculation, true},
		{ThermostatCustom, "ECO", "", false},
		{ThermostatOff, "", "", false},
		{ThermostatOff, "FAN", "", false},
		{ThermostatAuto, "FAN", model.OperationModeAuto, true},
	}
	for _, c := range cases {
		got, ok := ToBackendMode(c.mode, c.custom)
		assert.Equal(t, c.ok, ok, "%s/%s", c.mode, c.custom)
		assert.Equal(t, c.want, got, "%s/%s", c.mode, c.custom)
	}
}

func TestToBackendMode_LeftInverse(t *testing.T) {
	for _, mode := range []model.OperationMode{model.OperationModeAuto, model.OperationModeCooling, model.OperationModeHeating} {
		got, ok := ToBackendMode(ToAssistantMode(true, mode), "")
		assert.True(t, ok)
		assert.Equal(t, mode, got)
	}
}

func TestFactory(t *testing.T) {
	f := NewFactory()
	assert.Equal(t, Range{Min: 16, Max: 30}, f.GetRange(ProductCodePanasonicEolia))
	assert.Equal(t, Range{Min: 0, Max: 50}, f.GetRange(""))
	assert.Equal(t, Range{Min: 0, Max: 50}, f.GetRange("000000000000000000000000"))

	r := f.GetRange(ProductCodePanasonicEolia)
	assert.True(t, r.Contains(16))
	assert.True(t, r.Contains(30))
	assert.False(t, r.Contains(15))
	assert.False(t, r.Contains(31))
}

func TestAirFlowFormula(t *testing.T) {
	f, err := NewAirFlowFormula("")
	require.NoError(t, err)
	assert.Equal(t, DefaultAirFlowFormula, f.String())

	level, ok := f.Level(50)
	assert.True(t, ok)
	assert.True(t, level.Auto)

	for sp := 51; sp <= 58; sp++ {
		level, ok = f.Level(sp)
		assert.True(t, ok, sp)
		assert.False(t, level.Auto)
		assert.Equal(t, sp-49, level.Level)
	}

	for _, sp := range []int{0, 25, 49, 59, 100} {
		_, ok = f.Level(sp)
		assert.False(t, ok, sp)
	}
}

func TestAirFlowFormula_Custom(t *testing.T) {
	f, err := NewAirFlowFormula("x - 50")
	require.NoError(t, err)
	level, ok := f.Level(58)
	assert.True(t, ok)
	assert.Equal(t, 8, level.Level)

	_, err = NewAirFlowFormula("(x - 49")
	assert.Error(t, err)
}

func TestReports(t *testing.T) {
	at := time.Date(2024, 7, 1, 12, 0, 0, 0, jst)
	p := &model.DeviceProperties{
		OperationStatus:   true,
		OperationMode:     model.OperationModeCooling,
		TargetTemperature: 26,
		RoomTemperature:   28.5,
	}

	reports := Reports(p, at, 0)
	require.Len(t, reports, 4)

	assert.Equal(t, "thermostatMode", reports[0].Name)
	assert.Equal(t, alexa.NamespaceThermostat, reports[0].Namespace)
	assert.Equal(t, ThermostatCool, reports[0].Value)

	assert.Equal(t, "targetSetpoint", reports[1].Name)
	assert.Equal(t, alexa.Temperature{Value: 26, Scale: "CELSIUS"}, reports[1].Value)

	assert.Equal(t, "temperature", reports[2].Name)
	assert.Equal(t, alexa.NamespaceTemperature, reports[2].Namespace)
	assert.Equal(t, alexa.Temperature{Value: 28.5, Scale: "CELSIUS"}, reports[2].Value)

	assert.Equal(t, "powerState", reports[3].Name)
	assert.Equal(t, alexa.NamespacePower, reports[3].Namespace)
	assert.Equal(t, "ON", reports[3].Value)

	for _, r := range reports {
		assert.Equal(t, "2024-07-01T12:00:00.000+09:00", r.TimeOfSample)
		assert.Equal(t, 0, r.UncertaintyInMilliseconds)
	}
}

func TestReportedSetpoint(t *testing.T) {
	p := &model.DeviceProperties{OperationStatus: false, OperationMode: model.OperationModeCooling, TargetTemperature: 26}
	assert.Equal(t, 0, ReportedSetpoint(p))

	p = &model.DeviceProperties{OperationStatus: true, OperationMode: model.OperationModeCirculation, TargetTemperature: 26}
	assert.Equal(t, 0, ReportedSetpoint(p))

	p = &model.DeviceProperties{OperationStatus: true, OperationMode: model.OperationModeHeating, TargetTemperature: 22}
	assert.Equal(t, 22, ReportedSetpoint(p))

	assert.Equal(t, "OFF", Reports(&model.DeviceProperties{}, time.Now(), 0)[3].Value)
}

func day(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 10, 0, 0, 0, jst)
}

func TestAutoJudge_Cooling(t *testing.T) {
	p := &model.DeviceProperties{RoomTemperature: 29, TargetTemperature: 22}
	u := AutoJudge(p, day(time.July, 1))
	require.NotNil(t, u)
	assert.True(t, *u.OperationStatus)
	assert.Equal(t, model.OperationModeCooling, *u.OperationMode)
	require.NotNil(t, u.TargetTemperature)
	assert.Equal(t, 26, *u.TargetTemperature)

	p.TargetTemperature = 25
	u = AutoJudge(p, day(time.July, 1))
	require.NotNil(t, u)
	assert.Equal(t, model.OperationModeCooling, *u.OperationMode)
	assert.Nil(t, u.TargetTemperature)

	p.TargetTemperature = 24
	assert.Nil(t, AutoJudge(p, day(time.July, 1)).TargetTemperature)

	p.RoomTemperature = 28
	assert.Nil(t, AutoJudge(p, day(time.July, 1)))
}

func TestAutoJudge_Heating(t *testing.T) {
	p := &model.DeviceProperties{RoomTemperature: 18, TargetTemperature: 25}
	u := AutoJudge(p, day(time.January, 15))
	require.NotNil(t, u)
	assert.Equal(t, model.OperationModeHeating, *u.OperationMode)
	assert.Equal(t, 20, *u.TargetTemperature)

	p.TargetTemperature = 24
	assert.Equal(t, 20, *AutoJudge(p, day(time.December, 1)).TargetTemperature)

	p.TargetTemperature = 22
	u = AutoJudge(p, day(time.November, 1))
	require.NotNil(t, u)
	assert.Nil(t, u.TargetTemperature)

	p.RoomTemperature = 20
	assert.Nil(t, AutoJudge(p, day(time.February, 1)))
}

func TestAutoJudge_SeasonBoundaries(t *testing.T) {
	hot := &model.DeviceProperties{RoomTemperature: 35}
	cold := &model.DeviceProperties{RoomTemperature: 5}

	assert.Nil(t, AutoJudge(hot, day(time.June, 15)))
	assert.NotNil(t, AutoJudge(hot, day(time.June, 16)))
	assert.NotNil(t, AutoJudge(hot, day(time.September, 15)))
	assert.Nil(t, AutoJudge(hot, day(time.September, 16)))

	assert.NotNil(t, AutoJudge(cold, day(time.January, 1)))
	assert.NotNil(t, AutoJudge(cold, day(time.March, 31)))
	assert.Nil(t, AutoJudge(cold, day(time.April, 1)))
	assert.Nil(t, AutoJudge(cold, day(time.October, 31)))
	assert.NotNil(t, AutoJudge(cold, day(time.November, 1)))
	assert.NotNil(t, AutoJudge(cold, day(time.December, 31)))

	// Cold in summer and hot in winter change nothing.
	assert.Nil(t, AutoJudge(cold, day(time.July, 1)))
	assert.Nil(t, AutoJudge(hot, day(time.January, 10)))
}

func TestAutoJudge_OutsideSeasons(t *testing.T) {
	for _, temp := range []float64{-10, 10, 25, 40} {
		assert.Nil(t, AutoJudge(&model.DeviceProperties{RoomTemperature: temp}, day(time.April, 15)))
	}
}

func TestAutoJudge_AlreadyOn(t *testing.T) {
	p := &model.DeviceProperties{OperationStatus: true, RoomTemperature: 35}
	assert.Nil(t, AutoJudge(p, day(time.August, 1)))
}

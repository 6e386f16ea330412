package translator

import (
	"time"

	"echonet-alexa-bridge/internal/domain/model"
)

const (
	// TemperatureCoolThreshold decides whether the stored setpoint is reset to
	// the season default when the unit is switched on automatically.
	TemperatureCoolThreshold = 24

	coolingRoomTemperature = 28.0
	heatingRoomTemperature = 20.0
)

var DefaultTemperature = map[model.OperationMode]int{
	model.OperationModeCooling: 26,
	model.OperationModeHeating: 20,
}

type monthDay struct {
	month time.Month
	day   int
}

func (d monthDay) before(o monthDay) bool {
	return d.month < o.month || (d.month == o.month && d.day < o.day)
}

type season struct {
	from, to monthDay
}

func (s season) contains(t time.Time) bool {
	d := monthDay{t.Month(), t.Day()}
	return !d.before(s.from) && !s.to.before(d)
}

var (
	coolingSeason  = []season{{monthDay{time.June, 16}, monthDay{time.September, 15}}}
	heatingSeasons = []season{
		{monthDay{time.January, 1}, monthDay{time.March, 31}},
		{monthDay{time.November, 1}, monthDay{time.December, 31}},
	}
)

func inAny(seasons []season, t time.Time) bool {
	for _, s := range seasons {
		if s.contains(t) {
			return true
		}
	}
	return false
}

// AutoJudge decides whether a unit that is off should start cooling or
// heating, based on the room temperature and the calendar date of now in its
// own location. It returns nil when nothing should change.
func AutoJudge(p *model.DeviceProperties, now time.Time) *model.PropertiesUpdate {
	if p.OperationStatus {
		return nil
	}

	var mode model.OperationMode
	var resetTemperature bool
	switch {
	case inAny(coolingSeason, now):
		if p.RoomTemperature > coolingRoomTemperature {
			mode = model.OperationModeCooling
			resetTemperature = p.TargetTemperature < TemperatureCoolThreshold
		}
	case inAny(heatingSeasons, now):
		if p.RoomTemperature < heatingRoomTemperature {
			mode = model.OperationModeHeating
			resetTemperature = p.TargetTemperature >= TemperatureCoolThreshold
		}
	}
	if mode == "" {
		return nil
	}

	update := (&model.PropertiesUpdate{}).SetOperationStatus(true).SetOperationMode(mode)
	if resetTemperature {
		if t, ok := DefaultTemperature[mode]; ok {
			update.SetTargetTemperature(t)
		}
	}
	return update
}

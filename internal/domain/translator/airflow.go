package translator

import (
	"fmt"

	"github.com/Knetic/govaluate"

	"echonet-alexa-bridge/internal/domain/model"
)

// Setpoints from AirFlowBaseSetpoint to AirFlowBaseSetpoint+8 select the air
// flow instead of a temperature: 50 is auto, 51..58 map through the formula.
const (
	AirFlowBaseSetpoint = 50
	airFlowMaxOffset    = 8

	DefaultAirFlowFormula = "x - 49"
)

type AirFlowFormula struct {
	formula string
	expr    *govaluate.EvaluableExpression
}

func NewAirFlowFormula(formula string) (*AirFlowFormula, error) {
	if formula == "" {
		formula = DefaultAirFlowFormula
	}
	expr, err := govaluate.NewEvaluableExpression(formula)
	if err != nil {
		return nil, fmt.Errorf("invalid air flow formula %q: %w", formula, err)
	}
	return &AirFlowFormula{formula: formula, expr: expr}, nil
}

func (f *AirFlowFormula) String() string {
	return f.formula
}

// Level reports whether setpoint is an air flow selector and, if so, the level.
func (f *AirFlowFormula) Level(setpoint int) (model.AirFlowLevel, bool) {
	if setpoint == AirFlowBaseSetpoint {
		return model.AirFlowAuto(), true
	}
	if setpoint < AirFlowBaseSetpoint+1 || setpoint > AirFlowBaseSetpoint+airFlowMaxOffset {
		return model.AirFlowLevel{}, false
	}
	return model.AirFlowLevelOf(f.evaluate(setpoint)), true
}

func (f *AirFlowFormula) evaluate(x int) int {
	fallback := x - AirFlowBaseSetpoint + 1
	result, err := f.expr.Evaluate(map[string]interface{}{"x": float64(x)})
	if err != nil {
		return fallback
	}
	if val, ok := result.(float64); ok {
		return int(val)
	}
	return fallback
}

package translator

// Range is an inclusive setpoint range in degrees Celsius.
type Range struct {
	Min int
	Max int
}

func (r Range) Contains(t int) bool {
	return t >= r.Min && t <= r.Max
}

// ProductCodePanasonicEolia identifies Panasonic Eolia units, which accept 16..30.
const ProductCodePanasonicEolia = "43532d303030303030303030"

// DefaultRange is the ECHONET Lite temperature setting range.
var DefaultRange = Range{Min: 0, Max: 50}

// Factory selects the temperature range for a product code.
type Factory struct {
	ranges map[string]Range
}

func NewFactory() *Factory {
	return &Factory{
		ranges: map[string]Range{
			ProductCodePanasonicEolia: {Min: 16, Max: 30},
		},
	}
}

func (f *Factory) GetRange(productCode string) Range {
	if r, ok := f.ranges[productCode]; ok {
		return r
	}
	return DefaultRange
}

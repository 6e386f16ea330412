package alexa

import "errors"

// ErrorKind is the Alexa error type reported in an ErrorResponse payload.
type ErrorKind string

const (
	KindInternal              ErrorKind = "INTERNAL_ERROR"
	KindNotInOperation        ErrorKind = "NOT_IN_OPERATION"
	KindTemperatureOutOfRange ErrorKind = "TEMPERATURE_VALUE_OUT_OF_RANGE"
)

// Error is a directive failure that maps onto a specific ErrorResponse payload.
// MinTemperature and MaxTemperature are set for KindTemperatureOutOfRange only.
type Error struct {
	Kind           ErrorKind
	Message        string
	MinTemperature int
	MaxTemperature int
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

func NewInternalError() *Error {
	return &Error{Kind: KindInternal}
}

func NewNotInOperationError() *Error {
	return &Error{Kind: KindNotInOperation}
}

func NewTemperatureRangeError(min, max int) *Error {
	return &Error{Kind: KindTemperatureOutOfRange, MinTemperature: min, MaxTemperature: max}
}

// ErrorPayloadFor maps any error to the payload of an ErrorResponse.
// Errors that are not *Error are reported as INTERNAL_ERROR.
//
// The out-of-range payload carries the maximum under minimumValue and the
// minimum under maximumValue. Deployed skills depend on this layout.
func ErrorPayloadFor(err error) ErrorPayload {
	var aerr *Error
	if !errors.As(err, &aerr) {
		return ErrorPayload{Type: string(KindInternal), Message: err.Error()}
	}

	payload := ErrorPayload{Type: string(aerr.Kind), Message: aerr.Error()}
	switch aerr.Kind {
	case KindTemperatureOutOfRange:
		payload.ValidRange = &ValidRange{
			MinimumValue: Temperature{Value: float64(aerr.MaxTemperature), Scale: ScaleCelsius},
			MaximumValue: Temperature{Value: float64(aerr.MinTemperature), Scale: ScaleCelsius},
		}
	case KindInternal, KindNotInOperation:
	default:
		payload.Type = string(KindInternal)
	}
	return payload
}

package dynamo

import "errors"

// Domain errors. These are only returned at the configuration boundary; the
// frame path never fails.
var (
	// ErrUnknownScenario indicates a scenario name with no registered builder.
	ErrUnknownScenario = errors.New("dynamo: unknown scenario")

	// ErrInvalidParam indicates a configuration value outside its valid range.
	ErrInvalidParam = errors.New("dynamo: parameter out of valid bounds")

	// ErrStopped indicates an operation on a loop that has been stopped.
	ErrStopped = errors.New("dynamo: simulation loop stopped")
)

// ParamError wraps ErrInvalidParam with the offending field.
type ParamError struct {
	Field string
	Value float64
}

func (e *ParamError) Error() string {
	return "dynamo: invalid " + e.Field + ": " + formatFloat(e.Value)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParam
}

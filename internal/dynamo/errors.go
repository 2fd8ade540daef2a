package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for engine configuration.
var (
	// ErrInvalidConfig indicates a trajectory count, trail length or step
	// configuration that cannot be simulated.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrUnknownVariant indicates a dynamics name missing from the catalog.
	ErrUnknownVariant = errors.New("dynamo: unknown dynamics variant")

	// ErrUnknownParam indicates a coefficient the variant does not have.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")

	// ErrNilDynamics indicates an attractor built without a dynamics model.
	ErrNilDynamics = errors.New("dynamo: nil dynamics")
)

// ConfigError wraps ErrInvalidConfig with the offending field.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// ParamError reports a SetParam call for a name the variant lacks.
type ParamError struct {
	Variant string
	Name    string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: no parameter %q", e.Variant, e.Name)
}

func (e *ParamError) Unwrap() error {
	return ErrUnknownParam
}

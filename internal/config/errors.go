package config

import "errors"

var (
	// ErrMissingEnv is returned when a required environment variable is unset.
	ErrMissingEnv = errors.New("missing environment variable")
	// ErrUnknownSource is returned for an unsupported LEGACY_SOURCE.
	ErrUnknownSource = errors.New("unknown legacy source")
)

// MissingEnvError names the variable that is unset. It matches ErrMissingEnv.
type MissingEnvError struct {
	Name string
}

func (e *MissingEnvError) Error() string {
	return ErrMissingEnv.Error() + ": " + e.Name
}

func (e *MissingEnvError) Is(target error) bool {
	return target == ErrMissingEnv
}

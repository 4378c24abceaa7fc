package core

import "errors"

var (
	// ErrInvalidConfig marks fatal configuration problems (bad flags, bad config file values)
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStorage marks failures of the usage store
	ErrStorage = errors.New("usage store")
)

// ExitCode maps an error returned by a command to the process exit status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInvalidConfig):
		return ExitInvalidArgs
	case errors.Is(err, ErrStorage):
		return ExitDatabase
	default:
		return ExitGeneral
	}
}

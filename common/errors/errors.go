package errors

// ExitCodeError ties an error to the process exit code it should produce.
// The wrapper binary cannot return errors to anyone; its only error channel
// back to the scheduler agent is its exit status.
type ExitCodeError struct {
	code ExitCode
	error
}

func NewError(err error, exitCode ExitCode) *ExitCodeError {
	if err == nil {
		return nil
	}
	return &ExitCodeError{exitCode, err}
}

func (e *ExitCodeError) GetExitCode() ExitCode {
	if e == nil {
		return 0
	}
	return e.code
}

// ExitStatus extracts the exit code an error calls for, defaulting to
// GenericFailureExitCode for errors that don't carry one.
func ExitStatus(err error) ExitCode {
	if err == nil {
		return 0
	}
	if ece, ok := err.(*ExitCodeError); ok {
		return ece.GetExitCode()
	}
	return GenericFailureExitCode
}

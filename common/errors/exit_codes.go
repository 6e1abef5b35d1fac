package errors

type ExitCode int

// Placement failures never reach these codes: the wrapper absorbs them and
// launches the container unpinned. Only failures of the wrapper's actual
// purpose (handing off to the runtime) exit nonzero.
const (
	GenericFailureExitCode ExitCode = 1

	CouldNotExecExitCode = 110
)

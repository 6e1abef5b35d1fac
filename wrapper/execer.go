package wrapper

import (
	"os"
	"os/exec"

	"golang.org/x/sys/unix"

	paastaerrors "github.com/ycaihua/paasta/common/errors"
)

// Execer hands the rewritten vector to the container runtime. The real
// implementation replaces this process image and does not return on success.
type Execer interface {
	// Exec runs binary with argv (not including a program name; argv[0] is
	// synthesized from the binary name).
	Exec(binary string, argv []string) error
}

func NewExecer() Execer {
	return unixExecer{}
}

type unixExecer struct{}

func (unixExecer) Exec(binary string, argv []string) error {
	path, err := exec.LookPath(binary)
	if err != nil {
		return paastaerrors.NewError(err, paastaerrors.CouldNotExecExitCode)
	}
	args := append([]string{binary}, argv...)
	if err := unix.Exec(path, args, os.Environ()); err != nil {
		return paastaerrors.NewError(err, paastaerrors.CouldNotExecExitCode)
	}
	// unix.Exec only returns on error.
	return nil
}

// CaptureExecer records the exec request instead of replacing the process;
// for tests.
type CaptureExecer struct {
	Binary string
	Argv   []string
	Err    error
}

func (c *CaptureExecer) Exec(binary string, argv []string) error {
	c.Binary = binary
	c.Argv = argv
	return c.Err
}

package eval

import (
	"context"
	"errors"
	"io"
	"os/exec"
)

// Command is an external process invocation.
type Command struct {
	Path   string
	Args   []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Spawner runs external commands to completion.
//
// Spawn returns an error only when the process could not be started or
// waited on. A process that runs and exits unsuccessfully is reported through
// its exit code.
type Spawner interface {
	Spawn(ctx context.Context, cmd Command) (exitCode int, err error)
}

// ExecSpawner runs commands with [os/exec].
type ExecSpawner struct{}

// Spawn implements [Spawner].
func (ExecSpawner) Spawn(ctx context.Context, c Command) (int, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	if err != nil {
		return -1, err
	}

	return 0, nil
}

package host

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ProcessRunner runs a program to completion and captures its output.
type ProcessRunner interface {
	// Output runs name with args. A process that starts and exits non-zero
	// is a completed run: the error is nil and ExitCode is set. An error is
	// returned only when the process could not be run at all.
	Output(ctx context.Context, name string, args ...string) (*Output, error)
}

// Output captures the result of a process execution.
type Output struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// ExecRunner runs processes with os/exec, inheriting the current environment.
// No timeout is applied beyond what ctx carries.
type ExecRunner struct{}

// Output implements ProcessRunner.
func (ExecRunner) Output(ctx context.Context, name string, args ...string) (*Output, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()

	output := &Output{
		Stdout: stdoutBuf.Bytes(),
		Stderr: stderrBuf.Bytes(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		return nil, fmt.Errorf("running %s: %w", name, err)
	}

	return output, nil
}

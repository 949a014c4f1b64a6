package panelctl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Result captures a single external command invocation: what ran, what it
// printed, and how it exited. Every lifecycle step receives one so the
// action layer can decide whether a failure is fatal or advisory.
type Result struct {
	// Cmd is the rendered command line
	Cmd string

	// Stdout is the captured standard output
	Stdout string

	// Stderr is the captured standard error
	Stderr string

	// ExitCode is the process exit code, -1 if the process never started
	ExitCode int
}

// Output returns the combined captured output, trimmed, preferring stdout
func (r *Result) Output() string {
	out := strings.TrimSpace(r.Stdout)
	if out == "" {
		out = strings.TrimSpace(r.Stderr)
	}
	return out
}

// Runner executes external commands. Implementations must fill a Result
// even when the command fails so callers can inspect output and exit codes.
type Runner interface {
	// Run executes name with args and captures its output
	Run(ctx context.Context, name string, args ...string) (*Result, error)

	// RunIn is Run with the working directory set to dir
	RunIn(ctx context.Context, dir, name string, args ...string) (*Result, error)

	// RunStream executes name with args, forwarding combined output to w.
	// Used for pass-through display such as status output and log follow.
	RunStream(ctx context.Context, w io.Writer, name string, args ...string) error
}

// ExecRunner runs commands with os/exec. The zero value is usable.
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by os/exec
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes name with args and captures its output
func (e *ExecRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	return e.RunIn(ctx, "", name, args...)
}

// RunIn is Run with the working directory set to dir
func (e *ExecRunner) RunIn(ctx context.Context, dir, name string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	res := &Result{
		Cmd:      renderCmd(name, args),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode(err),
	}
	if err != nil {
		return res, fmt.Errorf("%s: %w (stderr: %s)", res.Cmd, err, strings.TrimSpace(stderr.String()))
	}
	return res, nil
}

// RunStream executes name with args, forwarding combined output to w
func (e *ExecRunner) RunStream(ctx context.Context, w io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = w
	cmd.Stderr = w

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", renderCmd(name, args), err)
	}
	return nil
}

func renderCmd(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

// exitCode extracts the process exit code from a Run error. A nil error
// means exit 0; a start failure reports -1.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

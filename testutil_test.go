package panelctl

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// scripted is one canned response, matched against the rendered command
// line by prefix in registration order.
type scripted struct {
	prefix string
	res    *Result
	err    error
	stream string
}

// recordingRunner is a Runner that records every command line instead of
// executing anything. Unscripted commands succeed with empty output.
type recordingRunner struct {
	mu      sync.Mutex
	calls   []string
	scripts []scripted
}

func newRecordingRunner() *recordingRunner {
	return &recordingRunner{}
}

// script registers a canned result for command lines starting with prefix
func (r *recordingRunner) script(prefix string, res *Result, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scripts = append(r.scripts, scripted{prefix: prefix, res: res, err: err})
}

// fail registers a canned failure with the given exit code and stderr
func (r *recordingRunner) fail(prefix string, exitCode int, stderr string) {
	res := &Result{Cmd: prefix, Stderr: stderr, ExitCode: exitCode}
	r.script(prefix, res, fmt.Errorf("%s: exit status %d (stderr: %s)", prefix, exitCode, stderr))
}

// streamOutput registers canned streamed output for RunStream calls
func (r *recordingRunner) streamOutput(prefix, output string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scripts = append(r.scripts, scripted{prefix: prefix, stream: output})
}

func (r *recordingRunner) lookup(line string) (scripted, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, line)
	for _, s := range r.scripts {
		if strings.HasPrefix(line, s.prefix) {
			return s, true
		}
	}
	return scripted{}, false
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	if s, ok := r.lookup(line); ok {
		return s.res, s.err
	}
	return &Result{Cmd: line, ExitCode: 0}, nil
}

func (r *recordingRunner) RunIn(ctx context.Context, dir, name string, args ...string) (*Result, error) {
	return r.Run(ctx, name, args...)
}

func (r *recordingRunner) RunStream(ctx context.Context, w io.Writer, name string, args ...string) error {
	line := strings.Join(append([]string{name}, args...), " ")
	s, ok := r.lookup(line)
	if !ok {
		return nil
	}
	if s.stream != "" {
		_, _ = io.WriteString(w, s.stream)
	}
	return s.err
}

// callLines returns a copy of the recorded command lines
func (r *recordingRunner) callLines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// calledWith reports whether any recorded command line starts with prefix
func (r *recordingRunner) calledWith(prefix string) bool {
	for _, line := range r.callLines() {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func (r *recordingRunner) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// errExit fabricates the error a Runner returns alongside a non-zero exit
func errExit(code int) error {
	return fmt.Errorf("exit status %d", code)
}

// asRoot makes rootRequired pass without actual privileges
func asRoot() Option {
	return func(c *Config) {
		c.euid = func() int { return 0 }
	}
}

// asUser makes rootRequired fail
func asUser() Option {
	return func(c *Config) {
		c.euid = func() int { return 1000 }
	}
}

// newTestConfig builds a Config rooted in a temp directory with the fake
// runner, a silent logger, and root privileges faked. The source directory
// exists and is empty; tests populate it as needed.
func newTestConfig(t *testing.T, r Runner, opts ...Option) *Config {
	t.Helper()

	tmp := t.TempDir()
	base := []Option{
		WithServiceName("panel-test"),
		WithSourceDir(filepath.Join(tmp, "src")),
		WithInstallDir(filepath.Join(tmp, "install")),
		WithUnitDir(filepath.Join(tmp, "units")),
		WithRunner(r),
		WithLogger(log.New(io.Discard)),
		WithStartPollDelay(time.Millisecond),
		WithWatchDebounce(25 * time.Millisecond),
		asRoot(),
	}

	cfg, err := New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := os.MkdirAll(cfg.SourceDir, 0o755); err != nil {
		t.Fatalf("creating source dir: %v", err)
	}
	return cfg
}

// writeTree creates files under root, making parent directories as needed
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

// exists reports whether path exists
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

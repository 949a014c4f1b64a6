package panelctl

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ClientSystemd drives systemctl for a single service. All invocations go
// through a Runner so callers get captured output and exit codes.
type ClientSystemd struct {
	// ServiceName is the name of the systemd service (without .service suffix)
	ServiceName string

	// SystemctlPath is the path to the systemctl binary
	SystemctlPath string

	// Runner executes the systemctl commands
	Runner Runner
}

// NewClientSystemd creates a new ClientSystemd for the specified service
func NewClientSystemd(serviceName string, r Runner) *ClientSystemd {
	return &ClientSystemd{
		ServiceName:   serviceName,
		SystemctlPath: DefaultSystemctlPath,
		Runner:        r,
	}
}

// WithSystemctlPath sets the systemctl binary path
func (c *ClientSystemd) WithSystemctlPath(path string) *ClientSystemd {
	c.SystemctlPath = path
	return c
}

// systemd returns a client bound to the configured service
func (c *Config) systemd() *ClientSystemd {
	return NewClientSystemd(c.ServiceName, c.Runner).WithSystemctlPath(c.SystemctlPath)
}

// execSystemctl executes a systemctl verb against the service unit
func (c *ClientSystemd) execSystemctl(ctx context.Context, args ...string) (*Result, error) {
	fullArgs := append(args, fmt.Sprintf("%s.service", c.ServiceName))
	return c.Runner.Run(ctx, c.SystemctlPath, fullArgs...)
}

// Start starts the service
func (c *ClientSystemd) Start(ctx context.Context) error {
	_, err := c.execSystemctl(ctx, "start")
	return err
}

// Stop stops the service
func (c *ClientSystemd) Stop(ctx context.Context) error {
	_, err := c.execSystemctl(ctx, "stop")
	return err
}

// Restart restarts the service
func (c *ClientSystemd) Restart(ctx context.Context) error {
	_, err := c.execSystemctl(ctx, "restart")
	return err
}

// Enable enables the service to start on boot
func (c *ClientSystemd) Enable(ctx context.Context) error {
	_, err := c.execSystemctl(ctx, "enable")
	return err
}

// Disable disables the service from starting on boot
func (c *ClientSystemd) Disable(ctx context.Context) error {
	_, err := c.execSystemctl(ctx, "disable")
	return err
}

// DaemonReload reloads the systemd unit cache
func (c *ClientSystemd) DaemonReload(ctx context.Context) error {
	_, err := c.Runner.Run(ctx, c.SystemctlPath, "daemon-reload")
	return err
}

// IsActive checks if the service is currently active. systemctl exits with
// code 3 for an inactive service, which is a status, not an error.
func (c *ClientSystemd) IsActive(ctx context.Context) (bool, error) {
	res, err := c.execSystemctl(ctx, "is-active")
	if err != nil {
		if res != nil && res.ExitCode == 3 {
			return false, nil
		}
		return false, err
	}
	return strings.TrimSpace(res.Stdout) == "active", nil
}

// IsEnabled checks if the service is enabled to start on boot. A non-zero
// exit with "disabled" output is a status, not an error.
func (c *ClientSystemd) IsEnabled(ctx context.Context) (bool, error) {
	res, err := c.execSystemctl(ctx, "is-enabled")
	if err != nil {
		if res != nil && res.ExitCode == 1 {
			return false, nil
		}
		return false, err
	}
	return strings.TrimSpace(res.Stdout) == "enabled", nil
}

// StatusText returns the raw `systemctl status` display. The output is
// passed through untouched even when the service is inactive, where
// systemctl exits non-zero but still prints the report.
func (c *ClientSystemd) StatusText(ctx context.Context) (string, error) {
	res, err := c.execSystemctl(ctx, "status", "--no-pager")
	if err != nil && (res == nil || res.Output() == "") {
		return "", err
	}
	out := res.Stdout
	if out == "" {
		out = res.Stderr
	}
	return out, nil
}

// Status returns the decoded status of the service
func (c *ClientSystemd) Status(ctx context.Context) (*StatusSystemd, error) {
	res, err := c.execSystemctl(ctx, "show", "--no-page")
	if err != nil {
		return nil, err
	}

	status := &StatusSystemd{
		Properties: make(map[string]string),
	}

	// Parse the key=value output
	lines := strings.Split(res.Stdout, "\n")
	for _, line := range lines {
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		status.Properties[key] = value

		switch key {
		case "ActiveState":
			status.ActiveState = value
		case "SubState":
			status.SubState = value
		case "LoadState":
			status.LoadState = value
		case "MainPID":
			if pid, err := strconv.Atoi(value); err == nil && pid > 0 {
				status.MainPID = pid
			}
		case "ExecMainStartTimestamp":
			if t, err := time.Parse("Mon 2006-01-02 15:04:05 MST", value); err == nil {
				status.StartTime = t
			}
		case "Result":
			status.Result = value
		}
	}

	status.Running = status.ActiveState == "active" && status.SubState == "running"

	if status.Running && !status.StartTime.IsZero() {
		status.Uptime = time.Since(status.StartTime)
	}

	return status, nil
}

// WaitForState waits for the service to reach a specific active state
func (c *ClientSystemd) WaitForState(ctx context.Context, targetState string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if time.Now().After(deadline) {
				return fmt.Errorf("timeout waiting for state %s", targetState)
			}

			status, err := c.Status(ctx)
			if err != nil {
				continue // Keep trying
			}

			if status.ActiveState == targetState {
				return nil
			}
		}
	}
}

// StatusSystemd represents the decoded status of a systemd service
type StatusSystemd struct {
	// ActiveState is the active state (active, inactive, failed, etc.)
	ActiveState string

	// SubState is the sub state (running, dead, exited, etc.)
	SubState string

	// LoadState is the load state (loaded, not-found, error, etc.)
	LoadState string

	// Running indicates if the service is currently running
	Running bool

	// MainPID is the main process ID (0 if not running)
	MainPID int

	// StartTime is when the service was started
	StartTime time.Time

	// Uptime is how long the service has been running
	Uptime time.Duration

	// Result is the result of the last run (success, exit-code, signal, etc.)
	Result string

	// Properties contains all properties returned by systemctl show
	Properties map[string]string
}

// String returns a human-readable status string
func (s *StatusSystemd) String() string {
	if s.Running {
		return fmt.Sprintf("running (pid %d) for %s", s.MainPID, s.Uptime.Round(time.Second))
	}
	return fmt.Sprintf("%s/%s", s.ActiveState, s.SubState)
}

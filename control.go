package panelctl

import (
	"context"
	"io"
	"strconv"
)

// Restart forwards a restart to the service manager
func (c *Config) Restart(ctx context.Context) error {
	return c.systemd().Restart(ctx)
}

// Start starts the service
func (c *Config) Start(ctx context.Context) error {
	return c.systemd().Start(ctx)
}

// Stop stops the service
func (c *Config) Stop(ctx context.Context) error {
	return c.systemd().Stop(ctx)
}

// StatusText returns the raw `systemctl status` display for the service,
// uninterpreted.
func (c *Config) StatusText(ctx context.Context) (string, error) {
	return c.systemd().StatusText(ctx)
}

// Status returns the decoded service status
func (c *Config) Status(ctx context.Context) (*StatusSystemd, error) {
	return c.systemd().Status(ctx)
}

// Logs streams journal entries for the service to w. lines limits the
// backlog when positive; follow keeps streaming until ctx is cancelled.
func (c *Config) Logs(ctx context.Context, w io.Writer, lines int, follow bool) error {
	args := []string{"-u", c.Unit(), "--no-pager"}
	if lines > 0 {
		args = append(args, "-n", strconv.Itoa(lines))
	}
	if follow {
		args = append(args, "-f")
	}
	return c.Runner.RunStream(ctx, w, c.JournalctlPath, args...)
}

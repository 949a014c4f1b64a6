package panelctl

import (
	"context"
	"os"
	"strings"
)

// ParseConfirm reports whether one line of prompt input is an affirmative
// answer. Only "y" and "yes" confirm, case-insensitively; anything else,
// including empty input, declines.
func ParseConfirm(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Uninstall stops and unregisters the service and deletes the install
// directory. answer is the raw confirmation input; a non-affirmative
// answer aborts with ErrAborted before any side effect.
//
// Stop, disable, unit removal and daemon-reload failures are advisory so
// a second uninstall converges on the same end state instead of erroring:
// the service may already be stopped, disabled, or gone entirely.
func (c *Config) Uninstall(ctx context.Context, answer string) error {
	if !ParseConfirm(answer) {
		return ErrAborted
	}
	if err := c.rootRequired(); err != nil {
		return err
	}

	sd := c.systemd()

	if err := sd.Stop(ctx); err != nil {
		c.Log.Warn("stop failed", "err", err)
	}
	if err := sd.Disable(ctx); err != nil {
		c.Log.Warn("disable failed", "err", err)
	}

	c.Log.Info("removing service unit", "path", c.UnitPath())
	if err := c.RemoveUnit(); err != nil {
		c.Log.Warn("unit removal failed", "err", err)
	}
	if err := sd.DaemonReload(ctx); err != nil {
		c.Log.Warn("daemon-reload failed", "err", err)
	}

	c.Log.Info("removing install directory", "dir", c.InstallDir)
	if err := os.RemoveAll(c.InstallDir); err != nil {
		return &OpError{Op: "remove install dir", Path: c.InstallDir, Err: err}
	}

	return nil
}

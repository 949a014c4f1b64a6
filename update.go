package panelctl

import (
	"context"
	"os"
	"path/filepath"
)

// Update re-syncs the source tree into the install directory and restarts
// the service. The venv is excluded from the sync and dependencies are not
// reinstalled; the unit file is left untouched, so the service keeps the
// port it was installed with.
func (c *Config) Update(ctx context.Context) error {
	if err := c.rootRequired(); err != nil {
		return err
	}

	if _, err := os.Stat(c.InstallDir); err != nil {
		return ErrNotInstalled
	}

	c.Log.Info("syncing source tree", "from", c.SourceDir, "to", c.InstallDir)
	if err := SyncTree(ctx, c.SourceDir, c.InstallDir, c.updateExcludes()); err != nil {
		return err
	}

	c.Log.Info("restarting service", "service", c.Unit())
	if err := c.systemd().Restart(ctx); err != nil {
		c.Log.Warn("restart failed", "err", err)
	}

	return nil
}

// updateExcludes is the install exclusion set plus the venv, kept separate
// in case the configured excludes were overridden without it
func (c *Config) updateExcludes() []string {
	for _, pattern := range c.Excludes {
		if pattern == VenvDir {
			return c.Excludes
		}
	}
	return append(append([]string{}, c.Excludes...), VenvDir)
}

// ResetPassword runs the panel's bundled credential reset helper inside
// the deployed venv and returns its output. The helper rewrites the admin
// password to the panel default.
func (c *Config) ResetPassword(ctx context.Context) (string, error) {
	if err := c.rootRequired(); err != nil {
		return "", err
	}

	script := filepath.Join(c.InstallDir, ResetPasswordScript)
	if _, err := os.Stat(script); err != nil {
		return "", ErrNotInstalled
	}

	res, err := c.Runner.RunIn(ctx, c.InstallDir, c.VenvPython(), ResetPasswordScript)
	if err != nil {
		return "", &OpError{Op: "reset password", Path: script, Err: err}
	}
	return res.Output(), nil
}

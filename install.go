package panelctl

import (
	"context"
	"os"
	"time"
)

// Install provisions the runtime, deploys the source tree, registers the
// service, and starts it. The sequence stops on the first fatal failure;
// enable and start failures are advisory and end up in the report, where
// the post-start poll tells the operator whether the panel came up.
//
// Root privileges are checked before any side effect.
func (c *Config) Install(ctx context.Context) (*Report, error) {
	if err := c.rootRequired(); err != nil {
		return nil, err
	}

	if err := c.ensurePython(ctx); err != nil {
		return nil, err
	}

	c.Log.Info("creating install directory", "dir", c.InstallDir)
	if err := os.MkdirAll(c.InstallDir, DirMode); err != nil {
		return nil, &OpError{Op: "install dir", Path: c.InstallDir, Err: err}
	}

	c.Log.Info("syncing source tree", "from", c.SourceDir, "to", c.InstallDir)
	if err := SyncTree(ctx, c.SourceDir, c.InstallDir, c.Excludes); err != nil {
		return nil, err
	}

	c.Log.Info("creating virtual environment", "dir", c.VenvPath())
	if err := c.ensureVenv(ctx); err != nil {
		return nil, err
	}

	c.Log.Info("installing dependencies", "manifest", c.RequirementsPath())
	if err := c.installRequirements(ctx); err != nil {
		return nil, err
	}

	c.Log.Info("writing service unit", "path", c.UnitPath(), "port", c.Port)
	if err := c.WriteUnit(); err != nil {
		return nil, err
	}

	sd := c.systemd()
	if err := sd.DaemonReload(ctx); err != nil {
		return nil, &OpError{Op: "daemon-reload", Path: c.UnitPath(), Err: err}
	}

	report := &Report{URL: c.AccessURL()}

	if err := sd.Enable(ctx); err != nil {
		c.Log.Warn("enable failed", "err", err)
		report.Advisories.Add(err)
	}
	if err := sd.Start(ctx); err != nil {
		c.Log.Warn("start failed", "err", err)
		report.Advisories.Add(err)
	}

	// One status poll after a short grace period; the outcome is reported,
	// not acted upon.
	select {
	case <-ctx.Done():
		return report, ctx.Err()
	case <-time.After(c.StartPollDelay):
	}

	active, err := sd.IsActive(ctx)
	if err != nil {
		c.Log.Warn("status poll failed", "err", err)
		report.Advisories.Add(err)
	}
	report.Active = active

	return report, nil
}

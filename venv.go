package panelctl

import (
	"context"
	"os"
)

// ensureVenv creates the isolated environment inside the install directory.
// An existing venv with an interpreter is left alone so repeated installs
// do not rebuild it.
func (c *Config) ensureVenv(ctx context.Context) error {
	if _, err := os.Stat(c.VenvPython()); err == nil {
		return nil
	}

	if _, err := c.Runner.Run(ctx, c.PythonPath, "-m", "venv", c.VenvPath()); err != nil {
		return &OpError{Op: "venv create", Path: c.VenvPath(), Err: err}
	}
	return nil
}

// installRequirements installs the dependency manifest into the venv. The
// manifest must already have been synced into the install directory.
func (c *Config) installRequirements(ctx context.Context) error {
	if _, err := os.Stat(c.RequirementsPath()); err != nil {
		return &OpError{Op: "requirements", Path: c.RequirementsPath(), Err: err}
	}

	if _, err := c.Runner.Run(ctx, c.VenvPip(), "install", "-r", c.RequirementsPath()); err != nil {
		return &OpError{Op: "requirements install", Path: c.RequirementsPath(), Err: err}
	}
	return nil
}

package panelctl

import (
	"context"
	"os"
	"time"
)

// Info is a read-only snapshot of the deployment for display
type Info struct {
	// Installed indicates the install directory exists
	Installed bool

	// UnitPresent indicates the unit file exists
	UnitPresent bool

	// Enabled indicates the service starts on boot
	Enabled bool

	// ActiveState is the systemd active state, "" when unavailable
	ActiveState string

	// SubState is the systemd sub state, "" when unavailable
	SubState string

	// MainPID is the main process ID, 0 when not running
	MainPID int

	// Uptime is how long the service has been running
	Uptime time.Duration

	// Port is the port baked into the installed unit file, "" when the
	// unit is absent or carries none
	Port string

	// InstallDir is the configured install directory
	InstallDir string
}

// CollectInfo gathers the deployment snapshot. Filesystem facts are always
// reported; service manager facts are best-effort and left zeroed when
// systemctl is unavailable.
func (c *Config) CollectInfo(ctx context.Context) *Info {
	info := &Info{InstallDir: c.InstallDir}

	if _, err := os.Stat(c.InstallDir); err == nil {
		info.Installed = true
	}
	if _, err := os.Stat(c.UnitPath()); err == nil {
		info.UnitPresent = true
		if opts, err := c.ReadUnitOptions(); err == nil {
			info.Port = PortFromUnit(opts)
		}
	}

	sd := c.systemd()
	if enabled, err := sd.IsEnabled(ctx); err == nil {
		info.Enabled = enabled
	}
	if status, err := sd.Status(ctx); err == nil {
		info.ActiveState = status.ActiveState
		info.SubState = status.SubState
		info.MainPID = status.MainPID
		info.Uptime = status.Uptime
	}

	return info
}

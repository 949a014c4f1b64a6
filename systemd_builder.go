package panelctl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coreos/go-systemd/v22/unit"
	"github.com/google/renameio/v2"
)

// UnitOptions returns the service unit as structured options: ordered after
// network availability, run as root from the install directory, restarted
// on failure with a 3 second delay, logging to the journal, and wanted by
// the multi-user target.
func (c *Config) UnitOptions() []*unit.UnitOption {
	return []*unit.UnitOption{
		unit.NewUnitOption("Unit", "Description", ServiceDescription),
		unit.NewUnitOption("Unit", "After", "network.target"),

		unit.NewUnitOption("Service", "Type", "simple"),
		unit.NewUnitOption("Service", "User", "root"),
		unit.NewUnitOption("Service", "WorkingDirectory", c.InstallDir),
		unit.NewUnitOption("Service", "ExecStart", execStartLine(c.ExecStart())),
		unit.NewUnitOption("Service", "Restart", "always"),
		unit.NewUnitOption("Service", "RestartSec", "3"),
		unit.NewUnitOption("Service", "StandardOutput", "journal"),
		unit.NewUnitOption("Service", "StandardError", "journal"),

		unit.NewUnitOption("Install", "WantedBy", "multi-user.target"),
	}
}

// BuildUnit generates the unit file content. The configured port appears in
// the ExecStart line exactly as given.
func (c *Config) BuildUnit() (string, error) {
	content, err := io.ReadAll(unit.Serialize(c.UnitOptions()))
	if err != nil {
		return "", fmt.Errorf("serializing unit: %w", err)
	}
	return string(content), nil
}

// WriteUnit generates the unit file and writes it atomically to the unit
// directory.
func (c *Config) WriteUnit() error {
	content, err := c.BuildUnit()
	if err != nil {
		return &OpError{Op: "unit write", Path: c.UnitPath(), Err: err}
	}

	if err := os.MkdirAll(c.UnitDir, DirMode); err != nil {
		return &OpError{Op: "unit write", Path: c.UnitDir, Err: err}
	}
	if err := renameio.WriteFile(c.UnitPath(), []byte(content), FileMode); err != nil {
		return &OpError{Op: "unit write", Path: c.UnitPath(), Err: err}
	}
	return nil
}

// RemoveUnit deletes the unit file. A missing file is not an error so
// repeated uninstalls converge on the same end state.
func (c *Config) RemoveUnit() error {
	if err := os.Remove(c.UnitPath()); err != nil && !os.IsNotExist(err) {
		return &OpError{Op: "unit remove", Path: c.UnitPath(), Err: err}
	}
	return nil
}

// ReadUnitOptions parses the installed unit file back into structured
// options.
func (c *Config) ReadUnitOptions() ([]*unit.UnitOption, error) {
	f, err := os.Open(c.UnitPath())
	if err != nil {
		return nil, err
	}
	defer f.Close()

	opts, err := unit.Deserialize(f)
	if err != nil {
		return nil, &OpError{Op: "unit read", Path: c.UnitPath(), Err: err}
	}
	return opts, nil
}

// PortFromUnit extracts the --port argument from the ExecStart option, or
// "" when none is present. Used to display what the running service was
// actually installed with, which can differ from the current config.
func PortFromUnit(opts []*unit.UnitOption) string {
	for _, opt := range opts {
		if opt.Section != "Service" || opt.Name != "ExecStart" {
			continue
		}
		fields := strings.Fields(opt.Value)
		for i, field := range fields {
			if field == "--port" && i+1 < len(fields) {
				return fields[i+1]
			}
		}
	}
	return ""
}

// execStartLine renders an argv slice as a systemd ExecStart value,
// quoting arguments containing whitespace or shell metacharacters.
func execStartLine(argv []string) string {
	line := argv[0]
	for i := 1; i < len(argv); i++ {
		arg := argv[i]
		if strings.ContainsAny(arg, " \t\n\"'\\$") {
			arg = fmt.Sprintf("%q", arg)
		}
		line += " " + arg
	}
	return line
}

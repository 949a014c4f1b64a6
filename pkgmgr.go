package panelctl

import (
	"context"
	"os/exec"
)

// PackageManagerType represents the system package manager flavor
type PackageManagerType int

const (
	// PackageManagerUnknown represents an unsupported package manager
	PackageManagerUnknown PackageManagerType = iota
	// PackageManagerAptGet represents Debian-style apt-get
	PackageManagerAptGet
	// PackageManagerDNF represents Fedora-style dnf
	PackageManagerDNF
	// PackageManagerYum represents RHEL-style yum
	PackageManagerYum
)

// PackageManagerType string constants
const (
	packageManagerUnknownStr = "unknown"
	packageManagerAptGetStr  = "apt-get"
	packageManagerDNFStr     = "dnf"
	packageManagerYumStr     = "yum"
)

// String returns the string representation of PackageManagerType
func (t PackageManagerType) String() string {
	switch t {
	case PackageManagerAptGet:
		return packageManagerAptGetStr
	case PackageManagerDNF:
		return packageManagerDNFStr
	case PackageManagerYum:
		return packageManagerYumStr
	case PackageManagerUnknown:
		fallthrough
	default:
		return packageManagerUnknownStr
	}
}

// PackageManager installs system packages noninteractively. One
// implementation is selected at startup based on what is present on PATH.
type PackageManager interface {
	// Type identifies the package manager flavor
	Type() PackageManagerType

	// InstallPackages installs the named system packages
	InstallPackages(ctx context.Context, packages ...string) error
}

// AptGet drives Debian-style package installation
type AptGet struct {
	// Path is the apt-get binary
	Path string
	// Runner executes the package manager commands
	Runner Runner
}

// Type identifies the package manager flavor
func (a *AptGet) Type() PackageManagerType { return PackageManagerAptGet }

// InstallPackages refreshes the index and installs the named packages.
// Index refresh failures are ignored; the install itself surfaces real
// problems.
func (a *AptGet) InstallPackages(ctx context.Context, packages ...string) error {
	_, _ = a.Runner.Run(ctx, a.Path, "update")

	args := append([]string{"install", "-y"}, packages...)
	_, err := a.Runner.Run(ctx, a.Path, args...)
	return err
}

// DNF drives Fedora-style package installation
type DNF struct {
	// Path is the dnf binary
	Path string
	// Runner executes the package manager commands
	Runner Runner
}

// Type identifies the package manager flavor
func (d *DNF) Type() PackageManagerType { return PackageManagerDNF }

// InstallPackages installs the named packages
func (d *DNF) InstallPackages(ctx context.Context, packages ...string) error {
	args := append([]string{"install", "-y"}, packages...)
	_, err := d.Runner.Run(ctx, d.Path, args...)
	return err
}

// Yum drives RHEL-style package installation
type Yum struct {
	// Path is the yum binary
	Path string
	// Runner executes the package manager commands
	Runner Runner
}

// Type identifies the package manager flavor
func (y *Yum) Type() PackageManagerType { return PackageManagerYum }

// InstallPackages installs the named packages
func (y *Yum) InstallPackages(ctx context.Context, packages ...string) error {
	args := append([]string{"install", "-y"}, packages...)
	_, err := y.Runner.Run(ctx, y.Path, args...)
	return err
}

// DetectPackageManager returns the first supported package manager found on
// PATH, trying apt-get, then dnf, then yum. It returns ErrNoPackageManager
// when none match so callers can fail fast with a manual-install hint.
func DetectPackageManager(r Runner) (PackageManager, error) {
	return detectPackageManager(exec.LookPath, r)
}

func detectPackageManager(lookPath func(string) (string, error), r Runner) (PackageManager, error) {
	if path, err := lookPath(packageManagerAptGetStr); err == nil {
		return &AptGet{Path: path, Runner: r}, nil
	}
	if path, err := lookPath(packageManagerDNFStr); err == nil {
		return &DNF{Path: path, Runner: r}, nil
	}
	if path, err := lookPath(packageManagerYumStr); err == nil {
		return &Yum{Path: path, Runner: r}, nil
	}
	return nil, ErrNoPackageManager
}

// pythonPackages returns the system packages that provide a venv-capable
// python3 for the given package manager. Debian splits venv and pip out of
// the base package.
func pythonPackages(t PackageManagerType) []string {
	switch t {
	case PackageManagerAptGet:
		return []string{"python3", "python3-venv", "python3-pip"}
	default:
		return []string{"python3"}
	}
}

// ensurePython verifies the system interpreter is present, installing it
// through a detected package manager when it is not.
func (c *Config) ensurePython(ctx context.Context) error {
	if _, err := c.Runner.Run(ctx, c.PythonPath, "--version"); err == nil {
		return nil
	}

	c.Log.Info("python3 not found, installing", "interpreter", c.PythonPath)

	pm, err := DetectPackageManager(c.Runner)
	if err != nil {
		return err
	}

	c.Log.Info("installing runtime packages", "package-manager", pm.Type().String())
	if err := pm.InstallPackages(ctx, pythonPackages(pm.Type())...); err != nil {
		return &OpError{Op: "runtime install", Path: c.PythonPath, Err: err}
	}
	return nil
}

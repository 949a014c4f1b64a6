package panelctl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Config carries everything a lifecycle action needs. It is built once by
// New, validated there, and never mutated afterwards; actions receive it
// rather than reading shared globals.
type Config struct {
	// ServiceName is the systemd unit name without the .service suffix
	ServiceName string

	// InstallDir is where the panel source tree is deployed
	InstallDir string

	// SourceDir is the tree synced into InstallDir at install/update time
	SourceDir string

	// UnitDir is the systemd unit directory
	UnitDir string

	// Port is embedded verbatim into the generated ExecStart line
	Port string

	// BindHost is the listen address embedded into the generated ExecStart line
	BindHost string

	// AppModule is the module:app reference passed to uvicorn
	AppModule string

	// PythonPath is the system interpreter used to create the venv
	PythonPath string

	// SystemctlPath is the systemd control binary
	SystemctlPath string

	// JournalctlPath is the journal query binary
	JournalctlPath string

	// Excludes are the source paths never copied into InstallDir
	Excludes []string

	// Runner executes external commands and captures their results
	Runner Runner

	// Log receives progress and advisory-failure messages
	Log *log.Logger

	// WatchDebounce coalesces rapid source tree changes in watch mode
	WatchDebounce time.Duration

	// StartPollDelay is the wait before the post-start status check
	StartPollDelay time.Duration

	// euid reports the effective user id, injectable for tests
	euid func() int
}

// Option configures a Config
type Option func(*Config)

// WithServiceName sets the systemd unit name (without the .service suffix)
func WithServiceName(name string) Option {
	return func(c *Config) {
		c.ServiceName = name
	}
}

// WithInstallDir sets the deployment directory
func WithInstallDir(dir string) Option {
	return func(c *Config) {
		c.InstallDir = dir
	}
}

// WithSourceDir sets the tree synced into the install directory
func WithSourceDir(dir string) Option {
	return func(c *Config) {
		c.SourceDir = dir
	}
}

// WithUnitDir sets the systemd unit directory
func WithUnitDir(dir string) Option {
	return func(c *Config) {
		c.UnitDir = dir
	}
}

// WithPort sets the listening port embedded into the unit file.
// The value is not parsed or range-checked; it is written out verbatim.
func WithPort(port string) Option {
	return func(c *Config) {
		c.Port = port
	}
}

// WithBindHost sets the listen address embedded into the unit file
func WithBindHost(host string) Option {
	return func(c *Config) {
		c.BindHost = host
	}
}

// WithAppModule sets the module:app reference passed to uvicorn
func WithAppModule(ref string) Option {
	return func(c *Config) {
		c.AppModule = ref
	}
}

// WithPython sets the system interpreter used to create the venv
func WithPython(path string) Option {
	return func(c *Config) {
		c.PythonPath = path
	}
}

// WithSystemctl sets the systemd control binary
func WithSystemctl(path string) Option {
	return func(c *Config) {
		c.SystemctlPath = path
	}
}

// WithJournalctl sets the journal query binary
func WithJournalctl(path string) Option {
	return func(c *Config) {
		c.JournalctlPath = path
	}
}

// WithExcludes replaces the default sync exclusion set
func WithExcludes(patterns []string) Option {
	return func(c *Config) {
		c.Excludes = patterns
	}
}

// WithRunner sets the command runner used for all external commands
func WithRunner(r Runner) Option {
	return func(c *Config) {
		c.Runner = r
	}
}

// WithLogger sets the logger used for progress and advisory failures
func WithLogger(l *log.Logger) Option {
	return func(c *Config) {
		c.Log = l
	}
}

// WithWatchDebounce sets the debounce duration for watch mode
func WithWatchDebounce(d time.Duration) Option {
	return func(c *Config) {
		c.WatchDebounce = d
	}
}

// WithStartPollDelay sets the wait before the post-start status check
func WithStartPollDelay(d time.Duration) Option {
	return func(c *Config) {
		c.StartPollDelay = d
	}
}

// New builds a validated Config from defaults plus the given options.
// Relative install and source directories are resolved to absolute paths.
func New(opts ...Option) (*Config, error) {
	c := &Config{
		ServiceName:    DefaultServiceName,
		InstallDir:     DefaultInstallDir,
		SourceDir:      ".",
		UnitDir:        DefaultUnitDir,
		Port:           DefaultPort,
		BindHost:       DefaultBindHost,
		AppModule:      DefaultAppModule,
		PythonPath:     DefaultPythonPath,
		SystemctlPath:  DefaultSystemctlPath,
		JournalctlPath: DefaultJournalctlPath,
		Excludes:       DefaultExcludes(),
		WatchDebounce:  DefaultWatchDebounce,
		StartPollDelay: DefaultStartPollDelay,
		euid:           os.Geteuid,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.ServiceName == "" || strings.ContainsAny(c.ServiceName, "/ \t") {
		return nil, fmt.Errorf("invalid service name %q", c.ServiceName)
	}
	if c.Port == "" {
		c.Port = DefaultPort
	}

	absInstall, err := filepath.Abs(c.InstallDir)
	if err != nil {
		return nil, fmt.Errorf("resolving install dir: %w", err)
	}
	c.InstallDir = absInstall

	absSource, err := filepath.Abs(c.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("resolving source dir: %w", err)
	}
	c.SourceDir = absSource

	if c.Runner == nil {
		c.Runner = NewExecRunner()
	}
	if c.Log == nil {
		c.Log = log.Default()
	}

	return c, nil
}

// Unit returns the full unit name including the .service suffix
func (c *Config) Unit() string {
	return c.ServiceName + ".service"
}

// UnitPath returns the path of the generated unit file
func (c *Config) UnitPath() string {
	return filepath.Join(c.UnitDir, c.Unit())
}

// VenvPath returns the isolated environment directory inside the install dir
func (c *Config) VenvPath() string {
	return filepath.Join(c.InstallDir, VenvDir)
}

// VenvPython returns the interpreter inside the isolated environment
func (c *Config) VenvPython() string {
	return filepath.Join(c.VenvPath(), "bin", "python")
}

// VenvPip returns the pip binary inside the isolated environment
func (c *Config) VenvPip() string {
	return filepath.Join(c.VenvPath(), "bin", "pip")
}

// RequirementsPath returns the dependency manifest inside the install dir
func (c *Config) RequirementsPath() string {
	return filepath.Join(c.InstallDir, RequirementsFile)
}

// ExecStart returns the service start command as an argv slice. The port
// value appears exactly as configured.
func (c *Config) ExecStart() []string {
	return []string{
		c.VenvPython(), "-m", "uvicorn", c.AppModule,
		"--host", c.BindHost,
		"--port", c.Port,
	}
}

// rootRequired returns ErrNotRoot when not running as root
func (c *Config) rootRequired() error {
	if c.euid() != 0 {
		return ErrNotRoot
	}
	return nil
}

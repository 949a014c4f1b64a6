// Package config loads panelctl settings from file, environment, and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/axondata/panelctl"
)

// envPrefix is the prefix for environment variable overrides,
// e.g. PANELCTL_INSTALL_DIR=/srv/panel.
const envPrefix = "PANELCTL"

// Settings mirrors the configuration file schema. Every field has a
// default, so running without a config file is fine.
type Settings struct {
	// Service is the systemd unit name without the .service suffix.
	Service string `mapstructure:"service" validate:"required"`

	// InstallDir is the directory the panel is deployed into.
	InstallDir string `mapstructure:"install_dir" validate:"required"`

	// SourceDir is the tree synced into InstallDir on install and update.
	SourceDir string `mapstructure:"source_dir" validate:"required"`

	// UnitDir is the directory the systemd unit file is written to.
	UnitDir string `mapstructure:"unit_dir" validate:"required"`

	// Port is embedded into the unit file verbatim. It is deliberately
	// not validated so non-numeric systemd specifiers pass through.
	Port string `mapstructure:"port"`

	// BindHost is the listen address embedded into the unit file.
	BindHost string `mapstructure:"bind_host" validate:"required"`

	// Python is the system interpreter used to create the virtualenv.
	Python string `mapstructure:"python" validate:"required"`

	// Excludes replaces the default sync exclusion patterns when set.
	Excludes []string `mapstructure:"excludes"`

	// LogLevel controls CLI verbosity.
	LogLevel string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the settings used when no file or environment
// overrides are present.
func Default() *Settings {
	return &Settings{
		Service:    panelctl.DefaultServiceName,
		InstallDir: panelctl.DefaultInstallDir,
		SourceDir:  ".",
		UnitDir:    panelctl.DefaultUnitDir,
		Port:       panelctl.DefaultPort,
		BindHost:   panelctl.DefaultBindHost,
		Python:     panelctl.DefaultPythonPath,
		LogLevel:   "info",
	}
}

// Load loads settings from file, environment, and defaults.
//
// Precedence (highest to lowest):
//  1. Environment variables (PANELCTL_*)
//  2. Configuration file
//  3. Default values
//
// An empty configPath searches /etc/panelctl, the user config
// directory, and the working directory for config.yaml. A missing
// file is not an error.
func Load(configPath string) (*Settings, error) {
	v := viper.New()

	setupViper(v, configPath)
	setDefaults(v)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &s, nil
}

// setupViper configures environment variable support and the config
// file search path.
func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/panelctl")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "panelctl"))
	}
	v.AddConfigPath(".")
}

// setDefaults registers every key so Unmarshal sees a complete map
// even when the file sets only a few of them.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("service", d.Service)
	v.SetDefault("install_dir", d.InstallDir)
	v.SetDefault("source_dir", d.SourceDir)
	v.SetDefault("unit_dir", d.UnitDir)
	v.SetDefault("port", d.Port)
	v.SetDefault("bind_host", d.BindHost)
	v.SetDefault("python", d.Python)
	v.SetDefault("log_level", d.LogLevel)
}

// readConfigFile reads the configuration file if one exists. A missing
// file is acceptable; the defaults cover every key.
func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Options converts the settings into panelctl configuration options.
func (s *Settings) Options() []panelctl.Option {
	opts := []panelctl.Option{
		panelctl.WithServiceName(s.Service),
		panelctl.WithInstallDir(s.InstallDir),
		panelctl.WithSourceDir(s.SourceDir),
		panelctl.WithUnitDir(s.UnitDir),
		panelctl.WithPort(s.Port),
		panelctl.WithBindHost(s.BindHost),
		panelctl.WithPython(s.Python),
	}
	if len(s.Excludes) > 0 {
		opts = append(opts, panelctl.WithExcludes(s.Excludes))
	}
	return opts
}

// Package commands implements the panelctl CLI commands.
package commands

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/axondata/panelctl"
	"github.com/axondata/panelctl/internal/config"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Global flags.
	cfgFile string
)

// rootCmd represents the base command. Called without a subcommand it
// runs the interactive menu.
var rootCmd = &cobra.Command{
	Use:   "panelctl",
	Short: "Lifecycle manager for the Linux Server Monitor web panel",
	Long: `panelctl installs, updates, and removes the Linux Server Monitor web
panel. It deploys the panel source into an install directory, builds an
isolated Python environment for it, and registers it as a systemd
service.

Run panelctl without arguments for the interactive menu, or use the
subcommands directly for scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

// Execute runs the root command with the given context. The context is
// cancelled on SIGINT/SIGTERM so long-running actions can stop cleanly.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: /etc/panelctl/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(restartCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(resetPasswordCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := panelctl.GetVersion()
		cmd.Printf("panelctl %s (commit: %s, built: %s)\n", Version, Commit, Date)
		cmd.Printf("library %s, service manager %s\n", info.Version, info.ServiceManager)
	},
}

// PrintErr prints an error message to stderr.
func PrintErr(format string, args ...any) {
	rootCmd.PrintErrf(format+"\n", args...)
}

// loadSettings loads the effective settings for the current invocation.
func loadSettings() (*config.Settings, error) {
	return config.Load(cfgFile)
}

// newLogger builds the CLI logger at the configured level.
func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "panelctl"})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// buildManager constructs the lifecycle manager from settings plus any
// per-command overrides.
func buildManager(s *config.Settings, extra ...panelctl.Option) (*panelctl.Config, error) {
	opts := append(s.Options(), panelctl.WithLogger(newLogger(s.LogLevel)))
	opts = append(opts, extra...)
	return panelctl.New(opts...)
}

package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axondata/panelctl"
	"github.com/axondata/panelctl/internal/cli/prompt"
	"github.com/axondata/panelctl/internal/config"
)

var (
	installPort string
	installYes  bool
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the panel and register its systemd service",
	Long: `Install deploys the panel source into the install directory, creates
its virtual environment, installs the declared dependencies, and
registers and starts the systemd service.

Must be run as root. The listening port is prompted for unless --port
or --yes is given.

Examples:
  # Interactive install from the panel source directory
  panelctl install

  # Non-interactive install on a custom port
  panelctl install --port 9090 --yes`,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVar(&installPort, "port", "", "panel listening port (prompted when omitted)")
	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false, "accept defaults without prompting")
}

func runInstall(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	return installAction(cmd.Context(), s, installPort, installYes)
}

// installAction runs the full install sequence. The port string is
// embedded into the unit file exactly as given; there is deliberately
// no numeric validation.
func installAction(ctx context.Context, s *config.Settings, port string, assumeDefaults bool) error {
	if port == "" {
		if assumeDefaults {
			port = s.Port
		} else {
			entered, err := prompt.Input("Panel port", s.Port)
			if err != nil {
				if prompt.IsAborted(err) {
					fmt.Println("Install aborted.")
					return nil
				}
				return err
			}
			port = entered
		}
	}

	mgr, err := buildManager(s, panelctl.WithPort(port))
	if err != nil {
		return err
	}

	report, err := mgr.Install(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	if report.Active {
		fmt.Println("Install complete. The panel is running.")
		fmt.Printf("  URL: %s\n", report.URL)
		fmt.Printf("  %s\n", panelctl.CredentialNotice())
	} else {
		fmt.Println("Install finished, but the service is not active yet.")
		fmt.Printf("  Check the logs: journalctl -u %s -n 50\n", s.Service)
	}
	return nil
}

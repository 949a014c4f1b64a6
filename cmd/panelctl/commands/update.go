package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axondata/panelctl"
	"github.com/axondata/panelctl/internal/config"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Redeploy the panel source and restart the service",
	Long: `Update re-syncs the source tree into the install directory and
restarts the service. The virtual environment and the service unit are
left as installed: dependencies are not reinstalled and the port does
not change. Use install for either of those.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		return updateAction(cmd.Context(), s)
	},
}

func updateAction(ctx context.Context, s *config.Settings) error {
	mgr, err := buildManager(s)
	if err != nil {
		return err
	}

	if err := mgr.Update(ctx); err != nil {
		if errors.Is(err, panelctl.ErrNotInstalled) {
			fmt.Printf("The panel is not installed in %s. Run install first.\n", s.InstallDir)
			return nil
		}
		return err
	}

	fmt.Println("Update complete, service restarted.")
	return nil
}

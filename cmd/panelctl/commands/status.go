package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axondata/panelctl/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the panel service status",
	Long: `Status prints the raw systemctl status report for the panel service.
The output format and exit detail are systemd's own; nothing is
interpreted or rewritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		return statusAction(cmd.Context(), s)
	},
}

func statusAction(ctx context.Context, s *config.Settings) error {
	mgr, err := buildManager(s)
	if err != nil {
		return err
	}

	out, err := mgr.StatusText(ctx)
	if out != "" {
		fmt.Print(out)
		return nil
	}
	return err
}

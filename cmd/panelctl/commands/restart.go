package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axondata/panelctl/internal/config"
)

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the panel service",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		return restartAction(cmd.Context(), s)
	},
}

// restartAction forwards the restart verb to systemd. The completion
// message is printed either way; systemd owns the outcome and the
// status action reports it.
func restartAction(ctx context.Context, s *config.Settings) error {
	mgr, err := buildManager(s)
	if err != nil {
		return err
	}

	if err := mgr.Restart(ctx); err != nil {
		mgr.Log.Warn("restart failed", "err", err)
	}
	fmt.Printf("Service %s restarted.\n", s.Service)
	return nil
}

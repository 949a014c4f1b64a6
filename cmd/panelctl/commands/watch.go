package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/axondata/panelctl"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Redeploy automatically when the source tree changes",
	Long: `Watch monitors the source directory and runs an update on every
change, debounced so a burst of writes triggers a single redeploy.
Intended for development boxes; press Ctrl+C to stop.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	mgr, err := buildManager(s)
	if err != nil {
		return err
	}

	events, cleanup, err := mgr.Watch(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()

	mgr.Log.Info("watching for changes", "dir", mgr.SourceDir)

	for ev := range events {
		if ev.Err != nil {
			mgr.Log.Warn("watch error", "err", ev.Err)
			continue
		}

		mgr.Log.Info("change detected", "path", ev.Path)
		if err := mgr.Update(cmd.Context()); err != nil {
			if errors.Is(err, panelctl.ErrNotInstalled) || errors.Is(err, panelctl.ErrNotRoot) {
				return err
			}
			mgr.Log.Warn("update failed", "err", err)
		}
	}
	return nil
}

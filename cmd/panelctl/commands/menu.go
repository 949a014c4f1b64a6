package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/axondata/panelctl"
	"github.com/axondata/panelctl/internal/cli/prompt"
	"github.com/axondata/panelctl/internal/config"
)

// menuEntries fixes the menu order. Digits are taken from Action.Choice,
// the same mapping ActionFromChoice parses.
var menuEntries = []struct {
	action panelctl.Action
	label  string
}{
	{panelctl.ActionInstall, "Install"},
	{panelctl.ActionUninstall, "Uninstall"},
	{panelctl.ActionRestart, "Restart service"},
	{panelctl.ActionStatus, "Service status"},
	{panelctl.ActionUpdate, "Update"},
	{panelctl.ActionExit, "Exit"},
}

func menuText() string {
	var b strings.Builder
	b.WriteString("\nLinux Server Monitor panel manager")
	for _, e := range menuEntries {
		fmt.Fprintf(&b, "\n  %c) %s", e.action.Choice(), e.label)
	}
	return b.String()
}

// runMenu drives the interactive loop. Invalid input redisplays the
// menu; the loop only ends on the exit choice or a condition no further
// menu action can recover from (missing root, no usable package
// manager).
func runMenu(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	menu := menuText()
	for {
		fmt.Println(menu)
		choice, err := prompt.Answer("Select an option")
		if err != nil {
			if prompt.IsAborted(err) {
				return nil
			}
			return err
		}

		action, ok := panelctl.ActionFromChoice(choice)
		if !ok {
			fmt.Printf("Invalid option %q, expected 0-5.\n", choice)
			continue
		}
		if action == panelctl.ActionExit {
			return nil
		}

		if err := dispatch(cmd.Context(), s, action); err != nil {
			if errors.Is(err, panelctl.ErrNotRoot) || errors.Is(err, panelctl.ErrNoPackageManager) {
				return err
			}
			PrintErr("%s: %v", action, err)
		}
	}
}

func dispatch(ctx context.Context, s *config.Settings, action panelctl.Action) error {
	switch action {
	case panelctl.ActionInstall:
		return installAction(ctx, s, "", false)
	case panelctl.ActionUninstall:
		return uninstallAction(ctx, s, false)
	case panelctl.ActionRestart:
		return restartAction(ctx, s)
	case panelctl.ActionStatus:
		return statusAction(ctx, s)
	case panelctl.ActionUpdate:
		return updateAction(ctx, s)
	}
	return nil
}

package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axondata/panelctl"
	"github.com/axondata/panelctl/internal/cli/prompt"
	"github.com/axondata/panelctl/internal/config"
)

var uninstallYes bool

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the panel service and delete the install directory",
	Long: `Uninstall stops and disables the panel service, removes its unit
file, and deletes the install directory. The removal is irreversible
and requires confirmation unless --yes is given.`,
	RunE: runUninstall,
}

func init() {
	uninstallCmd.Flags().BoolVarP(&uninstallYes, "yes", "y", false, "skip the confirmation prompt")
}

func runUninstall(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	return uninstallAction(cmd.Context(), s, uninstallYes)
}

// uninstallAction confirms and then tears the installation down. Any
// answer other than yes leaves the system untouched.
func uninstallAction(ctx context.Context, s *config.Settings, force bool) error {
	answer := "y"
	if !force {
		var err error
		answer, err = prompt.Answer(fmt.Sprintf("Remove service %s and delete %s? [y/N]", s.Service, s.InstallDir))
		if err != nil && !prompt.IsAborted(err) {
			return err
		}
	}

	mgr, err := buildManager(s)
	if err != nil {
		return err
	}

	if err := mgr.Uninstall(ctx, answer); err != nil {
		if errors.Is(err, panelctl.ErrAborted) {
			fmt.Println("Uninstall aborted, nothing removed.")
			return nil
		}
		return err
	}

	fmt.Println("Uninstall complete.")
	return nil
}

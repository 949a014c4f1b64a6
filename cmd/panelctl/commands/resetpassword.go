package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Reset the panel admin password to its default",
	Long: `Reset-password runs the panel's own reset script inside the installed
virtual environment, restoring the admin account to its default
password. The panel prompts for a new one on the next login.`,
	RunE: runResetPassword,
}

func runResetPassword(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	mgr, err := buildManager(s)
	if err != nil {
		return err
	}

	out, err := mgr.ResetPassword(cmd.Context())
	if err != nil {
		return err
	}
	if out != "" {
		fmt.Println(out)
	}
	return nil
}

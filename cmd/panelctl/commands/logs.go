package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	logsFollow bool
	logsLines  int
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the panel service journal",
	Long: `Logs displays the systemd journal for the panel service.

Examples:
  # Show the last 100 lines
  panelctl logs

  # Follow new entries
  panelctl logs -f

  # Show the last 20 lines
  panelctl logs -n 20`,
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "follow the journal")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", 100, "number of lines to show")
}

func runLogs(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	mgr, err := buildManager(s)
	if err != nil {
		return err
	}

	return mgr.Logs(cmd.Context(), os.Stdout, logsLines, logsFollow)
}

package commands

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/axondata/panelctl/internal/cli/output"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show a deployment summary",
	Long: `Info summarizes the deployment: whether the panel is installed, the
service state, and the port baked into the installed unit file.`,
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	mgr, err := buildManager(s)
	if err != nil {
		return err
	}

	info := mgr.CollectInfo(cmd.Context())

	pairs := [][2]string{
		{"Service", s.Service},
		{"Install dir", info.InstallDir},
		{"Installed", yesNo(info.Installed)},
		{"Unit file", yesNo(info.UnitPresent)},
		{"Enabled", yesNo(info.Enabled)},
	}
	if info.ActiveState != "" {
		pairs = append(pairs, [2]string{"State", fmt.Sprintf("%s (%s)", info.ActiveState, info.SubState)})
	}
	if info.MainPID > 0 {
		pairs = append(pairs, [2]string{"PID", strconv.Itoa(info.MainPID)})
	}
	if info.Uptime > 0 {
		pairs = append(pairs, [2]string{"Uptime", info.Uptime.Round(time.Second).String()})
	}
	if info.Port != "" {
		pairs = append(pairs, [2]string{"Port", info.Port})
	}

	return output.SimpleTable(os.Stdout, pairs)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

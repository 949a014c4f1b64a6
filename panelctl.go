package panelctl

import (
	"strings"
	"time"
)

// Deployment defaults for the monitor panel
const (
	// DefaultServiceName is the systemd unit name (without the .service suffix)
	DefaultServiceName = "monitor-panel"

	// ServiceDescription is the Description field of the generated unit
	ServiceDescription = "Linux Server Monitor web panel"

	// DefaultInstallDir is where the panel source tree is deployed
	DefaultInstallDir = "/opt/monitor-panel"

	// DefaultUnitDir is the systemd unit directory
	DefaultUnitDir = "/etc/systemd/system"

	// DefaultPort is the listening port embedded into the unit file.
	// Kept as a string: the value is written into ExecStart verbatim.
	DefaultPort = "8000"

	// DefaultBindHost is the listen address embedded into the unit file
	DefaultBindHost = "0.0.0.0"

	// DefaultAppModule is the ASGI module:app reference passed to uvicorn
	DefaultAppModule = "main:app"

	// VenvDir is the isolated environment directory inside the install dir
	VenvDir = "venv"

	// RequirementsFile is the dependency manifest expected in the source tree
	RequirementsFile = "requirements.txt"

	// ResetPasswordScript is the panel's bundled credential reset helper
	ResetPasswordScript = "reset_password.py"

	// DefaultWatchDebounce is the default debounce time for source tree watching
	DefaultWatchDebounce = 500 * time.Millisecond

	// DefaultStartPollDelay is how long to wait before the post-start status check
	DefaultStartPollDelay = 2 * time.Second
)

// Binary names resolved via PATH, overridable through Config
const (
	// DefaultPythonPath is the system interpreter used to create the venv
	DefaultPythonPath = "python3"

	// DefaultSystemctlPath is the systemd control binary
	DefaultSystemctlPath = "systemctl"

	// DefaultJournalctlPath is the journal query binary
	DefaultJournalctlPath = "journalctl"
)

// File modes
const (
	// DirMode is the default mode for created directories
	DirMode = 0o755

	// FileMode is the default mode for created files
	FileMode = 0o644
)

// Action represents one lifecycle operation offered by the manager
type Action int

const (
	// ActionUnknown represents an unrecognized menu choice
	ActionUnknown Action = iota
	// ActionExit leaves the menu loop
	ActionExit
	// ActionInstall provisions the runtime, deploys the tree, and registers the service
	ActionInstall
	// ActionUninstall removes the service and the install directory
	ActionUninstall
	// ActionRestart forwards a restart to the service manager
	ActionRestart
	// ActionStatus forwards a status query to the service manager
	ActionStatus
	// ActionUpdate re-syncs the source tree and restarts the service
	ActionUpdate
)

// Action string constants
const (
	actionUnknownStr   = "unknown"
	actionExitStr      = "exit"
	actionInstallStr   = "install"
	actionUninstallStr = "uninstall"
	actionRestartStr   = "restart"
	actionStatusStr    = "status"
	actionUpdateStr    = "update"
)

// String returns the string representation of an Action
func (a Action) String() string {
	switch a {
	case ActionExit:
		return actionExitStr
	case ActionInstall:
		return actionInstallStr
	case ActionUninstall:
		return actionUninstallStr
	case ActionRestart:
		return actionRestartStr
	case ActionStatus:
		return actionStatusStr
	case ActionUpdate:
		return actionUpdateStr
	default:
		return actionUnknownStr
	}
}

// Choice returns the menu digit for this action
func (a Action) Choice() byte {
	switch a {
	case ActionExit:
		return '0'
	case ActionInstall:
		return '1'
	case ActionUninstall:
		return '2'
	case ActionRestart:
		return '3'
	case ActionStatus:
		return '4'
	case ActionUpdate:
		return '5'
	default:
		return 0
	}
}

// ActionFromChoice maps one line of menu input to an Action. The input is
// trimmed first; anything that is not a single known digit yields
// ActionUnknown and ok=false so the menu can re-prompt.
func ActionFromChoice(input string) (Action, bool) {
	switch strings.TrimSpace(input) {
	case "0":
		return ActionExit, true
	case "1":
		return ActionInstall, true
	case "2":
		return ActionUninstall, true
	case "3":
		return ActionRestart, true
	case "4":
		return ActionStatus, true
	case "5":
		return ActionUpdate, true
	default:
		return ActionUnknown, false
	}
}

// DefaultExcludes are the source tree paths never copied into the install
// directory: the isolated environment, bytecode caches, database files, and
// the panel's data directory.
func DefaultExcludes() []string {
	return []string{VenvDir, "__pycache__", "*.db", "data"}
}

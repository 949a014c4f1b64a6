// Package panelctl manages the full lifecycle of the Linux Server Monitor
// web panel on a systemd host: provisioning a Python runtime, deploying the
// source tree, generating the service unit, and driving the service through
// systemctl.
//
// All state lives in an immutable Config built once at startup:
//
//	cfg, err := panelctl.New(
//	    panelctl.WithPort("9000"),
//	    panelctl.WithInstallDir("/opt/monitor-panel"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := cfg.Install(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("panel at", report.URL)
//
// # Actions
//
// Each lifecycle operation is a method on Config:
//
//   - Install deploys the tree, builds the venv, writes the unit, and
//     starts the service
//   - Uninstall tears everything down after an explicit confirmation
//   - Update re-syncs the tree and restarts, leaving the venv and the
//     unit file untouched
//   - Restart, Start, Stop, StatusText forward single verbs to systemctl
//   - Watch re-deploys on source changes, for development hosts
//
// Every external command runs through the Runner interface and returns a
// captured Result, so each call site decides whether a failure stops the
// action or is merely logged. Swapping the Runner out is also the seam the
// tests use.
//
// # Design Philosophy
//
// This library prioritizes:
//
//   - One immutable configuration object passed to every action
//   - Captured output and exit codes for every external command
//   - Idempotent teardown: uninstalling twice converges on the same state
//   - Context-aware operations throughout
//   - Decision logic (confirmation parsing, menu dispatch, exclusion
//     matching) as pure functions
package panelctl

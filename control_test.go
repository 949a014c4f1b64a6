package panelctl

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestControlPassthrough(t *testing.T) {
	r := newRecordingRunner()
	cfg := newTestConfig(t, r)
	writeTree(t, cfg.InstallDir, map[string]string{"main.py": "app"})

	ctx := context.Background()
	if err := cfg.Restart(ctx); err != nil {
		t.Fatalf("Restart() error = %v", err)
	}
	if err := cfg.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if err := cfg.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	wantCalls := []string{
		"systemctl restart panel-test.service",
		"systemctl stop panel-test.service",
		"systemctl start panel-test.service",
	}
	calls := r.callLines()
	if len(calls) != len(wantCalls) {
		t.Fatalf("calls = %v, want %v", calls, wantCalls)
	}
	for i, want := range wantCalls {
		if calls[i] != want {
			t.Errorf("calls[%d] = %q, want %q", i, calls[i], want)
		}
	}

	// Passthrough verbs never touch the deployment
	if !exists(cfg.InstallDir + "/main.py") {
		t.Error("install dir modified by passthrough verbs")
	}
}

func TestConfigStatusText(t *testing.T) {
	const display = "● panel-test.service\n   Active: active (running)\n"

	r := newRecordingRunner()
	r.script("systemctl status --no-pager", &Result{Stdout: display, ExitCode: 0}, nil)

	cfg := newTestConfig(t, r)
	out, err := cfg.StatusText(context.Background())
	if err != nil {
		t.Fatalf("StatusText() error = %v", err)
	}
	if out != display {
		t.Errorf("StatusText() = %q, want raw systemctl display", out)
	}
}

func TestConfigStatus(t *testing.T) {
	r := newRecordingRunner()
	r.script("systemctl show --no-page", &Result{Stdout: "ActiveState=active\nSubState=running\n", ExitCode: 0}, nil)

	cfg := newTestConfig(t, r)
	status, err := cfg.Status(context.Background())
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if !status.Running {
		t.Error("Running = false, want true")
	}
}

func TestLogs(t *testing.T) {
	r := newRecordingRunner()
	r.streamOutput("journalctl", "Aug 17 10:00:00 host panel[42]: started\n")

	cfg := newTestConfig(t, r)

	var buf bytes.Buffer
	if err := cfg.Logs(context.Background(), &buf, 50, false); err != nil {
		t.Fatalf("Logs() error = %v", err)
	}

	if !r.calledWith("journalctl -u panel-test.service --no-pager -n 50") {
		t.Errorf("calls = %v, want journalctl with line count", r.callLines())
	}
	if !strings.Contains(buf.String(), "started") {
		t.Errorf("streamed output = %q, want journal lines", buf.String())
	}
}

func TestLogsFollow(t *testing.T) {
	r := newRecordingRunner()
	cfg := newTestConfig(t, r)

	var buf bytes.Buffer
	if err := cfg.Logs(context.Background(), &buf, 0, true); err != nil {
		t.Fatalf("Logs() error = %v", err)
	}

	if !r.calledWith("journalctl -u panel-test.service --no-pager -f") {
		t.Errorf("calls = %v, want follow flag without line count", r.callLines())
	}
}

package panelctl

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUpdateNotInstalled(t *testing.T) {
	r := newRecordingRunner()
	cfg := newTestConfig(t, r)
	writeTree(t, cfg.SourceDir, map[string]string{"main.py": "new"})

	err := cfg.Update(context.Background())
	if !errors.Is(err, ErrNotInstalled) {
		t.Fatalf("Update() error = %v, want ErrNotInstalled", err)
	}

	if r.callCount() != 0 {
		t.Errorf("calls = %v, want no service manager calls when not installed", r.callLines())
	}
	if exists(cfg.InstallDir) {
		t.Error("install dir created by update, want untouched")
	}
}

func TestUpdate(t *testing.T) {
	r := newRecordingRunner()
	cfg := newTestConfig(t, r)

	writeTree(t, cfg.SourceDir, map[string]string{
		"main.py":    "version 2",
		"new_mod.py": "added",
	})
	writeTree(t, cfg.InstallDir, map[string]string{
		"main.py":          "version 1",
		"venv/bin/python":  "interpreter",
		"venv/lib/site.py": "installed deps",
	})

	if err := cfg.Update(context.Background()); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(cfg.InstallDir, "main.py"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "version 2" {
		t.Errorf("main.py = %q, want re-synced content", got)
	}
	if !exists(filepath.Join(cfg.InstallDir, "new_mod.py")) {
		t.Error("new_mod.py missing, want new files deployed")
	}

	// The venv survives an update untouched
	deps, err := os.ReadFile(filepath.Join(cfg.InstallDir, "venv/lib/site.py"))
	if err != nil || string(deps) != "installed deps" {
		t.Errorf("venv contents = %q, %v; want untouched", deps, err)
	}

	calls := r.callLines()
	if len(calls) != 1 || calls[0] != "systemctl restart panel-test.service" {
		t.Errorf("calls = %v, want a single restart", calls)
	}
}

func TestUpdateDoesNotReinstallDependencies(t *testing.T) {
	r := newRecordingRunner()
	cfg := newTestConfig(t, r)
	writeTree(t, cfg.SourceDir, map[string]string{"main.py": "x", "requirements.txt": "fastapi\nnewdep"})
	writeTree(t, cfg.InstallDir, map[string]string{"main.py": "old"})

	if err := cfg.Update(context.Background()); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if r.calledWith(cfg.VenvPip()) {
		t.Errorf("calls = %v, want no dependency install on update", r.callLines())
	}
	if r.calledWith("python3") {
		t.Errorf("calls = %v, want no interpreter calls on update", r.callLines())
	}
}

func TestUpdateDoesNotTouchUnit(t *testing.T) {
	r := newRecordingRunner()
	cfg := newTestConfig(t, r, WithPort("9090"))
	writeTree(t, cfg.SourceDir, map[string]string{"main.py": "x"})
	writeTree(t, cfg.InstallDir, map[string]string{"main.py": "old"})

	// Unit from the original install, on a different port
	orig := newTestConfig(t, r, WithPort("8000"), WithUnitDir(cfg.UnitDir), WithServiceName(cfg.ServiceName))
	if err := orig.WriteUnit(); err != nil {
		t.Fatal(err)
	}

	if err := cfg.Update(context.Background()); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	content, err := os.ReadFile(cfg.UnitPath())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "--port 8000") {
		t.Errorf("unit content = %s, want original port preserved across update", content)
	}
}

func TestUpdateVenvExcludedEvenWithCustomExcludes(t *testing.T) {
	r := newRecordingRunner()
	cfg := newTestConfig(t, r, WithExcludes([]string{"data"}))

	writeTree(t, cfg.SourceDir, map[string]string{
		"main.py":         "new",
		"venv/bin/python": "source venv, must not deploy",
	})
	writeTree(t, cfg.InstallDir, map[string]string{
		"main.py":         "old",
		"venv/bin/python": "installed interpreter",
	})

	if err := cfg.Update(context.Background()); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(cfg.InstallDir, "venv/bin/python"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "installed interpreter" {
		t.Errorf("venv interpreter = %q, want untouched by update", got)
	}
}

func TestUpdateRestartFailureIsAdvisory(t *testing.T) {
	r := newRecordingRunner()
	r.fail("systemctl restart", 1, "unit not found")

	cfg := newTestConfig(t, r)
	writeTree(t, cfg.SourceDir, map[string]string{"main.py": "x"})
	writeTree(t, cfg.InstallDir, map[string]string{"main.py": "old"})

	if err := cfg.Update(context.Background()); err != nil {
		t.Errorf("Update() error = %v, want restart failure advisory", err)
	}
}

func TestUpdateRequiresRoot(t *testing.T) {
	r := newRecordingRunner()
	cfg := newTestConfig(t, r, asUser())
	writeTree(t, cfg.InstallDir, map[string]string{"main.py": "old"})

	if err := cfg.Update(context.Background()); !errors.Is(err, ErrNotRoot) {
		t.Fatalf("Update() error = %v, want ErrNotRoot", err)
	}
	if r.callCount() != 0 {
		t.Errorf("calls = %v, want none without privileges", r.callLines())
	}
}

func TestResetPassword(t *testing.T) {
	r := newRecordingRunner()
	cfg := newTestConfig(t, r)
	writeTree(t, cfg.InstallDir, map[string]string{"reset_password.py": "reset()"})

	r.script(cfg.VenvPython()+" reset_password.py",
		&Result{Stdout: "Password reset to default\n", ExitCode: 0}, nil)

	out, err := cfg.ResetPassword(context.Background())
	if err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}
	if out != "Password reset to default" {
		t.Errorf("output = %q, want script output", out)
	}
}

func TestResetPasswordNotInstalled(t *testing.T) {
	r := newRecordingRunner()
	cfg := newTestConfig(t, r)

	if _, err := cfg.ResetPassword(context.Background()); !errors.Is(err, ErrNotInstalled) {
		t.Fatalf("ResetPassword() error = %v, want ErrNotInstalled", err)
	}
	if r.callCount() != 0 {
		t.Errorf("calls = %v, want none when script is absent", r.callLines())
	}
}

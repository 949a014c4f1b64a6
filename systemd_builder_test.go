package panelctl

import (
	"os"
	"strings"
	"testing"

	"github.com/coreos/go-systemd/v22/unit"
)

func TestBuildUnitDefaults(t *testing.T) {
	cfg := newTestConfig(t, newRecordingRunner())

	content, err := cfg.BuildUnit()
	if err != nil {
		t.Fatalf("BuildUnit() error = %v", err)
	}

	wantLines := []string{
		"Description=" + ServiceDescription,
		"After=network.target",
		"Type=simple",
		"User=root",
		"WorkingDirectory=" + cfg.InstallDir,
		"Restart=always",
		"RestartSec=3",
		"StandardOutput=journal",
		"WantedBy=multi-user.target",
		"--host 0.0.0.0",
		"--port 8000",
	}
	for _, want := range wantLines {
		if !strings.Contains(content, want) {
			t.Errorf("unit content missing %q:\n%s", want, content)
		}
	}

	if !strings.Contains(content, cfg.VenvPython()+" -m uvicorn main:app") {
		t.Errorf("unit content missing venv uvicorn invocation:\n%s", content)
	}
}

func TestBuildUnitPortEmbeddedVerbatim(t *testing.T) {
	tests := []struct {
		name string
		port string
		want string
	}{
		{"default", "8000", "--port 8000"},
		{"custom", "9090", "--port 9090"},
		{"non-numeric passes through", "http", "--port http"},
		{"whitespace is quoted", "80 00", `--port "80 00"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig(t, newRecordingRunner(), WithPort(tt.port))

			content, err := cfg.BuildUnit()
			if err != nil {
				t.Fatalf("BuildUnit() error = %v", err)
			}
			if !strings.Contains(content, tt.want) {
				t.Errorf("unit content missing %q:\n%s", tt.want, content)
			}
		})
	}
}

func TestWriteUnitReadBack(t *testing.T) {
	cfg := newTestConfig(t, newRecordingRunner(), WithPort("8123"))

	if err := cfg.WriteUnit(); err != nil {
		t.Fatalf("WriteUnit() error = %v", err)
	}

	info, err := os.Stat(cfg.UnitPath())
	if err != nil {
		t.Fatalf("unit file missing: %v", err)
	}
	if info.Mode().Perm() != FileMode {
		t.Errorf("unit file mode = %v, want %v", info.Mode().Perm(), os.FileMode(FileMode))
	}

	opts, err := cfg.ReadUnitOptions()
	if err != nil {
		t.Fatalf("ReadUnitOptions() error = %v", err)
	}
	if got := PortFromUnit(opts); got != "8123" {
		t.Errorf("PortFromUnit() = %v, want 8123", got)
	}
}

func TestWriteUnitOverwrites(t *testing.T) {
	cfg := newTestConfig(t, newRecordingRunner(), WithPort("8000"))
	if err := cfg.WriteUnit(); err != nil {
		t.Fatalf("WriteUnit() error = %v", err)
	}

	cfg2 := newTestConfig(t, newRecordingRunner(), WithPort("9001"), WithUnitDir(cfg.UnitDir), WithServiceName(cfg.ServiceName))
	if err := cfg2.WriteUnit(); err != nil {
		t.Fatalf("WriteUnit() rewrite error = %v", err)
	}

	opts, err := cfg2.ReadUnitOptions()
	if err != nil {
		t.Fatalf("ReadUnitOptions() error = %v", err)
	}
	if got := PortFromUnit(opts); got != "9001" {
		t.Errorf("PortFromUnit() after rewrite = %v, want 9001", got)
	}
}

func TestRemoveUnitIdempotent(t *testing.T) {
	cfg := newTestConfig(t, newRecordingRunner())

	if err := cfg.WriteUnit(); err != nil {
		t.Fatalf("WriteUnit() error = %v", err)
	}
	if err := cfg.RemoveUnit(); err != nil {
		t.Fatalf("RemoveUnit() error = %v", err)
	}
	if exists(cfg.UnitPath()) {
		t.Fatal("unit file still present after RemoveUnit()")
	}
	if err := cfg.RemoveUnit(); err != nil {
		t.Errorf("second RemoveUnit() error = %v, want nil", err)
	}
}

func TestPortFromUnit(t *testing.T) {
	tests := []struct {
		name string
		opts []*unit.UnitOption
		want string
	}{
		{
			"port present",
			[]*unit.UnitOption{unit.NewUnitOption("Service", "ExecStart", "/x/python -m uvicorn main:app --host 0.0.0.0 --port 8444")},
			"8444",
		},
		{
			"no port flag",
			[]*unit.UnitOption{unit.NewUnitOption("Service", "ExecStart", "/x/python -m uvicorn main:app")},
			"",
		},
		{
			"port flag dangling",
			[]*unit.UnitOption{unit.NewUnitOption("Service", "ExecStart", "/x/python --port")},
			"",
		},
		{
			"wrong section ignored",
			[]*unit.UnitOption{unit.NewUnitOption("Unit", "ExecStart", "--port 1")},
			"",
		},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PortFromUnit(tt.opts); got != tt.want {
				t.Errorf("PortFromUnit() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExecStartLine(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want string
	}{
		{"plain", []string{"/usr/bin/python", "-m", "uvicorn"}, "/usr/bin/python -m uvicorn"},
		{"space quoted", []string{"/usr/bin/python", "a b"}, `/usr/bin/python "a b"`},
		{"dollar quoted", []string{"/usr/bin/python", "$PORT"}, `/usr/bin/python "$PORT"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := execStartLine(tt.argv); got != tt.want {
				t.Errorf("execStartLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

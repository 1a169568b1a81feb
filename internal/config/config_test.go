package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()
	if cfg.Storage.Path != "~/.ansible-log" {
		t.Errorf("Storage.Path = %q", cfg.Storage.Path)
	}
	if cfg.Storage.Keep != DefaultKeep {
		t.Errorf("Storage.Keep = %d, want %d", cfg.Storage.Keep, DefaultKeep)
	}
	if cfg.Output.Color != "auto" {
		t.Errorf("Output.Color = %q, want auto", cfg.Output.Color)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ansible-log.toml")
	content := `
[storage]
path = "/var/log/ansible-runs"
keep = 7

[output]
color = "never"

[filter]
allow = ["error", "fatal"]
deny = ["host pattern"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Storage.Path != "/var/log/ansible-runs" {
		t.Errorf("Storage.Path = %q", cfg.Storage.Path)
	}
	if cfg.Storage.Keep != 7 {
		t.Errorf("Storage.Keep = %d", cfg.Storage.Keep)
	}
	if cfg.Output.Color != "never" {
		t.Errorf("Output.Color = %q", cfg.Output.Color)
	}
	if len(cfg.Filter.Allow) != 2 || cfg.Filter.Allow[0] != "error" {
		t.Errorf("Filter.Allow = %v", cfg.Filter.Allow)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	if !os.IsNotExist(err) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("storage = [broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Keep != DefaultKeep {
		t.Errorf("Storage.Keep = %d, want %d", cfg.Storage.Keep, DefaultKeep)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ANSIBLE_LOG_DIR", "/tmp/override-dir")
	t.Setenv("ANSIBLE_LOG_KEEP", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Path != "/tmp/override-dir" {
		t.Errorf("Storage.Path = %q", cfg.Storage.Path)
	}
	if cfg.Storage.Keep != 3 {
		t.Errorf("Storage.Keep = %d, want 3", cfg.Storage.Keep)
	}
}

func TestEnvOverrides_InvalidKeepIgnored(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ANSIBLE_LOG_KEEP", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Keep != DefaultKeep {
		t.Errorf("Storage.Keep = %d, want default", cfg.Storage.Keep)
	}
}

func TestLogDir_TildeExpansion(t *testing.T) {
	cfg := New()
	dir := cfg.LogDir()
	if strings.HasPrefix(dir, "~") {
		t.Errorf("LogDir did not expand ~: %q", dir)
	}
	if !strings.HasSuffix(dir, ".ansible-log") {
		t.Errorf("LogDir = %q", dir)
	}
}

func TestLogDir_EmptyFallsBack(t *testing.T) {
	cfg := &Config{}
	dir := cfg.LogDir()
	if !strings.HasSuffix(dir, ".ansible-log") {
		t.Errorf("LogDir = %q", dir)
	}
}

func TestKeep_FloorsAtDefault(t *testing.T) {
	cfg := &Config{}
	if cfg.Keep() != DefaultKeep {
		t.Errorf("Keep() = %d, want %d", cfg.Keep(), DefaultKeep)
	}
	cfg.Storage.Keep = 12
	if cfg.Keep() != 12 {
		t.Errorf("Keep() = %d, want 12", cfg.Keep())
	}
}

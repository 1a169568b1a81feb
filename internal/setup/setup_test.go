package setup

import (
	"os"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/patrickjeremic/ansible-log/internal/config"
)

func TestWriteFiles(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := config.New()
	cfg.Storage.Path = "/data/runs"
	cfg.Storage.Keep = 9

	written, err := WriteFiles(cfg, false)
	if err != nil {
		t.Fatalf("WriteFiles: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("wrote %v, want both starter files", written)
	}

	// The generated config must load back with the chosen values.
	var got config.Config
	if _, err := toml.DecodeFile(ConfigFile, &got); err != nil {
		t.Fatalf("generated config does not parse: %v", err)
	}
	if got.Storage.Path != "/data/runs" {
		t.Errorf("Storage.Path = %q", got.Storage.Path)
	}
	if got.Storage.Keep != 9 {
		t.Errorf("Storage.Keep = %d", got.Storage.Keep)
	}

	data, err := os.ReadFile(AnsibleCfg)
	if err != nil {
		t.Fatalf("reading %s: %v", AnsibleCfg, err)
	}
	for _, want := range []string{"force_color = True", "[diff]", "always = True"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("%s missing %q", AnsibleCfg, want)
		}
	}
}

func TestWriteFiles_RefusesOverwrite(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := os.WriteFile(ConfigFile, []byte("# mine\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := WriteFiles(config.New(), false)
	if err == nil {
		t.Fatal("expected refusal to overwrite an existing file")
	}

	data, err := os.ReadFile(ConfigFile)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# mine\n" {
		t.Error("existing file was modified")
	}
}

func TestWriteFiles_ForceOverwrites(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := os.WriteFile(ConfigFile, []byte("# mine\n"), 0644); err != nil {
		t.Fatal(err)
	}

	written, err := WriteFiles(config.New(), true)
	if err != nil {
		t.Fatalf("WriteFiles: %v", err)
	}
	if len(written) != 2 {
		t.Errorf("wrote %v, want both files", written)
	}

	data, err := os.ReadFile(ConfigFile)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) == "# mine\n" {
		t.Error("force did not overwrite")
	}
}

func TestWizard_AdvanceValidatesKeep(t *testing.T) {
	m := newModel(config.New())

	m.input.SetValue("/custom/dir")
	m.advance()
	if m.cfg.Storage.Path != "/custom/dir" {
		t.Errorf("Storage.Path = %q", m.cfg.Storage.Path)
	}
	if m.step != StepKeep {
		t.Errorf("step = %v, want StepKeep", m.step)
	}

	m.input.SetValue("zero")
	m.advance()
	if m.err == nil {
		t.Error("non-numeric retention accepted")
	}
	if m.step != StepKeep {
		t.Error("step advanced past invalid input")
	}

	m.input.SetValue("25")
	m.advance()
	if m.cfg.Storage.Keep != 25 {
		t.Errorf("Storage.Keep = %d, want 25", m.cfg.Storage.Keep)
	}
	if m.step != StepComplete {
		t.Errorf("step = %v, want StepComplete", m.step)
	}
}

func TestWizard_BlankKeepsDefaults(t *testing.T) {
	m := newModel(config.New())

	m.input.SetValue("")
	m.advance()
	m.input.SetValue("")
	m.advance()

	if m.cfg.Storage.Path != "~/.ansible-log" {
		t.Errorf("Storage.Path = %q", m.cfg.Storage.Path)
	}
	if m.cfg.Storage.Keep != config.DefaultKeep {
		t.Errorf("Storage.Keep = %d", m.cfg.Storage.Keep)
	}
}

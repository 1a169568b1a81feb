package main

import (
	"os"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/patrickjeremic/ansible-log/internal/config"
	"github.com/patrickjeremic/ansible-log/internal/logging"
)

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	cli := &CLI{}
	parser, err := kong.New(cli, kong.Name("ansible-log"), kongVars())
	if err != nil {
		t.Fatalf("kong.New: %v", err)
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	return cli, ctx
}

func TestCLI_RunPassthrough(t *testing.T) {
	cli, ctx := parseCLI(t, "run", "-p", "-d", "site.yml", "--check", "-i", "hosts")
	if ctx.Command() != "run <args>" {
		t.Errorf("Command() = %q", ctx.Command())
	}
	if !cli.Run.Playbook || !cli.Run.DiffOnly {
		t.Errorf("flags not set: %+v", cli.Run)
	}
	want := []string{"site.yml", "--check", "-i", "hosts"}
	if len(cli.Run.Args) != len(want) {
		t.Fatalf("Args = %v, want %v", cli.Run.Args, want)
	}
	for i := range want {
		if cli.Run.Args[i] != want[i] {
			t.Errorf("Args[%d] = %q, want %q", i, cli.Run.Args[i], want[i])
		}
	}
}

func TestCLI_LogIndexDefaults(t *testing.T) {
	cli, _ := parseCLI(t, "log")
	if cli.Log.Index != 0 {
		t.Errorf("Index = %d, want 0", cli.Log.Index)
	}

	cli, _ = parseCLI(t, "log", "2", "--full", "--no-color")
	if cli.Log.Index != 2 {
		t.Errorf("Index = %d, want 2", cli.Log.Index)
	}
	if !cli.Log.Full || !cli.Log.NoColor {
		t.Errorf("flags not set: %+v", cli.Log)
	}
}

func TestCLI_CleanFlags(t *testing.T) {
	cli, _ := parseCLI(t, "clean", "--keep", "5")
	if cli.Clean.Keep != 5 {
		t.Errorf("Keep = %d, want 5", cli.Clean.Keep)
	}
	cli, _ = parseCLI(t, "clean", "--all")
	if !cli.Clean.All {
		t.Error("All not set")
	}
}

func TestCLI_OtherCommands(t *testing.T) {
	for _, args := range [][]string{{"list"}, {"setup", "--force"}, {"version"}} {
		if _, ctx := parseCLI(t, args...); ctx == nil {
			t.Errorf("parse failed for %v", args)
		}
	}
}

func TestColorEnabled(t *testing.T) {
	app := &appEnv{cfg: config.New(), log: logging.New()}

	app.cfg.Output.Color = "always"
	if !app.colorEnabled(os.Stdout) {
		t.Error("always should enable color")
	}
	app.cfg.Output.Color = "never"
	if app.colorEnabled(os.Stdout) {
		t.Error("never should disable color")
	}
}

func TestCommandLine(t *testing.T) {
	got := commandLine("ansible-playbook", []string{"site.yml", "--check"})
	if got != "ansible-playbook site.yml --check" {
		t.Errorf("commandLine = %q", got)
	}
}

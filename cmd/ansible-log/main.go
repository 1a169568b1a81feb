// Package main is the entry point for the ansible-log CLI.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/patrickjeremic/ansible-log/internal/config"
	"github.com/patrickjeremic/ansible-log/internal/logging"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func init() {
	// Load .env for ANSIBLE_LOG_DIR / ANSIBLE_LOG_KEEP overrides.
	_ = godotenv.Load()
}

// appEnv carries the loaded configuration into command Run methods.
type appEnv struct {
	cfg      *config.Config
	log      *logging.Logger
	exitCode int // propagated from the wrapped command
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("ansible-log"),
		kong.Description("Wrap Ansible runs, capture their output, and review what changed."),
		kong.UsageOnError(),
		kongVars(),
	)

	app, err := newApp(cli.Config, cli.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := ctx.Run(app); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(app.exitCode)
}

// newApp loads configuration and builds the shared command environment.
func newApp(configPath string, debug bool) (*appEnv, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log := logging.New()
	if debug {
		log.SetLevel(logging.LevelDebug)
	}
	return &appEnv{cfg: cfg, log: log}, nil
}

// Run shows version information.
func (c *VersionCmd) Run(app *appEnv) error {
	fmt.Printf("ansible-log version %s (commit: %s, built: %s)\n", version, commit, buildTime)
	return nil
}

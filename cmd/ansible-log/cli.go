// Package main defines the CLI structure using kong.
package main

import "github.com/alecthomas/kong"

// CLI defines the command-line interface.
type CLI struct {
	Config string `help:"Config file path" type:"path"`
	Debug  bool   `help:"Enable debug logging"`

	Run     RunCmd     `cmd:"" help:"Run ansible and capture its output"`
	Log     LogCmd     `cmd:"" help:"Re-render a stored run"`
	List    ListCmd    `cmd:"" help:"List stored runs"`
	Clean   CleanCmd   `cmd:"" help:"Delete stored runs beyond the retention count"`
	Setup   SetupCmd   `cmd:"" help:"Write starter configuration files"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// RunCmd executes the wrapped command while capturing a transcript.
type RunCmd struct {
	Playbook bool     `short:"p" help:"Invoke ansible-playbook instead of ansible"`
	DiffOnly bool     `short:"d" help:"Show only changed or failed tasks while running"`
	Args     []string `arg:"" passthrough:"" help:"Arguments for the wrapped command"`
}

// LogCmd re-renders a stored run.
type LogCmd struct {
	Index   int  `arg:"" optional:"" default:"0" help:"Run index (0 = most recent)"`
	Full    bool `help:"Show every line instead of the filtered view"`
	NoColor bool `help:"Disable color output"`
	NoPager bool `help:"Disable the interactive pager"`
	Follow  bool `short:"f" help:"Re-render whenever the record grows"`
}

// ListCmd enumerates stored runs.
type ListCmd struct{}

// CleanCmd removes stored runs.
type CleanCmd struct {
	All  bool `help:"Delete every stored run"`
	Keep int  `help:"Override the configured retention count"`
}

// SetupCmd writes the starter configuration files.
type SetupCmd struct {
	Force bool `help:"Overwrite existing files"`
}

// VersionCmd shows version information.
type VersionCmd struct{}

// kongVars returns variables for kong (version info).
func kongVars() kong.Vars {
	return kong.Vars{
		"version": version,
	}
}

package main

import (
	"os"
	"strings"

	"github.com/patrickjeremic/ansible-log/internal/render"
	"github.com/patrickjeremic/ansible-log/internal/rules"
	"github.com/patrickjeremic/ansible-log/internal/runstore"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// store builds the run store from the loaded configuration.
func (a *appEnv) store() (*runstore.Store, error) {
	return runstore.New(a.cfg.LogDir(), a.cfg.Keep(), a.log)
}

// colorEnabled resolves the configured color mode against the sink.
func (a *appEnv) colorEnabled(f *os.File) bool {
	switch a.cfg.Output.Color {
	case "always":
		return true
	case "never":
		return false
	}
	return isTerminal(f)
}

// severityFilter resolves the warning filter from config and rules file.
// A broken rules file degrades to the defaults rather than blocking review.
func (a *appEnv) severityFilter() render.SeverityFilter {
	f, err := rules.FromConfig(a.cfg)
	if err != nil {
		a.log.Warn("ignoring rules file", map[string]interface{}{"error": err})
	}
	return f
}

// commandLine renders the wrapped invocation for record headers.
func commandLine(bin string, args []string) string {
	if len(args) == 0 {
		return bin
	}
	return bin + " " + strings.Join(args, " ")
}

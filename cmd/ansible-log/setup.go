package main

import (
	"os"

	"github.com/patrickjeremic/ansible-log/internal/setup"
)

// Run launches the setup wizard. Without a terminal it writes defaults.
func (c *SetupCmd) Run(app *appEnv) error {
	return setup.Run(setup.Options{
		Force:       c.Force,
		Interactive: isTerminal(os.Stdin) && isTerminal(os.Stdout),
	})
}

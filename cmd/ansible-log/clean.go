package main

import (
	"fmt"

	"github.com/patrickjeremic/ansible-log/internal/runstore"
)

// Run deletes stored runs: everything with --all, otherwise those beyond
// the retention count.
func (c *CleanCmd) Run(app *appEnv) error {
	keep := app.cfg.Keep()
	if c.Keep > 0 {
		keep = c.Keep
	}

	store, err := runstore.New(app.cfg.LogDir(), keep, app.log)
	if err != nil {
		return err
	}

	var removed int
	if c.All {
		removed, err = store.Purge()
	} else {
		removed, err = store.Trim()
	}
	if err != nil {
		return err
	}

	fmt.Printf("removed %d run(s)\n", removed)
	return nil
}

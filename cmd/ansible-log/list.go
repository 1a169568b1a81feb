package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/patrickjeremic/ansible-log/internal/runstore"
)

var (
	listDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")) // Gray - indices, timestamps

	listOkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")) // Green

	listFailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")) // Red
)

// Run prints the stored runs, most recent first.
func (c *ListCmd) Run(app *appEnv) error {
	store, err := app.store()
	if err != nil {
		return err
	}
	records, err := store.List()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no stored runs")
		return nil
	}

	color := app.colorEnabled(os.Stdout)
	for i, rec := range records {
		idx := fmt.Sprintf("%3d", i)
		when := rec.Meta.Started.Format("2006-01-02 15:04:05")
		status := fmt.Sprintf("%-8s", statusLabel(rec.Meta))
		if color {
			idx = listDimStyle.Render(idx)
			when = listDimStyle.Render(when)
			switch rec.Meta.Status {
			case runstore.StatusOK:
				status = listOkStyle.Render(status)
			case runstore.StatusFailed:
				status = listFailStyle.Render(status)
			}
		}
		fmt.Printf("%s  %s  %s  %s\n", idx, when, status, rec.Meta.Command)
	}
	return nil
}

// statusLabel renders the run outcome for the listing.
func statusLabel(meta runstore.Meta) string {
	switch meta.Status {
	case runstore.StatusOK:
		return "ok"
	case runstore.StatusFailed:
		return fmt.Sprintf("exit %d", meta.ExitCode)
	default:
		return "partial"
	}
}

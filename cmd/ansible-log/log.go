package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/patrickjeremic/ansible-log/internal/render"
)

// Run re-renders a stored run, filtered by default.
func (c *LogCmd) Run(app *appEnv) error {
	store, err := app.store()
	if err != nil {
		return err
	}
	rec, err := store.Get(c.Index)
	if err != nil {
		return err
	}

	mode := render.ModeFilteredDiff
	if c.Full {
		mode = render.ModeFull
	}
	interactive := !c.NoPager && isTerminal(os.Stdout)
	color := !c.NoColor && (interactive || app.colorEnabled(os.Stdout))
	dec := render.NewDecorator(color)
	filter := render.WithSeverityFilter(app.severityFilter())

	if !interactive {
		body, _, err := store.OpenBody(c.Index)
		if err != nil {
			return err
		}
		defer body.Close()
		r := render.NewRenderer(render.NewWriterSink(os.Stdout), mode, dec, filter)
		return r.Render(body)
	}

	renderToString := func() (string, error) {
		body, _, err := store.OpenBody(c.Index)
		if err != nil {
			return "", err
		}
		defer body.Close()
		var buf strings.Builder
		r := render.NewRenderer(render.NewWriterSink(&buf), mode, dec, filter)
		if err := r.Render(body); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	title := fmt.Sprintf("Run %d · %s · %s",
		c.Index, rec.Meta.Command, rec.Meta.Started.Format("2006-01-02 15:04:05"))
	p := render.NewPager(title)

	if c.Follow {
		return p.RunLive(rec.Path, renderToString)
	}
	content, err := renderToString()
	if err != nil {
		return err
	}
	return p.Run(content)
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/patrickjeremic/ansible-log/internal/render"
	"github.com/patrickjeremic/ansible-log/internal/runner"
)

// rendererSink feeds captured lines into a renderer so it can act as one
// of the runner's fan-out consumers.
type rendererSink struct {
	r *render.Renderer
}

func (s rendererSink) WriteLine(line string) error {
	return s.r.Line(line)
}

// Run executes the wrapped Ansible command, rendering live and capturing
// the raw transcript. The process exit code mirrors the wrapped command.
func (c *RunCmd) Run(app *appEnv) error {
	bin := "ansible"
	if c.Playbook {
		bin = "ansible-playbook"
	}

	store, err := app.store()
	if err != nil {
		return err
	}
	w, err := store.Create(commandLine(bin, c.Args))
	if err != nil {
		return err
	}

	mode := render.ModeFull
	if c.DiffOnly {
		mode = render.ModeFilteredDiff
	}
	dec := render.NewDecorator(app.colorEnabled(os.Stdout))
	r := render.NewRenderer(render.NewWriterSink(os.Stdout), mode, dec,
		render.WithSeverityFilter(app.severityFilter()))

	// Ctrl+C ends the child; whatever was captured stays reviewable.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code, runErr := runner.New(app.log).Run(ctx, bin, c.Args, w, rendererSink{r})
	if flushErr := r.Flush(); flushErr != nil && runErr == nil {
		runErr = flushErr
	}

	if code < 0 {
		code = 1
	}
	if err := w.Close(code); err != nil {
		app.log.Warn("closing record", map[string]interface{}{"error": err})
	}
	if _, err := store.Trim(); err != nil {
		app.log.Warn("trimming records", map[string]interface{}{"error": err})
	}

	if runErr != nil {
		return runErr
	}
	app.exitCode = code
	return nil
}

// Package runner executes the wrapped Ansible command and fans its merged
// output out to capture and display consumers.
package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/patrickjeremic/ansible-log/internal/logging"
)

// LineSink consumes one stream of lines.
type LineSink interface {
	WriteLine(line string) error
}

// Runner wraps one command execution.
type Runner struct {
	log *logging.Logger
}

// New creates a runner.
func New(log *logging.Logger) *Runner {
	if log == nil {
		log = logging.New()
	}
	return &Runner{log: log.WithComponent("runner")}
}

// Run executes name with args, merging stdout and stderr into one ordered
// line stream delivered to every sink exactly once. Each sink drains its
// own unbounded queue, so a slow display can never stall or drop the
// capture path. Returns the child's exit code; a non-zero exit is not an
// error here.
func (r *Runner) Run(ctx context.Context, name string, args []string, sinks ...LineSink) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	// One pipe for both streams keeps the child's interleaving intact.
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return -1, fmt.Errorf("starting %s: %w", name, err)
	}
	r.log.Debug("command started", map[string]interface{}{
		"command": name + " " + strings.Join(args, " "),
		"pid":     cmd.Process.Pid,
	})

	queues := make([]*lineQueue, len(sinks))
	drainers := make([]*drainer, len(sinks))
	for i, sink := range sinks {
		queues[i] = newLineQueue()
		drainers[i] = startDrainer(queues[i], sink)
	}

	scanner := bufio.NewScanner(pr)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var readErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		for scanner.Scan() {
			line := scanner.Text()
			for _, q := range queues {
				q.push(line)
			}
		}
		readErr = scanner.Err()
		for _, q := range queues {
			q.close()
		}
	}()

	waitErr := cmd.Wait()
	pw.Close() // release the reader
	<-done
	pr.Close()

	for _, d := range drainers {
		if err := d.wait(); err != nil {
			return -1, err
		}
	}
	if readErr != nil {
		return -1, fmt.Errorf("reading command output: %w", readErr)
	}

	if waitErr != nil {
		// A killed child also surfaces as an ExitError, so cancellation is
		// checked first.
		if ctx.Err() != nil {
			return -1, ctx.Err()
		}
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			code := exitErr.ExitCode()
			r.log.Debug("command exited", map[string]interface{}{"exit": code})
			return code, nil
		}
		return -1, fmt.Errorf("running %s: %w", name, waitErr)
	}
	return 0, nil
}

// drainer pumps one queue into one sink on its own goroutine.
type drainer struct {
	errCh chan error
}

func startDrainer(q *lineQueue, sink LineSink) *drainer {
	d := &drainer{errCh: make(chan error, 1)}
	go func() {
		for {
			line, ok := q.pop()
			if !ok {
				d.errCh <- nil
				return
			}
			if err := sink.WriteLine(line); err != nil {
				// Keep draining so the producer is never blocked on a
				// dead consumer; report the first failure.
				for {
					if _, ok := q.pop(); !ok {
						break
					}
				}
				d.errCh <- err
				return
			}
		}
	}()
	return d
}

func (d *drainer) wait() error {
	return <-d.errCh
}

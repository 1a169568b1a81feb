package runner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// memSink collects lines; safe for the drainer goroutine plus the test.
type memSink struct {
	mu    sync.Mutex
	lines []string
	delay time.Duration
	fail  error
}

func (s *memSink) WriteLine(line string) error {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.lines = append(s.lines, line)
	return nil
}

func (s *memSink) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

func TestRunner_DeliversAllLinesToEverySink(t *testing.T) {
	r := New(nil)
	a := &memSink{}
	b := &memSink{}

	code, err := r.Run(context.Background(), "sh",
		[]string{"-c", "echo one; echo two; echo three"}, a, b)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}

	want := []string{"one", "two", "three"}
	for name, sink := range map[string]*memSink{"a": a, "b": b} {
		got := sink.snapshot()
		if len(got) != len(want) {
			t.Fatalf("sink %s got %v, want %v", name, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("sink %s line %d = %q, want %q", name, i, got[i], want[i])
			}
		}
	}
}

func TestRunner_MergesStderr(t *testing.T) {
	r := New(nil)
	sink := &memSink{}

	code, err := r.Run(context.Background(), "sh",
		[]string{"-c", "echo to-stdout; echo to-stderr 1>&2"}, sink)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}

	got := sink.snapshot()
	found := map[string]bool{}
	for _, line := range got {
		found[line] = true
	}
	if !found["to-stdout"] || !found["to-stderr"] {
		t.Errorf("merged stream missing a line: %v", got)
	}
}

func TestRunner_NonZeroExitIsNotAnError(t *testing.T) {
	r := New(nil)
	sink := &memSink{}

	code, err := r.Run(context.Background(), "sh", []string{"-c", "exit 3"}, sink)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
}

func TestRunner_MissingBinary(t *testing.T) {
	r := New(nil)

	code, err := r.Run(context.Background(), "definitely-not-a-command-xyz", nil, &memSink{})
	if err == nil {
		t.Fatal("expected start error for missing binary")
	}
	if code != -1 {
		t.Errorf("exit code = %d, want -1", code)
	}
}

// A slow sink must not hold back the others: the fast sink sees every line
// even while the slow one is still draining its queue.
func TestRunner_SlowSinkDoesNotStallFastSink(t *testing.T) {
	r := New(nil)
	fast := &memSink{}
	slow := &memSink{delay: 5 * time.Millisecond}

	const n = 50
	code, err := r.Run(context.Background(), "sh",
		[]string{"-c", "i=0; while [ $i -lt 50 ]; do echo line-$i; i=$((i+1)); done"},
		fast, slow)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}

	// Run waits for every drainer, so by now both must be complete.
	if got := len(fast.snapshot()); got != n {
		t.Errorf("fast sink got %d lines, want %d", got, n)
	}
	if got := len(slow.snapshot()); got != n {
		t.Errorf("slow sink got %d lines, want %d", got, n)
	}
}

func TestRunner_SinkErrorReported(t *testing.T) {
	r := New(nil)
	broken := &memSink{fail: errors.New("display gone")}
	healthy := &memSink{}

	_, err := r.Run(context.Background(), "sh",
		[]string{"-c", "echo one; echo two"}, broken, healthy)
	if err == nil {
		t.Fatal("expected the sink failure to be reported")
	}
	// The healthy sink still received the full stream.
	if got := len(healthy.snapshot()); got != 2 {
		t.Errorf("healthy sink got %d lines, want 2", got)
	}
}

func TestRunner_ContextCancel(t *testing.T) {
	r := New(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := r.Run(ctx, "sh", []string{"-c", "sleep 10"}, &memSink{})
	if err == nil {
		t.Fatal("expected error after context timeout")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
}

func TestLineQueue_OrderAndClose(t *testing.T) {
	q := newLineQueue()
	q.push("a")
	q.push("b")
	q.close()

	if line, ok := q.pop(); !ok || line != "a" {
		t.Fatalf("pop = %q, %v", line, ok)
	}
	if line, ok := q.pop(); !ok || line != "b" {
		t.Fatalf("pop = %q, %v", line, ok)
	}
	if _, ok := q.pop(); ok {
		t.Fatal("pop after close and drain should report done")
	}
}

func TestLineQueue_PopBlocksUntilPush(t *testing.T) {
	q := newLineQueue()
	got := make(chan string, 1)
	go func() {
		line, _ := q.pop()
		got <- line
	}()

	time.Sleep(10 * time.Millisecond)
	q.push("late")

	select {
	case line := <-got:
		if line != "late" {
			t.Errorf("pop = %q, want %q", line, "late")
		}
	case <-time.After(time.Second):
		t.Fatal("pop never woke up")
	}
}

package render

import "io"

// Mode selects how much of the input the renderer shows.
type Mode int

const (
	// ModeFull shows every line, decorated per category, with no buffering.
	ModeFull Mode = iota
	// ModeFilteredDiff shows only changed or failed task blocks, their play
	// header context, and the recap section.
	ModeFilteredDiff
)

// Renderer drives classification and accumulation over a line sequence and
// writes display lines to a sink. One instance serves one pass, live or
// stored; the same input produces the same bytes either way.
type Renderer struct {
	sink   Sink
	mode   Mode
	dec    *Decorator
	filter SeverityFilter

	acc     Accumulator
	tracker ContextTracker

	structured bool // a play or task header has been seen
	inRecap    bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSeverityFilter overrides the pre-play warning filter.
func WithSeverityFilter(f SeverityFilter) Option {
	return func(r *Renderer) {
		r.filter = f
	}
}

// NewRenderer creates a renderer writing to sink.
func NewRenderer(sink Sink, mode Mode, dec *Decorator, opts ...Option) *Renderer {
	r := &Renderer{
		sink:   sink,
		mode:   mode,
		dec:    dec,
		filter: DefaultSeverityFilter(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render consumes src until io.EOF, then flushes. Sink write errors abort
// the pass and propagate; input is never an error.
func (r *Renderer) Render(src LineSource) error {
	for {
		line, err := src.NextLine()
		if err != nil {
			if err == io.EOF {
				return r.Flush()
			}
			return err
		}
		if err := r.Line(line); err != nil {
			return err
		}
	}
}

// Line processes one raw input line.
func (r *Renderer) Line(raw string) error {
	cat := Classify(raw)

	if r.mode == ModeFull {
		return r.emit(cat, raw)
	}

	switch cat {
	case CategoryPlayHeader:
		if err := r.finishBlock(); err != nil {
			return err
		}
		r.structured = true
		r.tracker.SetPlay(raw)
		return nil

	case CategoryTaskHeader:
		if err := r.finishBlock(); err != nil {
			return err
		}
		r.structured = true
		r.acc.Start(raw)
		return nil

	case CategoryRecapHeader:
		if err := r.finishBlock(); err != nil {
			return err
		}
		r.tracker.Reset()
		r.inRecap = true
		return r.emit(cat, raw)
	}

	// The recap section is never filtered.
	if r.inRecap {
		return r.emit(cat, raw)
	}

	if r.acc.Open() {
		r.acc.Add(raw, cat)
		return nil
	}

	// Outside any block: keep warnings that look like real problems, drop
	// the rest. Before the first structural header that is the documented
	// preamble asymmetry; afterwards the same rule suppresses stray noise
	// between tasks.
	if cat == CategoryWarning && r.filter.Keep(Strip(raw)) {
		return r.emit(cat, raw)
	}
	return nil
}

// Flush resolves any open block at end of input. Callers must invoke it
// (Render does) or a trailing task would be lost.
func (r *Renderer) Flush() error {
	return r.finishBlock()
}

// finishBlock resolves the open block, emitting it whole when interesting
// and dropping it whole otherwise.
func (r *Renderer) finishBlock() error {
	if !r.acc.Open() {
		return nil
	}
	res := r.acc.Finish()
	if !res.Interesting() {
		return nil
	}
	if err := r.tracker.EnsureShown(r.emit); err != nil {
		return err
	}
	for _, bl := range res.Lines {
		if err := r.emit(bl.cat, bl.raw); err != nil {
			return err
		}
	}
	// Separate blocks visually, unless the captured output already did.
	if n := len(res.Lines); n > 0 && Strip(res.Lines[n-1].raw) != "" {
		return r.emit(CategoryPlain, "")
	}
	return nil
}

// emit decorates and writes one line.
func (r *Renderer) emit(cat Category, raw string) error {
	return r.sink.WriteLine(r.dec.Apply(cat, raw))
}

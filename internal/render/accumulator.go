package render

// bufLine is one buffered line with its classification, kept so emission
// does not need to re-classify.
type bufLine struct {
	raw string
	cat Category
}

// BlockResult is the outcome of one resolved task block. Changed and Failed
// are independent signals; a multi-host task can carry both.
type BlockResult struct {
	Changed  bool
	Failed   bool
	Resolved bool // at least one per-host status line was seen
	Lines    []bufLine
}

// Interesting reports whether the block should appear in filtered output.
// Unresolved blocks are malformed input and are never shown.
func (b BlockResult) Interesting() bool {
	return b.Resolved && (b.Changed || b.Failed)
}

// Accumulator buffers the lines of the task block currently being read and
// derives its verdict. One instance serves one render pass.
type Accumulator struct {
	open    bool
	lines   []bufLine
	changed bool
	failed  bool

	resolved bool

	// Diff tracking. Content lines are only retained while a diff block is
	// logically open, so stray +/- lines cannot leak into the wrong task.
	inDiff    bool
	sawBefore bool
	sawAfter  bool
}

// Open reports whether a block is currently being accumulated.
func (a *Accumulator) Open() bool {
	return a.open
}

// Start begins a new block at a task header, dropping any unresolved
// predecessor. That only happens on truncated input.
func (a *Accumulator) Start(header string) {
	*a = Accumulator{open: true}
	a.lines = append(a.lines, bufLine{raw: header, cat: CategoryTaskHeader})
}

// Add consumes one non-structural line for the open block.
func (a *Accumulator) Add(line string, cat Category) {
	if !a.open {
		return
	}

	switch {
	case cat.IsStatus():
		a.resolved = true
		a.inDiff = false
		switch cat {
		case CategoryStatusChanged:
			a.changed = true
		case CategoryStatusFailed:
			a.failed = true
		}
		a.lines = append(a.lines, bufLine{raw: line, cat: cat})

	case cat == CategoryDiffMarker:
		s := Strip(line)
		switch {
		case isDiffOpen(s):
			a.inDiff = true
			a.sawBefore = true
		case isDiffClose(s):
			a.inDiff = true
			a.sawAfter = true
		default: // @@ hunk header, only meaningful inside a diff
			if !a.inDiff {
				return
			}
		}
		a.lines = append(a.lines, bufLine{raw: line, cat: cat})

	case cat == CategoryDiffContent:
		if !a.inDiff {
			return
		}
		a.lines = append(a.lines, bufLine{raw: line, cat: cat})

	default:
		a.lines = append(a.lines, bufLine{raw: line, cat: cat})
	}
}

// Finish closes the block and returns its verdict and buffered lines. The
// accumulator is reset and ready for the next block.
func (a *Accumulator) Finish() BlockResult {
	res := BlockResult{
		Changed:  a.changed || (a.sawBefore && a.sawAfter),
		Failed:   a.failed,
		Resolved: a.resolved,
		Lines:    a.lines,
	}
	*a = Accumulator{}
	return res
}

package render

// ContextTracker remembers the most recent play header that has not been
// displayed yet, so filtered output can show each play exactly once and
// only when one of its tasks is shown.
type ContextTracker struct {
	pending string
	has     bool
	shown   bool
}

// SetPlay records a new pending header and clears the shown flag.
func (t *ContextTracker) SetPlay(line string) {
	t.pending = line
	t.has = true
	t.shown = false
}

// Reset clears any pending header. Called at recap start.
func (t *ContextTracker) Reset() {
	*t = ContextTracker{}
}

// EnsureShown writes the pending header plus one blank line through emit,
// once. Subsequent calls for the same play are no-ops.
func (t *ContextTracker) EnsureShown(emit func(cat Category, line string) error) error {
	if !t.has || t.shown {
		return nil
	}
	if err := emit(CategoryPlayHeader, t.pending); err != nil {
		return err
	}
	if err := emit(CategoryPlain, ""); err != nil {
		return err
	}
	t.shown = true
	return nil
}

package render

import "regexp"

// SGR color/style escape sequences as emitted by Ansible and lipgloss.
var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Strip removes display decoration from a line, leaving semantic content.
// It is idempotent and is exactly the operation Classify applies before
// pattern matching.
func Strip(line string) string {
	return ansiRe.ReplaceAllString(line, "")
}

// Decorator maps classified lines to display form. With color disabled it
// only strips, which makes output safe for files and pipes.
type Decorator struct {
	color bool
}

// NewDecorator creates a decorator. Pass color=false for non-interactive
// sinks.
func NewDecorator(color bool) *Decorator {
	return &Decorator{color: color}
}

// Apply renders one line for display. Colored output replaces any incoming
// decoration with the category's fixed style; plain lines keep their
// original bytes so a full render stays verbatim.
func (d *Decorator) Apply(cat Category, line string) string {
	if !d.color {
		return Strip(line)
	}
	stripped := Strip(line)
	if st := styleFor(cat, stripped); st != nil {
		return st.Render(stripped)
	}
	return line
}

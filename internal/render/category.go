// Package render implements the streaming classification and filtering
// engine for Ansible run output, plus the terminal presentation layer.
package render

import "regexp"

// Category identifies the structural role of a single output line.
type Category int

const (
	CategoryPlain Category = iota
	CategoryPlayHeader
	CategoryTaskHeader
	CategoryRecapHeader
	CategoryRecapHostLine
	CategoryStatusOk
	CategoryStatusChanged
	CategoryStatusSkipped
	CategoryStatusFailed
	CategoryDiffMarker
	CategoryDiffContent
	CategoryWarning
)

// String returns a short name for the category.
func (c Category) String() string {
	switch c {
	case CategoryPlayHeader:
		return "play"
	case CategoryTaskHeader:
		return "task"
	case CategoryRecapHeader:
		return "recap"
	case CategoryRecapHostLine:
		return "recap-host"
	case CategoryStatusOk:
		return "ok"
	case CategoryStatusChanged:
		return "changed"
	case CategoryStatusSkipped:
		return "skipped"
	case CategoryStatusFailed:
		return "failed"
	case CategoryDiffMarker:
		return "diff-marker"
	case CategoryDiffContent:
		return "diff-content"
	case CategoryWarning:
		return "warning"
	default:
		return "plain"
	}
}

// IsStatus reports whether the category is a per-host outcome line that
// resolves a task block.
func (c Category) IsStatus() bool {
	switch c {
	case CategoryStatusOk, CategoryStatusChanged, CategoryStatusSkipped, CategoryStatusFailed:
		return true
	}
	return false
}

// IsStructural reports whether the category terminates an open task block.
func (c Category) IsStructural() bool {
	switch c {
	case CategoryPlayHeader, CategoryTaskHeader, CategoryRecapHeader:
		return true
	}
	return false
}

var (
	recapHeaderRe = regexp.MustCompile(`^PLAY RECAP`)
	playHeaderRe  = regexp.MustCompile(`^PLAY \[.*\]`)
	taskHeaderRe  = regexp.MustCompile(`^TASK \[.*\]`)
	recapHostRe   = regexp.MustCompile(`^\S+\s*:\s+ok=\d+`)
	statusRe      = regexp.MustCompile(`^(ok|changed|skipped|failed|fatal|unreachable):`)
	hunkHeaderRe  = regexp.MustCompile(`^@@.*@@`)
	warningRe     = regexp.MustCompile(`^(ERROR!|FATAL:|WARNING:|\[WARNING\]:)`)
)

// Classify maps one line to its category. It is pure and total: anything
// unrecognized is CategoryPlain. Matching runs against the ANSI-stripped
// content so embedded color codes never defeat a pattern.
func Classify(line string) Category {
	s := Strip(line)

	switch {
	case recapHeaderRe.MatchString(s):
		return CategoryRecapHeader
	case playHeaderRe.MatchString(s):
		return CategoryPlayHeader
	case taskHeaderRe.MatchString(s):
		return CategoryTaskHeader
	case recapHostRe.MatchString(s):
		return CategoryRecapHostLine
	}

	if m := statusRe.FindStringSubmatch(s); m != nil {
		switch m[1] {
		case "ok":
			return CategoryStatusOk
		case "changed":
			return CategoryStatusChanged
		case "skipped":
			return CategoryStatusSkipped
		default: // failed, fatal, unreachable
			return CategoryStatusFailed
		}
	}

	switch {
	case isDiffOpen(s), isDiffClose(s), hunkHeaderRe.MatchString(s):
		return CategoryDiffMarker
	case len(s) > 0 && (s[0] == '+' || s[0] == '-'):
		return CategoryDiffContent
	case warningRe.MatchString(s):
		return CategoryWarning
	}

	return CategoryPlain
}

// isDiffOpen matches the "before" side marker of an Ansible diff block.
func isDiffOpen(s string) bool {
	return len(s) >= 10 && s[:10] == "--- before"
}

// isDiffClose matches the "after" side marker of an Ansible diff block.
func isDiffClose(s string) bool {
	return len(s) >= 9 && s[:9] == "+++ after"
}

package render

import (
	"bufio"
	"io"
	"strings"
)

// LineSource is an ordered, possibly unbounded producer of text lines.
// NextLine returns io.EOF when the source is exhausted.
type LineSource interface {
	NextLine() (string, error)
}

// Sink is an ordered consumer of rendered lines.
type Sink interface {
	WriteLine(line string) error
}

// ReaderSource adapts an io.Reader into a LineSource. Lines are returned
// without their trailing newline. No length limit is imposed.
type ReaderSource struct {
	r *bufio.Reader
}

// NewReaderSource wraps r.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: bufio.NewReader(r)}
}

// NextLine returns the next line or io.EOF.
func (s *ReaderSource) NextLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			// Final line without trailing newline.
			return strings.TrimSuffix(line, "\r"), nil
		}
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// SliceSource serves lines from memory. Used in tests and for re-rendering
// already captured output.
type SliceSource struct {
	lines []string
	pos   int
}

// NewSliceSource creates a source over the given lines.
func NewSliceSource(lines []string) *SliceSource {
	return &SliceSource{lines: lines}
}

// NextLine returns the next line or io.EOF.
func (s *SliceSource) NextLine() (string, error) {
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

// WriterSink adapts an io.Writer into a Sink, appending a newline per line.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink wraps w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// WriteLine writes one line followed by a newline.
func (s *WriterSink) WriteLine(line string) error {
	_, err := io.WriteString(s.w, line+"\n")
	return err
}

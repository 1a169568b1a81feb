package runstore

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// BodyReader serves the body region of a record as a line source: the
// header block is skipped and the end sentinel terminates the stream. It
// implements the render engine's LineSource.
type BodyReader struct {
	f    *os.File
	r    *bufio.Reader
	done bool
}

// OpenBody opens the record at path positioned at the first body line.
func OpenBody(path string) (*BodyReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening run record: %w", err)
	}

	br := &BodyReader{f: f, r: bufio.NewReader(f)}
	// Skip the header block. A file without the start sentinel is not a
	// record we wrote.
	for {
		line, err := br.readLine()
		if err != nil {
			f.Close()
			if err == io.EOF {
				return nil, fmt.Errorf("%s: not a run record (missing %q)", path, BodyStart)
			}
			return nil, err
		}
		if line == BodyStart {
			return br, nil
		}
	}
}

// OpenBody opens the body of the record at the given index.
func (s *Store) OpenBody(index int) (*BodyReader, Record, error) {
	rec, err := s.Get(index)
	if err != nil {
		return nil, Record{}, err
	}
	br, err := OpenBody(rec.Path)
	if err != nil {
		return nil, Record{}, err
	}
	return br, rec, nil
}

// NextLine returns the next body line, or io.EOF at the end sentinel or end
// of file.
func (b *BodyReader) NextLine() (string, error) {
	if b.done {
		return "", io.EOF
	}
	line, err := b.readLine()
	if err != nil {
		b.done = true
		return "", err
	}
	if isEndSentinel(line) {
		b.done = true
		return "", io.EOF
	}
	return line, nil
}

// Close releases the underlying file.
func (b *BodyReader) Close() error {
	return b.f.Close()
}

func (b *BodyReader) readLine() (string, error) {
	line, err := b.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSuffix(line, "\r"), nil
		}
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// isEndSentinel matches both the success and failure end markers.
func isEndSentinel(line string) bool {
	return line == BodyEndOK || strings.HasPrefix(line, "=== RUN FAILED (exit ")
}

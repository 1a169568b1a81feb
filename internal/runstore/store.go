// Package runstore persists captured run transcripts and serves them back.
package runstore

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickjeremic/ansible-log/internal/logging"
)

// Sentinel lines bounding the captured body inside a record file.
const (
	BodyStart    = "=== COMMAND OUTPUT ==="
	BodyEndOK    = "=== RUN COMPLETED SUCCESSFULLY ==="
	bodyEndFail  = "=== RUN FAILED (exit %d) ==="
	recordPrefix = "run-"
	recordSuffix = ".log"
)

// Status values for a stored run.
const (
	StatusOK      = "ok"
	StatusFailed  = "failed"
	StatusPartial = "partial" // no end sentinel: interrupted or still running
)

// Meta is the header metadata of one run record.
type Meta struct {
	ID       string
	Command  string
	Dir      string
	User     string
	Host     string
	Started  time.Time
	Status   string
	ExitCode int
}

// Record is one stored run.
type Record struct {
	Path string
	Meta Meta
}

// Store manages run record files in one directory.
type Store struct {
	dir  string
	keep int
	log  *logging.Logger
}

// New creates a store rooted at dir with the given retention count.
func New(dir string, keep int, log *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	if log == nil {
		log = logging.New()
	}
	return &Store{dir: dir, keep: keep, log: log.WithComponent("runstore")}, nil
}

// Dir returns the storage directory.
func (s *Store) Dir() string {
	return s.dir
}

// Create opens a new record for the given command line and returns a writer
// for its body. The header block and the body start sentinel are written
// immediately so a crash still leaves a parseable file.
func (s *Store) Create(command string) (*Writer, error) {
	started := time.Now()
	name := fmt.Sprintf("%s%s-%s%s",
		recordPrefix,
		started.Format("20060102-150405"),
		uuid.NewString()[:8],
		recordSuffix,
	)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("creating run record: %w", err)
	}

	meta := Meta{
		ID:      uuid.NewString(),
		Command: command,
		Started: started,
		Status:  StatusPartial,
	}
	meta.Dir, _ = os.Getwd()
	if u, err := user.Current(); err == nil {
		meta.User = u.Username
	}
	meta.Host, _ = os.Hostname()

	w := &Writer{f: f, path: path, meta: meta, log: s.log}
	if err := w.writeHeader(); err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}
	s.log.Debug("record created", map[string]interface{}{"path": path})
	return w, nil
}

// List returns all records, newest first. Index 0 is the most recent run.
func (s *Store) List() ([]Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading log directory: %w", err)
	}

	var records []Record
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, recordPrefix) || !strings.HasSuffix(name, recordSuffix) {
			continue
		}
		path := filepath.Join(s.dir, name)
		meta, err := readMeta(path)
		if err != nil {
			s.log.Warn("skipping unreadable record", map[string]interface{}{"path": path, "error": err})
			continue
		}
		records = append(records, Record{Path: path, Meta: meta})
	}

	// Timestamps are zero-padded in the filename, so the name orders runs.
	sort.Slice(records, func(i, j int) bool {
		return filepath.Base(records[i].Path) > filepath.Base(records[j].Path)
	})
	return records, nil
}

// Get returns the record at the given reverse-chronological index.
func (s *Store) Get(index int) (Record, error) {
	records, err := s.List()
	if err != nil {
		return Record{}, err
	}
	if index < 0 || index >= len(records) {
		return Record{}, fmt.Errorf("no run at index %d (%d stored)", index, len(records))
	}
	return records[index], nil
}

// Trim deletes the oldest records beyond the retention count and returns
// how many were removed.
func (s *Store) Trim() (int, error) {
	records, err := s.List()
	if err != nil {
		return 0, err
	}
	if s.keep <= 0 || len(records) <= s.keep {
		return 0, nil
	}
	removed := 0
	for _, rec := range records[s.keep:] {
		if err := os.Remove(rec.Path); err != nil {
			return removed, fmt.Errorf("removing %s: %w", rec.Path, err)
		}
		removed++
	}
	s.log.Debug("trimmed records", map[string]interface{}{"removed": removed, "keep": s.keep})
	return removed, nil
}

// Purge deletes every stored record and returns how many were removed.
func (s *Store) Purge() (int, error) {
	records, err := s.List()
	if err != nil {
		return 0, err
	}
	for _, rec := range records {
		if err := os.Remove(rec.Path); err != nil {
			return 0, fmt.Errorf("removing %s: %w", rec.Path, err)
		}
	}
	return len(records), nil
}

// readMeta parses the header block and the end sentinel of a record file.
func readMeta(path string) (Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return Meta{}, err
	}
	defer f.Close()

	meta := Meta{Status: StatusPartial}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == BodyStart {
			break
		}
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		switch key {
		case "ID":
			meta.ID = value
		case "Command":
			meta.Command = value
		case "Dir":
			meta.Dir = value
		case "User":
			meta.User = value
		case "Host":
			meta.Host = value
		case "Started":
			if t, err := time.Parse(time.RFC3339, value); err == nil {
				meta.Started = t
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Meta{}, err
	}

	status, code, err := readOutcome(f)
	if err != nil {
		return Meta{}, err
	}
	meta.Status = status
	meta.ExitCode = code
	return meta, nil
}

// readOutcome inspects the tail of the file for the end sentinel. Records
// can be large, so only the last few hundred bytes are read.
func readOutcome(f *os.File) (string, int, error) {
	const tailSize = 512

	info, err := f.Stat()
	if err != nil {
		return "", 0, err
	}
	offset := info.Size() - tailSize
	if offset < 0 {
		offset = 0
	}
	buf := make([]byte, info.Size()-offset)
	if _, err := f.ReadAt(buf, offset); err != nil && err != io.EOF {
		return "", 0, err
	}

	for _, line := range strings.Split(string(buf), "\n") {
		line = strings.TrimSpace(line)
		if line == BodyEndOK {
			return StatusOK, 0, nil
		}
		if strings.HasPrefix(line, "=== RUN FAILED (exit ") {
			numStr := strings.TrimSuffix(strings.TrimPrefix(line, "=== RUN FAILED (exit "), ") ===")
			code, _ := strconv.Atoi(numStr)
			return StatusFailed, code, nil
		}
	}
	return StatusPartial, 0, nil
}

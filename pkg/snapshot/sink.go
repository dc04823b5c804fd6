package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Sink writes snapshot output into a directory tree. JSON documents get a
// ".json" extension appended to their logical path; binary assets keep the
// extension the caller supplies. Intermediate directories are created as
// needed and re-running overwrites prior output.
//
// A Sink is safe for concurrent use by multiple source jobs. It records
// every path written so a run can assert that jobs never target the same
// file.
type Sink struct {
	dir    string
	indent bool

	mu    sync.Mutex
	paths []string
}

// NewSink creates a Sink rooted at dir. If indent is true, JSON documents
// are written with 4-space indentation; otherwise output is compact.
func NewSink(dir string, indent bool) *Sink {
	return &Sink{dir: dir, indent: indent}
}

// Dir returns the output base directory.
func (s *Sink) Dir() string { return s.dir }

// WriteJSON serializes v and writes it at the logical slash-delimited path,
// with ".json" appended. json.RawMessage values are re-serialized through
// encoding/json, so identical upstream responses produce byte-identical
// files regardless of upstream whitespace.
func (s *Sink) WriteJSON(path string, v any) error {
	var (
		data []byte
		err  error
	)
	if s.indent {
		data, err = json.MarshalIndent(v, "", "    ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return s.write(path+".json", append(data, '\n'))
}

// WriteFile writes raw bytes at the logical path, which must include the
// file extension (e.g. "github/openGraphImages/sunshine.png").
func (s *Sink) WriteFile(path string, data []byte) error {
	return s.write(path, data)
}

func (s *Sink) write(path string, data []byte) error {
	full := filepath.Join(s.dir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	s.mu.Lock()
	s.paths = append(s.paths, path)
	s.mu.Unlock()
	return nil
}

// Paths returns the sorted set of logical paths written so far.
func (s *Sink) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.paths))
	copy(out, s.paths)
	sort.Strings(out)
	return out
}

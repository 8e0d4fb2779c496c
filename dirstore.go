package hesabna

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DirStore is a Store over a data directory: one JSONL file per collection
// where each line is {"key": <id>, "value": <entity>}, plus a state.json
// file for the single-value area. Files are human readable and easy to
// inspect or version.
//
// Atomicity: a batch is staged fully in memory, every touched collection is
// written to a temp file, and the temp files are renamed into place only
// after all writes succeeded. A write failure leaves the prior files intact.
type DirStore struct {
	dir string
}

// OpenDirStore returns a DirStore rooted at dir, creating it if needed.
func OpenDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create data directory %q: %w", dir, err)
	}
	return &DirStore{dir: dir}, nil
}

type jrecord struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

func (s *DirStore) collectionPath(collection string) string {
	return filepath.Join(s.dir, collection+".jsonl")
}

func (s *DirStore) statePath() string {
	return filepath.Join(s.dir, "state.json")
}

// List implements Store.
func (s *DirStore) List(collection string) ([]Record, error) {
	m, err := s.readCollection(collection)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(m))
	for id, data := range m {
		records = append(records, Record{ID: id, Data: data})
	}
	return records, nil
}

func (s *DirStore) readCollection(collection string) (map[string]json.RawMessage, error) {
	f, err := os.Open(s.collectionPath(collection))
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open collection %q: %w", collection, err)
	}
	defer f.Close()

	m := make(map[string]json.RawMessage)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024) // invoice refs can be long lines
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var r jrecord
		if err := json.Unmarshal(line, &r); err != nil {
			return nil, fmt.Errorf("cannot parse line of collection %q: %q: %w", collection, string(line), err)
		}
		m[r.Key] = r.Value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read collection %q: %w", collection, err)
	}
	return m, nil
}

func (s *DirStore) writeCollection(path string, m map[string]json.RawMessage) (tmp string, err error) {
	f, err := os.CreateTemp(s.dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return "", err
	}
	defer func() {
		f.Close()
		if err != nil {
			os.Remove(f.Name())
		}
	}()

	// canonical order keeps the files diffable
	keys := slices.Sorted(maps.Keys(m))
	w := bufio.NewWriter(f)
	for _, id := range keys {
		data, merr := json.Marshal(jrecord{Key: id, Value: m[id]})
		if merr != nil {
			return "", merr
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return "", err
		}
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	if err := f.Sync(); err != nil {
		return "", err
	}
	return f.Name(), nil
}

// Apply implements Store.
func (s *DirStore) Apply(batch Batch) error {
	// stage all touched collections in memory
	staged := make(map[string]map[string]json.RawMessage)
	for _, op := range batch {
		col, ok := staged[op.Collection]
		if !ok {
			var err error
			col, err = s.readCollection(op.Collection)
			if err != nil {
				return fmt.Errorf("batch commit failed: %w", err)
			}
			staged[op.Collection] = col
		}
		if op.Data == nil {
			delete(col, op.ID)
		} else {
			col[op.ID] = op.Data
		}
	}

	// write every temp file before renaming any of them
	tmps := make(map[string]string, len(staged))
	for name, col := range staged {
		tmp, err := s.writeCollection(s.collectionPath(name), col)
		if err != nil {
			for _, t := range tmps {
				os.Remove(t)
			}
			return fmt.Errorf("batch commit failed: %w", err)
		}
		tmps[name] = tmp
	}
	for name, tmp := range tmps {
		if err := os.Rename(tmp, s.collectionPath(name)); err != nil {
			return fmt.Errorf("batch commit failed: %w", err)
		}
	}
	return nil
}

func (s *DirStore) readState() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.statePath())
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read state file: %w", err)
	}
	m := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("could not parse state file: %w", err)
	}
	return m, nil
}

func (s *DirStore) writeState(m map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	f, err := os.CreateTemp(s.dir, "state.json.tmp*")
	if err != nil {
		return err
	}
	name := f.Name()
	if _, err := f.Write(append(data, '\n')); err != nil {
		f.Close()
		os.Remove(name)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return err
	}
	return os.Rename(name, s.statePath())
}

// Get implements Store.
func (s *DirStore) Get(key string) (json.RawMessage, bool, error) {
	m, err := s.readState()
	if err != nil {
		return nil, false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

// Set implements Store.
func (s *DirStore) Set(key string, value json.RawMessage) error {
	m, err := s.readState()
	if err != nil {
		return err
	}
	m[key] = value
	return s.writeState(m)
}

// DeleteKey implements Store.
func (s *DirStore) DeleteKey(key string) error {
	m, err := s.readState()
	if err != nil {
		return err
	}
	delete(m, key)
	return s.writeState(m)
}

// Wipe implements Store.
func (s *DirStore) Wipe() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		name := e.Name()
		if name == "state.json" || strings.HasSuffix(name, ".jsonl") {
			if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
				return err
			}
		}
	}
	return nil
}

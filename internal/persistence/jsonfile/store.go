// Package jsonfile persists the booking domain as flat JSON files under a
// single data folder: users.json, rooms.json, and one YYYY-MM-DD.json file
// per calendar date.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/afero"

	"github.com/example/roombook/internal/persistence"
)

const (
	usersFileName = "users.json"
	roomsFileName = "rooms.json"
	fileExt       = ".json"
)

// Store owns the data folder and the per-path lock registry. It is an
// explicit handle: every repository derives its file paths from the store at
// call time, and nothing about the folder location is process-global.
type Store struct {
	fs   afero.Fs
	root string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Open constructs a store rooted at dir on the supplied filesystem, creating
// the folder if needed.
func Open(fs afero.Fs, dir string) (*Store, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if dir == "" {
		return nil, fmt.Errorf("data folder path is empty")
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data folder %s: %w", dir, err)
	}
	return &Store{fs: fs, root: dir, locks: make(map[string]*sync.Mutex)}, nil
}

// Root returns the data folder path.
func (s *Store) Root() string {
	return s.root
}

// filePath joins a file name onto the data folder.
func (s *Store) filePath(name string) string {
	return filepath.Join(s.root, name)
}

// pathLock returns the mutex guarding path, creating it on first use. Locks
// live for the lifetime of the store.
func (s *Store) pathLock(path string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[path]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[path] = lock
	}
	return lock
}

// withPathLock runs fn while holding the lock for path. Repositories use it
// to keep full read-mutate-write sequences atomic with respect to each other.
func (s *Store) withPathLock(path string, fn func() error) error {
	lock := s.pathLock(path)
	lock.Lock()
	defer lock.Unlock()
	return fn()
}

// readJSON decodes the file at path into out. A missing file reports
// found=false with no error; callers substitute their empty collection.
// Content that exists but cannot be decoded reports persistence.ErrCorrupt.
func (s *Store) readJSON(path string, out any) (bool, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return true, fmt.Errorf("decode %s: %v: %w", path, err, persistence.ErrCorrupt)
	}
	return true, nil
}

// writeJSON serializes v to a temporary file next to path and renames it into
// place, so a crash mid-write never destroys the previous contents. All
// failures propagate to the caller.
func (s *Store) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	data = append(data, '\n')

	tmp, err := afero.TempFile(s.fs, s.root, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("close temp file for %s: %w", path, err)
	}
	if err := s.fs.Rename(tmpName, path); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// dateFiles lists the calendar dates that have a file in the data folder,
// sorted ascending. Reserved registry files and names that do not parse as
// YYYY-MM-DD.json are skipped.
func (s *Store) dateFiles() ([]persistence.Date, error) {
	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		return nil, fmt.Errorf("scan data folder %s: %w", s.root, err)
	}

	dates := make([]persistence.Date, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name == usersFileName || name == roomsFileName {
			continue
		}
		if filepath.Ext(name) != fileExt {
			continue
		}
		date, err := persistence.ParseDate(name[:len(name)-len(fileExt)])
		if err != nil {
			continue
		}
		dates = append(dates, date)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

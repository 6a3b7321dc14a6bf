package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"mhtidy/internal/dataprocessing"
	"mhtidy/internal/exporter"
	"mhtidy/pkg/contracts/domain"
)

// validName keeps store keys usable as filenames on every platform.
var validName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Store is the persistent named-dataset store: a directory where each
// tidy table lives as <name>.csv. Writes are atomic, so a failed Put
// leaves the previous table for that name intact.
type Store struct {
	dir string
}

// New opens (creating if needed) a store rooted at dir.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns where the named dataset is (or would be) persisted.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".csv")
}

// Put persists the table under name, overwriting any prior value. The
// write is temp-file-and-rename, never leaving a partial entry behind;
// re-running with an unchanged table yields a byte-identical file.
func (s *Store) Put(name string, tbl *domain.Table) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := exporter.WriteTable(s.Path(name), tbl, true); err != nil {
		return fmt.Errorf("failed to persist dataset %s: %w", name, err)
	}
	slog.Info("dataset persisted",
		slog.String("dataset", name),
		slog.String("path", s.Path(name)),
		slog.Int("rows", tbl.NumRows()))
	return nil
}

// Get loads the named dataset back into a table.
func (s *Store) Get(name string) (*domain.Table, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	tbl, err := dataprocessing.ReadCSVFile(s.Path(name), 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", name, err)
	}
	return tbl, nil
}

// Exists reports whether the named dataset has been persisted.
func (s *Store) Exists(name string) bool {
	if checkName(name) != nil {
		return false
	}
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// List returns the names of all persisted datasets, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read store directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".csv")
		if validName.MatchString(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func checkName(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("invalid dataset name %q", name)
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for file locations: raw exports are
// read from SourceDir, tidied tables are persisted under StoreDir, and
// logs go to LogsDir.
type Paths struct {
	BaseDir   string
	SourceDir string
	StoreDir  string
	LogsDir   string
}

// GetPaths resolves the application paths against the executable location,
// so the tool behaves the same regardless of the working directory it is
// launched from.
func GetPaths() (*Paths, error) {
	base, err := executableDir()
	if err != nil {
		return nil, err
	}
	return PathsFrom(base), nil
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}
	return filepath.Dir(exe), nil
}

// ResolvePaths anchors the configured pipeline directories on the
// executable location. Relative configured paths resolve against the base
// dir; absolute ones are kept as they are.
func (c *Config) ResolvePaths() (*Paths, error) {
	base, err := executableDir()
	if err != nil {
		return nil, err
	}
	return c.ResolvePathsFrom(base), nil
}

// ResolvePathsFrom anchors the configured directories on an explicit base,
// falling back to the standard layout for anything unset.
func (c *Config) ResolvePathsFrom(baseDir string) *Paths {
	p := PathsFrom(baseDir)
	if c.Pipeline.SourceDir != "" {
		p.SourceDir = anchorDir(baseDir, c.Pipeline.SourceDir)
	}
	if c.Pipeline.StoreDir != "" {
		p.StoreDir = anchorDir(baseDir, c.Pipeline.StoreDir)
	}
	return p
}

func anchorDir(baseDir, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(baseDir, dir)
}

// PathsFrom builds the standard layout under an explicit base directory.
func PathsFrom(baseDir string) *Paths {
	return &Paths{
		BaseDir:   baseDir,
		SourceDir: filepath.Join(baseDir, "data", "raw"),
		StoreDir:  filepath.Join(baseDir, "data", "tidy"),
		LogsDir:   filepath.Join(baseDir, "logs"),
	}
}

// EnsureDirectories creates every directory the pipeline writes to.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.SourceDir, p.StoreDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetSourcePath returns the full path of a raw export file.
func (p *Paths) GetSourcePath(filename string) string {
	return filepath.Join(p.SourceDir, filename)
}

// GetStorePath returns the full path of a persisted tidy table.
func (p *Paths) GetStorePath(filename string) string {
	return filepath.Join(p.StoreDir, filename)
}

// GetLogPath returns the full path of a log file.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

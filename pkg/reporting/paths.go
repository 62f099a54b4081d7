package reporting

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultPathManager implements path management functionality
type DefaultPathManager struct{}

// NewDefaultPathManager creates a new path manager
func NewDefaultPathManager() *DefaultPathManager {
	return &DefaultPathManager{}
}

// GetDefaultOutputDir returns the output directory for one run
func (p *DefaultPathManager) GetDefaultOutputDir(runID string) string {
	id := strings.TrimSpace(runID)
	if id == "" {
		id = "unknown"
	}
	return filepath.Join("results", id)
}

// EnsureDirectoryExists creates the parent directory of path if needed
func (p *DefaultPathManager) EnsureDirectoryExists(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// DefaultOutputDir is a package-level convenience function
func DefaultOutputDir(runID string) string {
	manager := NewDefaultPathManager()
	return manager.GetDefaultOutputDir(runID)
}

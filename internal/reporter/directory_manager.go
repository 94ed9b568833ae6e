package reporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// DirectoryManager creates the directories result files are written into.
type DirectoryManager struct {
	logger zerolog.Logger
}

// NewDirectoryManager creates a new DirectoryManager
func NewDirectoryManager(logger zerolog.Logger) *DirectoryManager {
	return &DirectoryManager{
		logger: logger,
	}
}

// EnsureParentDirectory creates the directory holding filePath if it is missing.
func (dm *DirectoryManager) EnsureParentDirectory(filePath string) error {
	dir := filepath.Dir(filePath)
	if dir == "." || dir == "" {
		return nil
	}
	if err := dm.createDirectory(dir); err != nil {
		return fmt.Errorf("failed to create output directory '%s': %w", dir, err)
	}
	return nil
}

func (dm *DirectoryManager) createDirectory(path string) error {
	if err := os.MkdirAll(path, DirPermissions); err != nil {
		dm.logger.Error().Err(err).Str("path", path).Msg("Failed to create directory")
		return err
	}

	dm.logger.Debug().Str("path", path).Msg("Directory ready")
	return nil
}

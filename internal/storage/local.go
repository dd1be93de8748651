package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// localStore implements Store on the local filesystem.
type localStore struct {
	baseDir string
	logger  zerolog.Logger
}

// NewLocalStore creates a filesystem-backed store rooted at baseDir.
func NewLocalStore(baseDir string, logger zerolog.Logger) Store {
	return &localStore{
		baseDir: baseDir,
		logger:  logger.With().Str("component", "local-storage").Logger(),
	}
}

// Save writes the file under baseDir/dir and returns its relative path.
func (s *localStore) Save(ctx context.Context, dir, filename string, r io.Reader) (string, error) {
	name, err := uniqueName(filename)
	if err != nil {
		return "", err
	}

	targetDir := filepath.Join(s.baseDir, dir)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		s.logger.Error().Err(err).Str("dir", targetDir).Msg("failed to create upload directory")
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	target := filepath.Join(targetDir, name)
	f, err := os.Create(target)
	if err != nil {
		s.logger.Error().Err(err).Str("file", target).Msg("failed to create upload file")
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(target)
		s.logger.Error().Err(err).Str("file", target).Msg("failed to write upload file")
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	stored := filepath.ToSlash(filepath.Join(dir, name))
	s.logger.Debug().Str("path", stored).Msg("file stored")
	return stored, nil
}

// Delete removes a stored file. Missing files are not an error.
func (s *localStore) Delete(ctx context.Context, storedPath string) error {
	target := filepath.Join(s.baseDir, filepath.FromSlash(storedPath))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		s.logger.Error().Err(err).Str("path", storedPath).Msg("failed to delete stored file")
		return fmt.Errorf("failed to delete stored file: %w", err)
	}
	return nil
}

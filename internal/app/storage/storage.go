package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

var fileNameReplacer = strings.NewReplacer(":", "_", "/", "_", ".", "_")

// FileName derives the file a page is stored under. Distinct urls may map to
// the same name.
func FileName(url string) string {
	return fileNameReplacer.Replace(url) + ".html"
}

type fileStorage struct {
	logger *zap.Logger
}

func NewFileStorage(logger *zap.Logger) *fileStorage {
	return &fileStorage{logger: logger}
}

// Store writes content to folder/filename, creating folder when missing, and
// returns the written path.
func (s *fileStorage) Store(ctx context.Context, folder, filename string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage folder: %w", err)
	}
	path := filepath.Join(folder, filename)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	s.logger.Debug("file written", zap.String("path", path), zap.Int("size", len(content)))
	return path, nil
}

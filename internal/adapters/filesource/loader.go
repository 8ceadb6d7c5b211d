package filesource

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/mikey/email-classifier/internal/core"
	"go.uber.org/zap"
)

// Loader reads files from disk and detects their MIME type from content
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new file loader
func NewLoader(logger *zap.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load stats, sniffs and reads a file. Files over the upload limit are
// returned without data so validation can report their size.
func (l *Loader) Load(path string) (*core.InputFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to detect file type: %w", err)
	}

	file := &core.InputFile{
		Name:     filepath.Base(path),
		MimeType: baseMediaType(detected.String()),
		Size:     info.Size(),
	}

	l.logger.Debug("Loaded file",
		zap.String("path", path),
		zap.String("detected", detected.String()),
		zap.Int64("size", file.Size))

	if file.Size > core.MaxFileSize {
		return file, nil
	}

	file.Data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return file, nil
}

// baseMediaType strips parameters such as charset
func baseMediaType(value string) string {
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return value
	}
	return mediaType
}

package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxFileSize bounds dataset files read at startup
const DefaultMaxFileSize int64 = 16 << 20

// ErrInvalidFile is wrapped by every FileValidator rejection
var ErrInvalidFile = errors.New("invalid file")

// FileValidator checks input files before they are parsed
type FileValidator struct {
	logger      *slog.Logger
	maxSize     int64
	allowedExts []string
}

// NewFileValidator creates a new file validator. allowedExts are compared
// case-insensitively and include the dot; none means any extension.
func NewFileValidator(logger *slog.Logger, maxSize int64, allowedExts ...string) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	exts := make([]string, 0, len(allowedExts))
	for _, e := range allowedExts {
		exts = append(exts, strings.ToLower(e))
	}
	return &FileValidator{
		logger:      logger.With(slog.String("component", "file_validator")),
		maxSize:     maxSize,
		allowedExts: exts,
	}
}

// ValidateFile checks that path is a readable, non-empty regular file within
// the size limit, with an allowed extension, and not an editor lock file
func (v *FileValidator) ValidateFile(path string) error {
	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".~lock.") {
		return v.reject(path, "is a temporary lock file")
	}

	if len(v.allowedExts) > 0 {
		ext := strings.ToLower(filepath.Ext(path))
		allowed := false
		for _, e := range v.allowedExts {
			if e == ext {
				allowed = true
				break
			}
		}
		if !allowed {
			return v.reject(path, fmt.Sprintf("has unsupported extension %q", ext))
		}
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return v.reject(path, "does not exist")
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return v.reject(path, "is a directory, not a file")
	}
	if info.Size() == 0 {
		return v.reject(path, "is empty")
	}
	if info.Size() > v.maxSize {
		return v.reject(path, fmt.Sprintf("is %d bytes, over the %d byte limit", info.Size(), v.maxSize))
	}

	file, err := os.Open(path)
	if err != nil {
		return v.reject(path, fmt.Sprintf("is not readable: %v", err))
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

func (v *FileValidator) reject(path, reason string) error {
	v.logger.Error("File rejected",
		slog.String("file", path),
		slog.String("reason", reason))
	return fmt.Errorf("%w: %s %s", ErrInvalidFile, path, reason)
}

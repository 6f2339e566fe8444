package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// TempFilePrefix is the prefix used for temporary atomic write files.
const TempFilePrefix = "sbolgen-tmp-"

// FileSink writes an artifact to a local path. The previous file, if any, is
// replaced atomically, so a failed write never leaves a truncated artifact.
type FileSink struct {
	path string
	perm os.FileMode
	opts Options
}

// NewFileSink returns a sink writing to path with mode 0644.
func NewFileSink(path string, opts Options) (*FileSink, error) {
	if path == "" {
		return nil, invalidDestination(path, "empty path")
	}
	return &FileSink{path: path, perm: 0o644, opts: opts}, nil
}

func (s *FileSink) Name() string        { return "file" }
func (s *FileSink) Destination() string { return s.path }

// Write stores data at the sink's path.
func (s *FileSink) Write(ctx context.Context, data []byte) (Info, error) {
	stored, info := prepare(s.path, data, s.opts.Compress)
	err := ctx.Err()
	if err == nil {
		err = writeFileAtomic(s.path, stored, s.perm)
	}
	record(s.opts, s.Name(), info, err)
	if err != nil {
		return Info{}, err
	}
	return info, nil
}

// writeFileAtomic writes data to a file atomically by writing to a temp file
// and then renaming it to the target filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	// Create a temporary file in the same directory to ensure atomic rename
	tmpFile, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name()) // Clean up if we fail before rename

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}

	return nil
}

package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// lockedFileWriter appends each write to a shared log file while holding an
// exclusive advisory lock on a sibling ".lock" file. The file is opened per
// write so concurrent scraper processes never interleave partial lines.
type lockedFileWriter struct {
	path string
	lock *flock.Flock
}

func newLockedFileWriter(path string) (*lockedFileWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("close log file %s: %w", path, err)
	}
	return &lockedFileWriter{path: path, lock: flock.New(path + ".lock")}, nil
}

func (w *lockedFileWriter) Write(p []byte) (int, error) {
	if err := w.lock.Lock(); err != nil {
		return 0, fmt.Errorf("lock log file: %w", err)
	}
	defer func() { _ = w.lock.Unlock() }()

	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return 0, err
	}
	n, err := file.Write(p)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	return n, err
}

package objpath

import (
	"os"
	"sync"
)

// ScopedFile is a uniquely named temporary file that is removed from disk
// when closed. It backs the local staging that bridges pull/push-only
// backends to streaming readers and writers: however the surrounding
// operation exits, closing the ScopedFile releases the disk space.
//
// Close is idempotent, so it is safe to defer a Close alongside explicit
// cleanup on the success path.
type ScopedFile struct {
	*os.File
	once sync.Once
	err  error
}

// NewScopedFile creates a temporary file in dir (or the default temp
// directory when dir is empty) using pattern, as in os.CreateTemp.
func NewScopedFile(dir, pattern string) (*ScopedFile, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, err
	}
	return &ScopedFile{File: f}, nil
}

// Close closes the file handle and removes the file. Subsequent calls
// return the first result.
func (f *ScopedFile) Close() error {
	f.once.Do(func() {
		closeErr := f.File.Close()
		removeErr := os.Remove(f.File.Name())
		if closeErr != nil {
			f.err = closeErr
		} else if removeErr != nil {
			f.err = removeErr
		}
	})
	return f.err
}

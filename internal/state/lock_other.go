//go:build !unix

package state

import (
	"os"
	"sync"
)

// FileLock is a no-op lock on platforms without flock. Only the atomic
// state writes protect concurrent invocations there.
type FileLock struct {
	file     *os.File
	released bool
	mu       sync.Mutex
}

// Acquire opens the lock file without locking it.
func Acquire(path string) (*FileLock, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, err
	}
	return &FileLock{file: file}, nil
}

// TryAcquire behaves like Acquire.
func TryAcquire(path string) (*FileLock, error) {
	return Acquire(path)
}

// Release closes the lock file. It is safe to call twice.
func (l *FileLock) Release() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.released {
		return nil
	}
	l.released = true
	return l.file.Close()
}

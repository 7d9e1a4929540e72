//go:build unix

package state

import (
	"os"
	"sync"
	"syscall"
)

// FileLock represents an exclusive advisory lock held on a file.
type FileLock struct {
	path     string
	file     *os.File
	released bool
	mu       sync.Mutex
}

// Acquire obtains an exclusive lock on the file. Blocks until lock available.
func Acquire(path string) (*FileLock, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, err
	}

	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX); err != nil {
		_ = file.Close()
		return nil, err
	}

	return &FileLock{path: path, file: file}, nil
}

// TryAcquire attempts to obtain the lock without blocking. Returns nil, nil if it is held elsewhere.
func TryAcquire(path string) (*FileLock, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, err
	}

	err = syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	if err != nil {
		_ = file.Close()
		if err == syscall.EWOULDBLOCK {
			return nil, nil
		}
		return nil, err
	}

	return &FileLock{path: path, file: file}, nil
}

// Release releases the lock and closes the file. It is safe to call twice.
func (l *FileLock) Release() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.released {
		return nil
	}
	l.released = true

	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		_ = l.file.Close()
		return err
	}
	return l.file.Close()
}

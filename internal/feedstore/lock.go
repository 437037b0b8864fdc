package feedstore

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another run holds the store lock.
var ErrLocked = errors.New("feed store is locked by another run")

// Lock is an exclusive advisory lock guarding one feed store.
type Lock struct {
	path string
	fl   *flock.Flock
}

// LockPath returns the lock file used for the store at path.
func LockPath(path string) string {
	return path + ".lock"
}

// Acquire takes the store lock without blocking.
func Acquire(path string) (*Lock, error) {
	lockPath := LockPath(path)
	fl := flock.New(lockPath)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", lockPath, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrLocked, lockPath)
	}
	return &Lock{path: lockPath, fl: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release drops the lock. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}

package utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/mitchellh/go-homedir"
)

const (
	lockFileSuffix = ".lock"
	lockRetryDelay = 100 * time.Millisecond
)

// DBLock serialises writers of one standings database across processes.
type DBLock struct {
	file *flock.Flock
	path string
}

// NewDBLock returns the lock guarding the database at dbPath. The lock file
// sits next to the database as <db>.lock.
func NewDBLock(dbPath string) (*DBLock, error) {
	abs, err := GetAbsDBPath(dbPath)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	path := abs + lockFileSuffix
	return &DBLock{file: flock.New(path), path: path}, nil
}

// Lock takes the lock, waiting for another writer until ctx is done.
func (l *DBLock) Lock(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	ok, err := l.file.TryLock()
	if err != nil {
		return fmt.Errorf("lock %s: %w", l.path, err)
	}
	if ok {
		return nil
	}

	Log.Warn("Another teamtotals process is writing to the database, waiting...")
	ok, err = l.file.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock %s: %w", l.path, err)
	}
	if !ok {
		return fmt.Errorf("lock %s: gave up waiting", l.path)
	}
	return nil
}

// Unlock releases the lock. The lock file is left in place.
func (l *DBLock) Unlock() error {
	if err := l.file.Unlock(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("unlock %s: %w", l.path, err)
	}
	return nil
}

// GetAbsDBPath resolves the database path. An empty path selects the
// per-user default under ~/.config/teamtotals; "~" is expanded.
func GetAbsDBPath(dbPath string) (string, error) {
	if dbPath == "" {
		home, err := homedir.Dir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "teamtotals", "teamtotals.sqlite"), nil
	}
	expanded, err := homedir.Expand(dbPath)
	if err != nil {
		return "", err
	}
	return filepath.Abs(expanded)
}

// WithDBLock runs fn while holding the write lock of the database at dbPath.
func WithDBLock(ctx context.Context, dbPath string, fn func() error) error {
	lock, err := NewDBLock(dbPath)
	if err != nil {
		return err
	}
	if err := lock.Lock(ctx); err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			Log.Warnf("%v", err)
		}
	}()
	return fn()
}

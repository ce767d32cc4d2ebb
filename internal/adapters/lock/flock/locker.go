package flock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bnema/social-actions-cli/internal/adapters/fsutil"
	"github.com/bnema/social-actions-cli/internal/ports"
	"github.com/gofrs/flock"
)

const (
	LockFileName        = ".profile.lock"
	DefaultPollInterval = 500 * time.Millisecond
)

// Locker takes an advisory exclusive lock on a sentinel file inside the browser profile directory.
// The kernel drops the lock when the holding process dies, so stale sentinels never block.
type Locker struct {
	pollInterval time.Duration
}

var _ ports.ProfileLocker = (*Locker)(nil)

func NewLocker(pollInterval time.Duration) *Locker {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	return &Locker{pollInterval: pollInterval}
}

func (l *Locker) Acquire(ctx context.Context, profilePath string, timeout time.Duration) (ports.ProfileLock, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	dir, err := fsutil.AbsPath(profilePath)
	if err != nil {
		return nil, false, err
	}
	if err := os.MkdirAll(dir, fsutil.DirMode); err != nil {
		return nil, false, fmt.Errorf("create profile directory: %w", err)
	}

	path := filepath.Join(dir, LockFileName)
	fileLock := flock.New(path)

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(waitCtx, l.pollInterval)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("lock profile %s: %w", dir, err)
	}
	if !locked {
		return nil, false, nil
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())+"\n"), fsutil.FileMode); err != nil {
		_ = fileLock.Unlock()
		return nil, false, fmt.Errorf("write profile lock owner: %w", err)
	}

	return &profileLock{path: dir, lock: fileLock}, true, nil
}

type profileLock struct {
	path string
	lock *flock.Flock
}

func (p *profileLock) Path() string {
	return p.path
}

func (p *profileLock) Held() bool {
	return p.lock.Locked()
}

func (p *profileLock) Release() error {
	if !p.lock.Locked() {
		return nil
	}
	if err := p.lock.Unlock(); err != nil {
		return fmt.Errorf("unlock profile %s: %w", p.path, err)
	}
	return nil
}

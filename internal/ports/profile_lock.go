package ports

import (
	"context"
	"time"
)

type ProfileLock interface {
	Path() string
	Held() bool
	Release() error
}

type ProfileLocker interface {
	// Acquire polls for exclusive ownership of the profile directory. ok is false on timeout.
	Acquire(ctx context.Context, profilePath string, timeout time.Duration) (lock ProfileLock, ok bool, err error)
}

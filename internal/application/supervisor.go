package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/bnema/social-actions-cli/internal/ports"
	"go.uber.org/zap"
)

const (
	DefaultLockTimeout  = 180 * time.Second
	defaultProbeTimeout = 5 * time.Second
)

// SessionState is one live browser session bound to a locked profile. It is replaced, never
// repaired: a relaunch yields a new value with a higher generation.
type SessionState struct {
	Profile    domain.BrowserProfile
	Driver     ports.Driver
	Lock       ports.ProfileLock
	Generation int
}

// Supervisor owns session lifecycles. It relaunches a dead session against the same profile and
// retries the in-flight operation exactly once.
type Supervisor struct {
	factory     ports.DriverFactory
	locker      ports.ProfileLocker
	lockTimeout time.Duration
	logger      *zap.Logger
}

func NewSupervisor(factory ports.DriverFactory, locker ports.ProfileLocker, lockTimeout time.Duration, logger *zap.Logger) *Supervisor {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Supervisor{factory: factory, locker: locker, lockTimeout: lockTimeout, logger: logger}
}

// Open locks the profile and launches a session on it. A lock timeout returns ErrProfileBusy.
func (s *Supervisor) Open(ctx context.Context, profile domain.BrowserProfile) (SessionState, error) {
	lock, err := s.acquire(ctx, profile)
	if err != nil {
		return SessionState{}, err
	}

	driver, err := s.factory.Launch(ctx, profile)
	if err != nil {
		if releaseErr := lock.Release(); releaseErr != nil {
			return SessionState{}, fmt.Errorf("launch browser session: %w", errors.Join(err, releaseErr))
		}
		return SessionState{}, fmt.Errorf("launch browser session: %w", err)
	}

	return SessionState{Profile: profile, Driver: driver, Lock: lock, Generation: 1}, nil
}

// EnsureAlive probes the session and relaunches it when the probe fails.
func (s *Supervisor) EnsureAlive(ctx context.Context, state SessionState) (SessionState, error) {
	if s.alive(ctx, state) {
		return state, nil
	}
	if err := ctx.Err(); err != nil {
		return state, err
	}

	s.logger.Warn("browser session not responding, relaunching", zap.Int("generation", state.Generation))
	return s.relaunch(ctx, state)
}

// Run executes op on a live session. A session-dead failure, from the probe or from op, is
// answered with one relaunch; op is retried once on the new session. Running out of that budget
// returns ErrAccountAborted.
func (s *Supervisor) Run(ctx context.Context, state SessionState, op func(ctx context.Context, driver ports.Driver) error) (SessionState, error) {
	relaunched := false

	if !s.alive(ctx, state) {
		if err := ctx.Err(); err != nil {
			return state, err
		}
		s.logger.Warn("liveness probe failed before operation, relaunching", zap.Int("generation", state.Generation))
		next, err := s.relaunch(ctx, state)
		if err != nil {
			return next, fmt.Errorf("%w: %w", domain.ErrAccountAborted, err)
		}
		state, relaunched = next, true
	}

	err := op(ctx, state.Driver)
	if err == nil || !errors.Is(err, domain.ErrSessionDead) {
		return state, err
	}
	if relaunched {
		return state, fmt.Errorf("%w: session died again after relaunch: %w", domain.ErrAccountAborted, err)
	}

	s.logger.Warn("browser session died during operation, relaunching", zap.Int("generation", state.Generation), zap.Error(err))
	next, relaunchErr := s.relaunch(ctx, state)
	if relaunchErr != nil {
		return next, fmt.Errorf("%w: %w", domain.ErrAccountAborted, errors.Join(err, relaunchErr))
	}

	if err := op(ctx, next.Driver); err != nil {
		if errors.Is(err, domain.ErrSessionDead) {
			return next, fmt.Errorf("%w: session died again after relaunch: %w", domain.ErrAccountAborted, err)
		}
		return next, err
	}

	return next, nil
}

// Close ends the session and releases the profile lock.
func (s *Supervisor) Close(state SessionState) error {
	var errs []error
	if state.Driver != nil {
		if err := state.Driver.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser session: %w", err))
		}
	}
	if state.Lock != nil {
		if err := state.Lock.Release(); err != nil {
			errs = append(errs, fmt.Errorf("release profile lock: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (s *Supervisor) alive(ctx context.Context, state SessionState) bool {
	if state.Driver == nil {
		return false
	}
	probeCtx, cancel := context.WithTimeout(ctx, defaultProbeTimeout)
	defer cancel()
	return state.Driver.IsAlive(probeCtx)
}

// relaunch discards the old session and verifies the new one answers before handing it out.
func (s *Supervisor) relaunch(ctx context.Context, state SessionState) (SessionState, error) {
	if state.Driver != nil {
		if err := state.Driver.Close(); err != nil {
			s.logger.Debug("closing dead session", zap.Error(err))
		}
	}

	next := SessionState{Profile: state.Profile, Lock: state.Lock, Generation: state.Generation + 1}
	if next.Lock == nil || !next.Lock.Held() {
		lock, err := s.acquire(ctx, state.Profile)
		if err != nil {
			return next, fmt.Errorf("reacquire profile lock: %w", err)
		}
		next.Lock = lock
	}

	driver, err := s.factory.Launch(ctx, state.Profile)
	if err != nil {
		return next, fmt.Errorf("relaunch browser session: %w", err)
	}
	next.Driver = driver

	if !s.alive(ctx, next) {
		return next, fmt.Errorf("relaunched session not responding: %w", domain.ErrSessionDead)
	}

	s.logger.Info("browser session relaunched", zap.Int("generation", next.Generation))
	return next, nil
}

func (s *Supervisor) acquire(ctx context.Context, profile domain.BrowserProfile) (ports.ProfileLock, error) {
	lock, ok, err := s.locker.Acquire(ctx, profile.Path, s.lockTimeout)
	if err != nil {
		return nil, fmt.Errorf("acquire profile lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", profile.Path, domain.ErrProfileBusy)
	}
	return lock, nil
}

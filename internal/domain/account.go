package domain

import (
	"fmt"
	"strings"
)

type AccountID string

type Account struct {
	ID         AccountID
	Handle     string
	Profile    BrowserProfile
	Enabled    ActionSet
	RateLimits RateLimits
	Targets    []TargetPolicy
}

type BrowserProfile struct {
	Path     string
	Headless bool
}

// Validate reports configuration problems that make the account unusable for a run.
func (a Account) Validate() error {
	if strings.TrimSpace(string(a.ID)) == "" {
		return fmt.Errorf("account id is empty: %w", ErrInvalidConfig)
	}
	if NormalizeHandle(a.Handle) == "" {
		return fmt.Errorf("account %s: handle is empty: %w", a.ID, ErrInvalidConfig)
	}
	if strings.TrimSpace(a.Profile.Path) == "" {
		return fmt.Errorf("account %s: browser profile path is empty: %w", a.ID, ErrInvalidConfig)
	}
	if a.RateLimits.MinInterval < 0 {
		return fmt.Errorf("account %s: min interval is negative: %w", a.ID, ErrInvalidConfig)
	}

	seen := make(map[string]struct{}, len(a.Targets))
	for _, target := range a.Targets {
		handle := strings.ToLower(NormalizeHandle(target.Handle))
		if handle == "" {
			return fmt.Errorf("account %s: target handle is empty: %w", a.ID, ErrInvalidConfig)
		}
		if _, dup := seen[handle]; dup {
			return fmt.Errorf("account %s: duplicate target %q: %w", a.ID, target.Handle, ErrInvalidConfig)
		}
		seen[handle] = struct{}{}
	}

	return nil
}

// Target returns the policy configured for handle, matched case-insensitively.
func (a Account) Target(handle string) (TargetPolicy, bool) {
	want := NormalizeHandle(handle)
	for _, target := range a.Targets {
		if strings.EqualFold(NormalizeHandle(target.Handle), want) {
			return target, true
		}
	}

	return TargetPolicy{}, false
}

func NormalizeHandle(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}

package ports

import (
	"time"

	"github.com/bnema/social-actions-cli/internal/domain"
)

// ActionObserver receives executor and orchestrator outcomes for metrics export.
type ActionObserver interface {
	ObserveAction(account domain.AccountID, action domain.ActionKind, state domain.ActionState, reason domain.SkipReason)
	ObserveAccount(account domain.AccountID, status domain.AccountStatus, elapsed time.Duration)
}

type NopObserver struct{}

func (NopObserver) ObserveAction(domain.AccountID, domain.ActionKind, domain.ActionState, domain.SkipReason) {
}

func (NopObserver) ObserveAccount(domain.AccountID, domain.AccountStatus, time.Duration) {}

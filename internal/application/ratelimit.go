package application

import (
	"context"
	"fmt"

	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/bnema/social-actions-cli/internal/ports"
)

// RateLimiter compares the trailing-hour success count in the ledger with a ceiling. It keeps no
// state of its own, so bursts inside one hour are fine as long as the total stays under the limit.
type RateLimiter struct {
	ledger ports.Ledger
}

func NewRateLimiter(ledger ports.Ledger) *RateLimiter {
	return &RateLimiter{ledger: ledger}
}

// Allow reports whether one more action fits. A limit of zero or less is unlimited.
func (r *RateLimiter) Allow(ctx context.Context, account domain.AccountID, action domain.ActionKind, limit int) (domain.RateDecision, error) {
	if limit <= 0 {
		return domain.RateDecision{Allowed: true, Limit: limit}, nil
	}

	used, err := r.ledger.CountInWindow(ctx, account, action, domain.RateWindow)
	if err != nil {
		return domain.RateDecision{}, fmt.Errorf("count %s in window: %w", action, err)
	}

	return domain.RateDecision{Allowed: used < limit, Used: used, Limit: limit}, nil
}

package ports

import (
	"context"
	"time"

	"github.com/bnema/social-actions-cli/internal/domain"
)

type GreetingStore interface {
	Count(ctx context.Context, account domain.AccountID, target string, greeting domain.GreetingType, day time.Time) (int, error)
	Remember(ctx context.Context, account domain.AccountID, target string, greeting domain.GreetingType, at time.Time) error
}

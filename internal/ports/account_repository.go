package ports

import (
	"context"

	"github.com/bnema/social-actions-cli/internal/domain"
)

// AccountRepository loads accounts with their policies already normalised. Accounts are returned
// in file order and are not validated; callers run Account.Validate per account.
type AccountRepository interface {
	GetByID(ctx context.Context, id domain.AccountID) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
}

package application

import (
	"time"

	"github.com/bnema/social-actions-cli/internal/domain"
)

// PruneLedgerCommand drops records older than Before for the selected accounts. No outcomes means
// every outcome is eligible.
type PruneLedgerCommand struct {
	Accounts []string
	Before   time.Time
	Outcomes []domain.Outcome
}

type PruneResult struct {
	Account domain.AccountID
	Removed int
}

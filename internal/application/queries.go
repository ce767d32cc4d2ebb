package application

import (
	"time"

	"github.com/bnema/social-actions-cli/internal/domain"
)

// ActionBudget is the trailing-hour usage of one action kind against its ceiling.
type ActionBudget struct {
	Action domain.ActionKind
	Used   int
	Limit  int
	// ResetsAt is when the oldest success in the window falls out of it. Zero when nothing is in the window.
	ResetsAt time.Time
}

func (b ActionBudget) Unlimited() bool {
	return b.Limit <= 0
}

// Percent is the share of the ceiling already used, capped at 100.
func (b ActionBudget) Percent() float64 {
	if b.Unlimited() {
		return 0
	}
	percent := float64(b.Used) / float64(b.Limit) * 100
	if percent > 100 {
		return 100
	}
	return percent
}

type Status struct {
	Account    domain.Account
	Budgets    []ActionBudget
	LastRecord *domain.ActionRecord
	Records    int
	AsOf       time.Time
}

// LedgerQuery filters ledger listings. Zero fields match everything.
type LedgerQuery struct {
	Account domain.AccountID
	Action  domain.ActionKind
	Outcome domain.Outcome
	Since   time.Time
	Limit   int
}

func (q LedgerQuery) Match(rec domain.ActionRecord) bool {
	if q.Action != "" && rec.Action != q.Action {
		return false
	}
	if q.Outcome != "" && rec.Outcome != q.Outcome {
		return false
	}
	if !q.Since.IsZero() && rec.At.Before(q.Since) {
		return false
	}
	return true
}

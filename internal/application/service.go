package application

import (
	"context"
	"fmt"

	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/bnema/social-actions-cli/internal/ports"
)

// Service answers read-side questions about accounts and maintains the ledger outside of runs.
type Service struct {
	repo   ports.AccountRepository
	ledger ports.Ledger
	clock  ports.Clock
}

func NewService(repo ports.AccountRepository, ledger ports.Ledger, clock ports.Clock) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Service{
		repo:   repo,
		ledger: ledger,
		clock:  clock,
	}
}

func (s *Service) GetStatus(ctx context.Context, id domain.AccountID) (Status, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Status{}, fmt.Errorf("get account by id: %w", err)
	}

	return s.statusFor(ctx, account)
}

func (s *Service) GetStatusAll(ctx context.Context) ([]Status, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	statuses := make([]Status, 0, len(accounts))
	for _, account := range accounts {
		status, err := s.statusFor(ctx, account)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}

func (s *Service) statusFor(ctx context.Context, account domain.Account) (Status, error) {
	records, err := s.ledger.List(ctx, account.ID)
	if err != nil {
		return Status{}, fmt.Errorf("list ledger for %s: %w", account.ID, err)
	}

	now := s.clock.Now()
	windowStart := now.Add(-domain.RateWindow)

	status := Status{Account: account, Records: len(records), AsOf: now}
	if len(records) > 0 {
		last := records[len(records)-1]
		status.LastRecord = &last
	}

	for _, kind := range account.Enabled.Kinds() {
		budget := ActionBudget{Action: kind, Limit: account.RateLimits.Limit(kind)}
		for _, rec := range records {
			if rec.Action != kind || rec.Outcome != domain.OutcomeSuccess {
				continue
			}
			if !rec.At.After(windowStart) || rec.At.After(now) {
				continue
			}
			budget.Used++
			if resets := rec.At.Add(domain.RateWindow); budget.ResetsAt.IsZero() || resets.Before(budget.ResetsAt) {
				budget.ResetsAt = resets
			}
		}
		status.Budgets = append(status.Budgets, budget)
	}

	return status, nil
}

// ListLedger returns the newest matching records last, keeping at most q.Limit of them.
func (s *Service) ListLedger(ctx context.Context, q LedgerQuery) ([]domain.ActionRecord, error) {
	if _, err := s.repo.GetByID(ctx, q.Account); err != nil {
		return nil, fmt.Errorf("get account by id: %w", err)
	}

	records, err := s.ledger.List(ctx, q.Account)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}

	matched := records[:0]
	for _, rec := range records {
		if q.Match(rec) {
			matched = append(matched, rec)
		}
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[len(matched)-q.Limit:]
	}

	return matched, nil
}

func (s *Service) PruneLedger(ctx context.Context, cmd PruneLedgerCommand) ([]PruneResult, error) {
	accounts, err := SelectAccounts(ctx, s.repo, cmd.Accounts)
	if err != nil {
		return nil, err
	}

	before := cmd.Before
	if before.IsZero() {
		before = s.clock.Now()
	}

	results := make([]PruneResult, 0, len(accounts))
	for _, account := range accounts {
		removed, err := s.ledger.Prune(ctx, account.ID, before, cmd.Outcomes...)
		if err != nil {
			return results, fmt.Errorf("prune ledger for %s: %w", account.ID, err)
		}
		results = append(results, PruneResult{Account: account.ID, Removed: removed})
	}

	return results, nil
}

package file

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/bnema/social-actions-cli/internal/adapters/fsutil"
	"github.com/bnema/social-actions-cli/internal/adapters/ledger"
	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/bnema/social-actions-cli/internal/ports"
	"github.com/google/uuid"
)

const (
	fileExt       = ".jsonl"
	maxRecordSize = 64 * 1024
)

// Ledger stores one JSON record per line in <root>/<account>.jsonl.
type Ledger struct {
	root  string
	clock ports.Clock
}

var _ ports.Ledger = (*Ledger)(nil)

func NewLedger(root string, clock ports.Clock) (*Ledger, error) {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	absRoot, err := fsutil.AbsPath(root)
	if err != nil {
		return nil, err
	}

	return &Ledger{root: absRoot, clock: clock}, nil
}

func (l *Ledger) Record(ctx context.Context, rec domain.ActionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := ledger.PartitionPath(l.root, rec.AccountID, fileExt)
	if err != nil {
		return err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.At.IsZero() {
		rec.At = l.clock.Now()
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode ledger record: %w", err)
	}
	line = append(line, '\n')

	mu := fsutil.LockForPath(path)
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(l.root, fsutil.DirMode); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fsutil.FileMode)
	if err != nil {
		return fmt.Errorf("open ledger file: %w", err)
	}

	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("append ledger record: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync ledger file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close ledger file: %w", err)
	}

	return nil
}

func (l *Ledger) HasSucceeded(ctx context.Context, account domain.AccountID, post domain.PostID, action domain.ActionKind) (bool, error) {
	records, err := l.List(ctx, account)
	if err != nil {
		return false, err
	}

	for _, rec := range records {
		if rec.PostID == post && rec.Action == action && rec.Outcome.Settled() {
			return true, nil
		}
	}

	return false, nil
}

func (l *Ledger) CountInWindow(ctx context.Context, account domain.AccountID, action domain.ActionKind, window time.Duration) (int, error) {
	records, err := l.List(ctx, account)
	if err != nil {
		return 0, err
	}

	now := l.clock.Now()
	cutoff := now.Add(-window)
	count := 0
	for _, rec := range records {
		if rec.Action != action || rec.Outcome != domain.OutcomeSuccess {
			continue
		}
		if rec.At.After(cutoff) && !rec.At.After(now) {
			count++
		}
	}

	return count, nil
}

func (l *Ledger) List(ctx context.Context, account domain.AccountID) ([]domain.ActionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := ledger.PartitionPath(l.root, account, fileExt)
	if err != nil {
		return nil, err
	}

	mu := fsutil.LockForPath(path)
	mu.RLock()
	defer mu.RUnlock()

	return readRecords(path)
}

func (l *Ledger) Prune(ctx context.Context, account domain.AccountID, before time.Time, outcomes ...domain.Outcome) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	path, err := ledger.PartitionPath(l.root, account, fileExt)
	if err != nil {
		return 0, err
	}

	mu := fsutil.LockForPath(path)
	mu.Lock()
	defer mu.Unlock()

	records, err := readRecords(path)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	var buf bytes.Buffer
	pruned := 0
	for _, rec := range records {
		if rec.At.Before(before) && (len(outcomes) == 0 || slices.Contains(outcomes, rec.Outcome)) {
			pruned++
			continue
		}
		line, err := json.Marshal(rec)
		if err != nil {
			return 0, fmt.Errorf("encode ledger record: %w", err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	if pruned == 0 {
		return 0, nil
	}

	if err := fsutil.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return 0, fmt.Errorf("rewrite ledger file: %w", err)
	}

	return pruned, nil
}

func (l *Ledger) Close() error {
	return nil
}

// readRecords skips lines that fail to decode, such as a torn final write after a crash.
func readRecords(path string) ([]domain.ActionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	return decodeRecords(f)
}

func decodeRecords(r io.Reader) ([]domain.ActionRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxRecordSize)

	var records []domain.ActionRecord
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec domain.ActionRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan ledger file: %w", err)
	}

	return records, nil
}

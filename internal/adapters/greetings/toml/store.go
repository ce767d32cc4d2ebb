package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/bnema/social-actions-cli/internal/adapters/fsutil"
	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/bnema/social-actions-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

// Store keeps today's greetings in a single TOML file. Entries from a previous day are dropped on the
// next write.
type Store struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.GreetingStore = (*Store)(nil)

func NewStore(path string) (*Store, error) {
	absPath, err := fsutil.AbsPath(path)
	if err != nil {
		return nil, err
	}

	return &Store{path: absPath, mu: fsutil.LockForPath(absPath)}, nil
}

func (s *Store) Count(ctx context.Context, account domain.AccountID, target string, greeting domain.GreetingType, day time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.read()
	if err != nil {
		return 0, err
	}
	if file.Day != domain.GreetingDay(day) {
		return 0, nil
	}

	count := 0
	for _, entry := range file.Entries {
		if entry.Account == string(account) && sameHandle(entry.Target, target) && entry.Type == string(greeting) {
			count++
		}
	}

	return count, nil
}

func (s *Store) Remember(ctx context.Context, account domain.AccountID, target string, greeting domain.GreetingType, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.read()
	if err != nil {
		return err
	}

	day := domain.GreetingDay(at)
	if file.Day != day {
		file.Day = day
		file.Entries = nil
	}
	file.Entries = append(file.Entries, entrySchema{
		Account: string(account),
		Target:  domain.NormalizeHandle(target),
		Type:    string(greeting),
		At:      at,
	})
	file.applyDefaults()

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode greetings file: %w", err)
	}

	if err := fsutil.WriteFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("write greetings file: %w", err)
	}

	return nil
}

func (s *Store) read() (fileSchema, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read greetings file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode greetings file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func sameHandle(a, b string) bool {
	return strings.EqualFold(domain.NormalizeHandle(a), domain.NormalizeHandle(b))
}

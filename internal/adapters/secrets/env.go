package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/bnema/social-actions-cli/internal/ports"
)

var errEnvReadOnly = errors.New("environment secret store is read-only")

// EnvStore resolves keys from environment variables. It never writes.
type EnvStore struct {
	names  map[string]string
	lookup func(string) (string, bool)
}

var _ ports.SecretStore = (*EnvStore)(nil)

// NewEnvStore maps secret keys to environment variable names. Keys without a mapping fall back to
// SA_ followed by the upper-cased key with separators replaced by underscores.
func NewEnvStore(names map[string]string) *EnvStore {
	return &EnvStore{names: names, lookup: os.LookupEnv}
}

func (s *EnvStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := s.variable(key)
	value, ok := s.lookup(name)
	if !ok || strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("env secret %s: %w", name, domain.ErrSecretNotFound)
	}

	return strings.TrimSpace(value), nil
}

func (s *EnvStore) Put(context.Context, string, string) error {
	return errEnvReadOnly
}

func (s *EnvStore) Delete(context.Context, string) error {
	return errEnvReadOnly
}

func (s *EnvStore) variable(key string) string {
	if name, ok := s.names[key]; ok {
		return name
	}

	replacer := strings.NewReplacer("/", "_", "-", "_", ".", "_")
	return "SA_" + strings.ToUpper(replacer.Replace(strings.TrimSpace(key)))
}

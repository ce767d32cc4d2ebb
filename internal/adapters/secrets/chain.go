package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/social-actions-cli/internal/ports"
)

var errEmptyChain = errors.New("secret chain has no stores")

// Chain consults stores in order. Reads return the first hit; writes land in the first store that
// accepts them; deletes reach every store.
type Chain struct {
	stores []ports.SecretStore
}

var _ ports.SecretStore = (*Chain)(nil)

func NewChain(stores ...ports.SecretStore) (*Chain, error) {
	for i, store := range stores {
		if store == nil {
			return nil, fmt.Errorf("secret store %d is nil", i)
		}
	}
	if len(stores) == 0 {
		return nil, errEmptyChain
	}

	return &Chain{stores: stores}, nil
}

// NewDefaultChain reads from the environment, then pass, then files under fileRoot.
func NewDefaultChain(fileRoot string, envNames map[string]string) *Chain {
	return &Chain{stores: []ports.SecretStore{NewEnvStore(envNames), NewPassStore(), NewFileStore(fileRoot)}}
}

func (c *Chain) Get(ctx context.Context, key string) (string, error) {
	var errs []error
	for _, store := range c.stores {
		value, err := store.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if isContextError(err) {
			return "", err
		}
		errs = append(errs, err)
	}

	return "", fmt.Errorf("get secret %q: %w", key, errors.Join(errs...))
}

func (c *Chain) Put(ctx context.Context, key string, value string) error {
	var errs []error
	for _, store := range c.stores {
		err := store.Put(ctx, key, value)
		if err == nil {
			return nil
		}
		if isContextError(err) {
			return err
		}
		errs = append(errs, err)
	}

	return fmt.Errorf("put secret %q: %w", key, errors.Join(errs...))
}

func (c *Chain) Delete(ctx context.Context, key string) error {
	var errs []error
	for _, store := range c.stores {
		err := store.Delete(ctx, key)
		if err == nil || errors.Is(err, errEnvReadOnly) || errors.Is(err, ErrPassUnavailable) {
			continue
		}
		if isContextError(err) {
			return err
		}
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("delete secret %q: %w", key, errors.Join(errs...))
	}

	return nil
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

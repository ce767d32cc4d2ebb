package secrets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/social-actions-cli/internal/domain"
	portmocks "github.com/bnema/social-actions-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewFileStore(root)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "gemini/api_key", "key-1\n"))

	info, err := os.Stat(filepath.Join(root, "gemini", "api_key"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	value, err := store.Get(ctx, "gemini/api_key")
	require.NoError(t, err)
	assert.Equal(t, "key-1", value)

	require.NoError(t, store.Delete(ctx, "gemini/api_key"))
	require.NoError(t, store.Delete(ctx, "gemini/api_key"))

	_, err = store.Get(ctx, "gemini/api_key")
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestFileStoreRejectsEscapingKeys(t *testing.T) {
	t.Parallel()

	store := NewFileStore(t.TempDir())
	for _, key := range []string{"", "  ", "../outside", "/etc/passwd", "."} {
		err := store.Put(context.Background(), key, "x")
		assert.ErrorIs(t, err, domain.ErrInvalidConfig, key)
	}
}

func TestPassStorePrefixesEntries(t *testing.T) {
	t.Parallel()

	var calls [][]string
	store := &PassStore{
		prefix: PassPrefix,
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			calls = append(calls, args)
			if args[0] == "insert" {
				assert.Equal(t, "top-secret\n", input)
			}
			return "top-secret\nurl: https://aistudio.google.com\n", "", nil
		},
	}

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "gemini/api_key", "top-secret"))
	value, err := store.Get(ctx, "gemini/api_key")
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, "/gemini/api_key"))

	assert.Equal(t, "top-secret", value)
	assert.Equal(t, [][]string{
		{"insert", "-m", "-f", "social-actions/gemini/api_key"},
		{"show", "social-actions/gemini/api_key"},
		{"rm", "-f", "social-actions/gemini/api_key"},
	}, calls)
}

func TestPassStoreMapsMissingEntry(t *testing.T) {
	t.Parallel()

	store := &PassStore{
		prefix: PassPrefix,
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: social-actions/gemini/api_key is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), "gemini/api_key")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "pass get")

	require.NoError(t, store.Delete(context.Background(), "gemini/api_key"))
}

func TestEnvStoreLookup(t *testing.T) {
	t.Parallel()

	env := map[string]string{"GEMINI_API_KEY": " from-env ", "SA_OTHER_TOKEN": "other"}
	store := NewEnvStore(map[string]string{"gemini/api_key": "GEMINI_API_KEY"})
	store.lookup = func(name string) (string, bool) {
		value, ok := env[name]
		return value, ok
	}

	value, err := store.Get(context.Background(), "gemini/api_key")
	require.NoError(t, err)
	assert.Equal(t, "from-env", value)

	value, err = store.Get(context.Background(), "other/token")
	require.NoError(t, err)
	assert.Equal(t, "other", value)

	_, err = store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.Error(t, store.Put(context.Background(), "k", "v"))
}

func TestChainGetReturnsFirstHit(t *testing.T) {
	t.Parallel()

	first := portmocks.NewMockSecretStore(t)
	second := portmocks.NewMockSecretStore(t)
	third := portmocks.NewMockSecretStore(t)
	chain, err := NewChain(first, second, third)
	require.NoError(t, err)

	first.EXPECT().Get(mock.Anything, "gemini/api_key").Return("", domain.ErrSecretNotFound).Once()
	second.EXPECT().Get(mock.Anything, "gemini/api_key").Return("from-pass", nil).Once()

	value, err := chain.Get(context.Background(), "gemini/api_key")
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestChainGetJoinsErrors(t *testing.T) {
	t.Parallel()

	first := portmocks.NewMockSecretStore(t)
	second := portmocks.NewMockSecretStore(t)
	chain, err := NewChain(first, second)
	require.NoError(t, err)

	first.EXPECT().Get(mock.Anything, "k").Return("", ErrPassUnavailable).Once()
	second.EXPECT().Get(mock.Anything, "k").Return("", domain.ErrSecretNotFound).Once()

	_, err = chain.Get(context.Background(), "k")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPassUnavailable)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestChainStopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	first := portmocks.NewMockSecretStore(t)
	second := portmocks.NewMockSecretStore(t)
	chain, err := NewChain(first, second)
	require.NoError(t, err)

	first.EXPECT().Put(mock.Anything, "k", "v").Return(context.Canceled).Once()

	err = chain.Put(context.Background(), "k", "v")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChainPutSkipsReadOnlyStores(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	chain, err := NewChain(NewEnvStore(nil), NewFileStore(root))
	require.NoError(t, err)

	require.NoError(t, chain.Put(context.Background(), "gemini/api_key", "v"))
	require.NoError(t, chain.Delete(context.Background(), "gemini/api_key"))

	_, err = os.Stat(filepath.Join(root, "gemini", "api_key"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestNewChainRejectsNilStore(t *testing.T) {
	t.Parallel()

	_, err := NewChain(NewFileStore(t.TempDir()), nil)
	assert.Error(t, err)

	_, err = NewChain()
	assert.Error(t, err)
}

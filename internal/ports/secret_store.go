package ports

import "context"

// SecretStore holds credentials such as the content generator API key. Keys are slash-separated
// paths like "gemini/api_key". Get wraps domain.ErrSecretNotFound when the key is absent; Delete of
// an absent key is not an error.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

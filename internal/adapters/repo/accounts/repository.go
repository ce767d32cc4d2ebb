package accounts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/social-actions-cli/internal/adapters/fsutil"
	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/bnema/social-actions-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Repository reads the accounts file. The format follows the extension: .toml, or .yaml/.yml.
type Repository struct {
	accountsPath string
	mu           *sync.RWMutex
}

var _ ports.AccountRepository = (*Repository)(nil)

func NewRepository(accountsPath string) (*Repository, error) {
	if strings.TrimSpace(accountsPath) == "" {
		return nil, errors.New("accounts path is empty")
	}

	absPath, err := fsutil.AbsPath(accountsPath)
	if err != nil {
		return nil, err
	}

	return &Repository{accountsPath: absPath, mu: fsutil.LockForPath(absPath)}, nil
}

func (r *Repository) Path() string {
	return r.accountsPath
}

func (r *Repository) GetByID(ctx context.Context, id domain.AccountID) (domain.Account, error) {
	accounts, err := r.List(ctx)
	if err != nil {
		return domain.Account{}, err
	}

	for _, account := range accounts {
		if account.ID == id {
			return account, nil
		}
	}

	return domain.Account{}, domain.ErrAccountNotFound
}

func (r *Repository) List(ctx context.Context) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(r.accountsPath)
	accounts := make([]domain.Account, 0, len(file.Accounts))
	for _, entry := range file.Accounts {
		account, err := toDomain(entry, baseDir)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.accountsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read accounts file: %w", err)
	}

	var file fileSchema
	switch strings.ToLower(filepath.Ext(r.accountsPath)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
			return fileSchema{}, fmt.Errorf("decode accounts file: %w", err)
		}
	default:
		if err := toml.Unmarshal(data, &file); err != nil {
			return fileSchema{}, fmt.Errorf("decode accounts file: %w", err)
		}
	}

	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

package ledger

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bnema/social-actions-cli/internal/domain"
)

// PartitionPath maps an account to its ledger file under root.
func PartitionPath(root string, account domain.AccountID, ext string) (string, error) {
	name := strings.TrimSpace(string(account))
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("ledger partition for account %q: %w", account, domain.ErrInvalidConfig)
	}

	return filepath.Join(root, name+ext), nil
}

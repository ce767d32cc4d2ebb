package accounts

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/go-viper/mapstructure/v2"
)

// toDomain resolves every legacy config shape into the typed account model. Relative profile paths are
// anchored at baseDir, the directory holding the accounts file.
func toDomain(entry accountSchema, baseDir string) (domain.Account, error) {
	account := domain.Account{
		ID:     domain.AccountID(strings.TrimSpace(entry.ID)),
		Handle: domain.NormalizeHandle(entry.Handle),
		Profile: domain.BrowserProfile{
			Path:     resolvePath(entry.Browser.UserDataDir, baseDir),
			Headless: entry.Browser.Headless,
		},
		RateLimits: domain.RateLimits{
			PerHour: map[domain.ActionKind]int{
				domain.ActionFavorite: entry.RateLimits.LikePerHour,
				domain.ActionBookmark: entry.RateLimits.BookmarkPerHour,
				domain.ActionReshare:  entry.RateLimits.RetweetPerHour,
				domain.ActionComment:  entry.RateLimits.CommentPerHour,
			},
			MinInterval: time.Duration(entry.RateLimits.MinIntervalSeconds * float64(time.Second)),
		},
	}

	for name, enabled := range entry.Features {
		kind, err := domain.ParseActionKind(name)
		if err != nil {
			return domain.Account{}, fmt.Errorf("account %s features: %w", entry.ID, err)
		}
		if enabled {
			account.Enabled = account.Enabled.With(kind)
		}
	}

	targets, err := toTargets(entry)
	if err != nil {
		return domain.Account{}, fmt.Errorf("account %s policies: %w", entry.ID, err)
	}
	account.Targets = targets

	return account, nil
}

// toTargets orders the explicit targets list first, then any remaining per_target handles sorted.
func toTargets(entry accountSchema) ([]domain.TargetPolicy, error) {
	policies := make(map[string]domain.TargetPolicy, len(entry.Policies.PerTarget))
	for handle, raw := range entry.Policies.PerTarget {
		policy, err := toTargetPolicy(handle, raw)
		if err != nil {
			return nil, err
		}
		policies[strings.ToLower(domain.NormalizeHandle(handle))] = policy
	}

	targets := make([]domain.TargetPolicy, 0, len(entry.Targets)+len(policies))
	seen := map[string]struct{}{}
	for _, handle := range entry.Targets {
		key := strings.ToLower(domain.NormalizeHandle(handle))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		policy, ok := policies[key]
		if !ok {
			policy = domain.TargetPolicy{Handle: domain.NormalizeHandle(handle)}
		}
		targets = append(targets, policy)
	}

	remaining := make([]string, 0, len(policies))
	for key := range policies {
		if _, ok := seen[key]; !ok {
			remaining = append(remaining, key)
		}
	}
	sort.Strings(remaining)
	for _, key := range remaining {
		targets = append(targets, policies[key])
	}

	return targets, nil
}

func toTargetPolicy(handle string, raw any) (domain.TargetPolicy, error) {
	policy := domain.TargetPolicy{Handle: domain.NormalizeHandle(handle)}

	switch value := raw.(type) {
	case nil:
		return policy, nil
	case string:
		policy.FixedReply = strings.TrimSpace(value)
		return policy, nil
	case map[string]any:
		var decoded targetSchema
		if err := mapstructure.Decode(value, &decoded); err != nil {
			return domain.TargetPolicy{}, fmt.Errorf("target %s: %w: %w", handle, domain.ErrInvalidConfig, err)
		}

		if _, restricted := value["actions"]; restricted {
			actions, err := domain.ParseActionSet(decoded.Actions)
			if err != nil {
				return domain.TargetPolicy{}, fmt.Errorf("target %s: %w", handle, err)
			}
			policy.Actions = &actions
		}

		mode, err := greetingMode(decoded.Greet)
		if err != nil {
			return domain.TargetPolicy{}, fmt.Errorf("target %s: %w", handle, err)
		}

		policy.FixedReply = strings.TrimSpace(decoded.FixedComment)
		policy.Greeting = mode
		policy.Nickname = strings.TrimSpace(decoded.Nickname)
		return policy, nil
	default:
		return domain.TargetPolicy{}, fmt.Errorf("target %s: unsupported policy type %T: %w", handle, raw, domain.ErrInvalidConfig)
	}
}

// greetingMode accepts `greet = "auto"`, `greet = { mode = "auto" }` and booleans.
func greetingMode(raw any) (domain.GreetingMode, error) {
	switch value := raw.(type) {
	case nil:
		return domain.GreetingOff, nil
	case bool:
		if value {
			return domain.GreetingAuto, nil
		}
		return domain.GreetingOff, nil
	case string:
		return domain.ParseGreetingMode(value)
	case map[string]any:
		var decoded greetSchema
		if err := mapstructure.Decode(value, &decoded); err != nil {
			return "", fmt.Errorf("greet: %w: %w", domain.ErrInvalidConfig, err)
		}
		return domain.ParseGreetingMode(decoded.Mode)
	default:
		return "", fmt.Errorf("greet: unsupported type %T: %w", raw, domain.ErrInvalidConfig)
	}
}

func resolvePath(path string, baseDir string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

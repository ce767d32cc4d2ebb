package application

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/bnema/social-actions-cli/internal/ports"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

type greetingKeyword struct {
	keyword  string
	greeting domain.GreetingType
}

// Checked in order; longer phrases come before their prefixes.
var greetingKeywords = []greetingKeyword{
	{"おはようございます", domain.GreetingMorning},
	{"おはよう", domain.GreetingMorning},
	{"こんにちは", domain.GreetingAfternoon},
	{"こんにちわ", domain.GreetingAfternoon},
	{"こんばんは", domain.GreetingEvening},
	{"こんばんわ", domain.GreetingEvening},
	{"おやすみ", domain.GreetingNight},
	{"good morning", domain.GreetingGoodMorning},
	{"gm", domain.GreetingGoodMorning},
	{"good evening", domain.GreetingGoodEvening},
	{"good night", domain.GreetingGoodNight},
	{"goodnight", domain.GreetingGoodNight},
	{"gn", domain.GreetingGoodNight},
	{"hello", domain.GreetingHello},
	{"hi", domain.GreetingHello},
}

var foldCaser = cases.Fold()

// GreetingService picks greeting text for a target and tracks how often each greeting was sent
// today so the first one of the day reads differently from the rest.
type GreetingService struct {
	store ports.GreetingStore
	clock ports.Clock
	pick  func(n int) int
}

func NewGreetingService(store ports.GreetingStore, clock ports.Clock) *GreetingService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &GreetingService{store: store, clock: clock, pick: rand.IntN}
}

// DetectGreeting reports the greeting the post opens with or contains.
func DetectGreeting(text string) (domain.GreetingType, bool) {
	normalized := foldCaser.String(norm.NFKC.String(text))
	if strings.TrimSpace(normalized) == "" {
		return "", false
	}

	for _, kw := range greetingKeywords {
		if containsKeyword(normalized, kw.keyword) {
			return kw.greeting, true
		}
	}
	return "", false
}

// containsKeyword matches ASCII keywords on word boundaries so "gm" does not hit "gmail".
func containsKeyword(text string, keyword string) bool {
	if !isASCII(keyword) {
		return strings.Contains(text, keyword)
	}

	for start := 0; ; {
		idx := strings.Index(text[start:], keyword)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(keyword)
		if (idx == 0 || !isWordByte(text[idx-1])) && (end == len(text) || !isWordByte(text[end])) {
			return true
		}
		start = idx + 1
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// Select decides which greeting, if any, answers post under mode.
func (g *GreetingService) Select(mode domain.GreetingMode, post domain.Post) (domain.GreetingType, bool) {
	switch mode {
	case domain.GreetingAuto:
		return DetectGreeting(post.Text)
	case domain.GreetingFixed:
		return domain.TimeOfDayGreeting(g.clock.Now()), true
	default:
		return "", false
	}
}

// Compose renders the reply text for a greeting source without recording it.
func (g *GreetingService) Compose(ctx context.Context, account domain.AccountID, target string, src domain.ReplySource) (string, error) {
	phrases, ok := domain.GreetingVariations[src.Greeting]
	if !ok || len(phrases.First) == 0 {
		return withNickname(src.Nickname, domain.FallbackGreeting), nil
	}

	if src.Mode == domain.GreetingFixed {
		return withNickname(src.Nickname, phrases.First[0]), nil
	}

	count, err := g.store.Count(ctx, account, strings.ToLower(target), src.Greeting, g.clock.Now())
	if err != nil {
		return "", fmt.Errorf("count greetings: %w", err)
	}

	candidates := phrases.First
	if count > 0 && len(phrases.Repeat) > 0 {
		candidates = phrases.Repeat
	}

	return withNickname(src.Nickname, candidates[g.pick(len(candidates))]), nil
}

func (g *GreetingService) Remember(ctx context.Context, account domain.AccountID, target string, greeting domain.GreetingType) error {
	if err := g.store.Remember(ctx, account, strings.ToLower(target), greeting, g.clock.Now()); err != nil {
		return fmt.Errorf("remember greeting: %w", err)
	}
	return nil
}

func withNickname(nickname string, greeting string) string {
	if nickname = strings.TrimSpace(nickname); nickname != "" {
		return nickname + "、" + greeting
	}
	return greeting
}

package application

import (
	"testing"
	"time"

	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/bnema/social-actions-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
)

func TestPolicyResolverResolve(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	greetings := NewGreetingService(mocks.NewMockGreetingStore(t), steppingClock(t, &now))
	all := domain.AllActions()

	account := domain.Account{
		ID:      "maya",
		Handle:  "maya",
		Enabled: domain.NewActionSet(domain.ActionFavorite, domain.ActionBookmark, domain.ActionComment),
		Targets: []domain.TargetPolicy{
			{Handle: "fixed", FixedReply: "  素敵🩷 ", Greeting: domain.GreetingAuto},
			{Handle: "narrow", Actions: actionSet(domain.ActionFavorite, domain.ActionReshare)},
			{Handle: "greeter", Greeting: domain.GreetingAuto, Nickname: "ぐり"},
			{Handle: "always", Greeting: domain.GreetingFixed},
			{Handle: "wide", Actions: &all},
		},
	}
	hello := domain.Post{Text: "こんにちは！"}
	plain := domain.Post{Text: "lunch"}

	tests := []struct {
		name      string
		target    string
		post      domain.Post
		generator bool
		want      domain.ResolvedPolicy
	}{
		{
			name:   "fixed reply wins over greeting",
			target: "fixed",
			post:   hello,
			want: domain.ResolvedPolicy{
				Allowed: account.Enabled,
				Reply:   domain.ReplySource{Kind: domain.ReplyFixed, Text: "素敵🩷"},
			},
		},
		{
			name:   "explicit actions narrow and never widen",
			target: "narrow",
			post:   hello,
			want:   domain.ResolvedPolicy{Allowed: domain.NewActionSet(domain.ActionFavorite)},
		},
		{
			name:   "all actions still bounded by account",
			target: "wide",
			post:   plain,
			want:   domain.ResolvedPolicy{Allowed: domain.NewActionSet(domain.ActionFavorite, domain.ActionBookmark)},
		},
		{
			name:   "auto greeting on matching post",
			target: "greeter",
			post:   hello,
			want: domain.ResolvedPolicy{
				Allowed: account.Enabled,
				Reply: domain.ReplySource{
					Kind:     domain.ReplyGreeting,
					Greeting: domain.GreetingAfternoon,
					Mode:     domain.GreetingAuto,
					Nickname: "ぐり",
				},
			},
		},
		{
			name:   "auto greeting without match and no generator drops comment",
			target: "greeter",
			post:   plain,
			want:   domain.ResolvedPolicy{Allowed: domain.NewActionSet(domain.ActionFavorite, domain.ActionBookmark)},
		},
		{
			name:      "auto greeting without match falls back to generator",
			target:    "greeter",
			post:      plain,
			generator: true,
			want: domain.ResolvedPolicy{
				Allowed: account.Enabled,
				Reply:   domain.ReplySource{Kind: domain.ReplyGenerated, Nickname: "ぐり"},
			},
		},
		{
			name:   "fixed greeting mode answers every post",
			target: "always",
			post:   plain,
			want: domain.ResolvedPolicy{
				Allowed: account.Enabled,
				Reply:   domain.ReplySource{Kind: domain.ReplyGreeting, Greeting: domain.GreetingAfternoon, Mode: domain.GreetingFixed},
			},
		},
		{
			name:   "unconfigured target inherits account actions",
			target: "stranger",
			post:   plain,
			want:   domain.ResolvedPolicy{Allowed: domain.NewActionSet(domain.ActionFavorite, domain.ActionBookmark)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewPolicyResolver(greetings, nil)
			if tt.generator {
				resolver = NewPolicyResolver(greetings, mocks.NewMockReplyGenerator(t))
			}

			got := resolver.Resolve(account, tt.target, tt.post)
			assert.Equal(t, tt.want, got)
			assert.True(t, account.Enabled.Intersect(got.Allowed) == got.Allowed)
		})
	}
}

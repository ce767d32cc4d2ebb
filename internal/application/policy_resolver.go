package application

import (
	"strings"

	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/bnema/social-actions-cli/internal/ports"
)

// PolicyResolver narrows an account's enabled actions to what a target allows and decides where
// reply text comes from.
type PolicyResolver struct {
	greetings *GreetingService
	generator ports.ReplyGenerator
}

// NewPolicyResolver accepts a nil generator; generated replies are then never offered.
func NewPolicyResolver(greetings *GreetingService, generator ports.ReplyGenerator) *PolicyResolver {
	return &PolicyResolver{greetings: greetings, generator: generator}
}

func (r *PolicyResolver) Resolve(account domain.Account, targetHandle string, post domain.Post) domain.ResolvedPolicy {
	target, ok := account.Target(targetHandle)
	if !ok {
		target = domain.TargetPolicy{Handle: domain.NormalizeHandle(targetHandle)}
	}

	allowed := account.Enabled
	if target.Actions != nil {
		allowed = allowed.Intersect(*target.Actions)
	}

	resolved := domain.ResolvedPolicy{Allowed: allowed}
	if !allowed.Has(domain.ActionComment) {
		return resolved
	}

	resolved.Reply = r.replySource(target, post)
	if resolved.Reply.Kind == domain.ReplyNone {
		resolved.Allowed = allowed.Without(domain.ActionComment)
	}

	return resolved
}

func (r *PolicyResolver) replySource(target domain.TargetPolicy, post domain.Post) domain.ReplySource {
	if text := strings.TrimSpace(target.FixedReply); text != "" {
		return domain.ReplySource{Kind: domain.ReplyFixed, Text: text}
	}

	if r.greetings != nil {
		if greeting, ok := r.greetings.Select(target.Greeting, post); ok {
			return domain.ReplySource{
				Kind:     domain.ReplyGreeting,
				Greeting: greeting,
				Mode:     target.Greeting,
				Nickname: target.Nickname,
			}
		}
	}

	if r.generator != nil {
		return domain.ReplySource{Kind: domain.ReplyGenerated, Nickname: target.Nickname}
	}

	return domain.ReplySource{}
}

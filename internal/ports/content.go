package ports

import (
	"context"

	"github.com/bnema/social-actions-cli/internal/domain"
)

type ThreadContext struct {
	Account  domain.AccountID
	Handle   string
	Target   string
	Nickname string
	Post     domain.Post
}

type ReplyGenerator interface {
	// GenerateReply returns the reply text, or an empty string when nothing suitable was produced.
	GenerateReply(ctx context.Context, thread ThreadContext) (string, error)
}

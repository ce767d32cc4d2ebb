package application

import (
	"context"
	"time"

	"github.com/bnema/social-actions-cli/internal/ports"
	"golang.org/x/time/rate"
)

// IntervalPacer spaces calls at least interval apart. The first Wait returns immediately.
type IntervalPacer struct {
	limiter *rate.Limiter
}

var _ ports.Pacer = (*IntervalPacer)(nil)

// NewPacer returns a no-op pacer for a non-positive interval.
func NewPacer(interval time.Duration) ports.Pacer {
	if interval <= 0 {
		return noPacer{}
	}
	return &IntervalPacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

func (p *IntervalPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

type noPacer struct{}

func (noPacer) Wait(ctx context.Context) error {
	return ctx.Err()
}

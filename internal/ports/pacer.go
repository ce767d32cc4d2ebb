package ports

import "context"

type Pacer interface {
	Wait(ctx context.Context) error
}

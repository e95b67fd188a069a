package queue

import (
	"context"
	"errors"
)

// DigestTokensKey holds the run tokens of the digest job.
const DigestTokensKey = "crm:digest:tokens"

// TokenManager hands out a fixed number of run tokens shared by every
// process that points at the same store.
type TokenManager interface {
	AcquireToken(ctx context.Context) error

	ReleaseToken(ctx context.Context) error
}

var ErrNoTokenAvailable = errors.New("no run token available")

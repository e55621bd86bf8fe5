package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sreedhargoud/camrental-backend/pkg/redis"
)

// IdempotencyGuard deduplicates gateway callbacks. Razorpay retries
// verification callbacks, so each payment id is processed once per TTL
// window; the booking finalizer's status guard backstops anything that
// slips through after expiry.
type IdempotencyGuard struct {
	store redis.IdempotencyStore
	ttl   time.Duration
	scope string
}

func NewIdempotencyGuard(store redis.IdempotencyStore, ttl time.Duration, scope string) (*IdempotencyGuard, error) {
	if store == nil {
		return nil, errors.New("idempotency store is required")
	}
	if ttl < 0 {
		return nil, errors.New("ttl must be non-negative")
	}
	if scope == "" {
		return nil, errors.New("scope is required")
	}
	return &IdempotencyGuard{
		store: store,
		ttl:   ttl,
		scope: scope,
	}, nil
}

// CheckAndMark reports whether the payment id was already seen, marking
// it as seen otherwise.
func (g *IdempotencyGuard) CheckAndMark(ctx context.Context, paymentID string) (bool, error) {
	if paymentID == "" {
		return false, errors.New("payment id is required")
	}
	key := g.store.IdempotencyKey(g.scope, paymentID)
	set, err := g.store.SetNX(ctx, key, "1", g.ttl)
	if err != nil {
		return false, fmt.Errorf("set idempotency key: %w", err)
	}
	return !set, nil
}

// Release frees the mark so a failed finalization can be retried.
func (g *IdempotencyGuard) Release(ctx context.Context, paymentID string) error {
	if paymentID == "" {
		return errors.New("payment id is required")
	}
	key := g.store.IdempotencyKey(g.scope, paymentID)
	return g.store.Del(ctx, key)
}

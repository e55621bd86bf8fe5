package payments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	keys map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{keys: map[string]string{}}
}

func (f *fakeStore) Get(ctx context.Context, key string) (string, error) {
	return f.keys[key], nil
}

func (f *fakeStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.keys[key] = "1"
	return nil
}

func (f *fakeStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, ok := f.keys[key]; ok {
		return false, nil
	}
	f.keys[key] = "1"
	return true, nil
}

func (f *fakeStore) IdempotencyKey(scope, id string) string {
	return "cr:idempotency:" + scope + ":" + id
}

func (f *fakeStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.keys, key)
	}
	return nil
}

func TestIdempotencyGuardMarksOnce(t *testing.T) {
	guard, err := NewIdempotencyGuard(newFakeStore(), time.Hour, "razorpay")
	require.NoError(t, err)

	seen, err := guard.CheckAndMark(context.Background(), "pay_123")
	require.NoError(t, err)
	assert.False(t, seen)

	seen, err = guard.CheckAndMark(context.Background(), "pay_123")
	require.NoError(t, err)
	assert.True(t, seen)

	// Different payments never collide.
	seen, err = guard.CheckAndMark(context.Background(), "pay_456")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestIdempotencyGuardRelease(t *testing.T) {
	guard, err := NewIdempotencyGuard(newFakeStore(), time.Hour, "razorpay")
	require.NoError(t, err)

	_, err = guard.CheckAndMark(context.Background(), "pay_123")
	require.NoError(t, err)
	require.NoError(t, guard.Release(context.Background(), "pay_123"))

	seen, err := guard.CheckAndMark(context.Background(), "pay_123")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestNewIdempotencyGuardValidation(t *testing.T) {
	_, err := NewIdempotencyGuard(nil, time.Hour, "razorpay")
	require.Error(t, err)

	_, err = NewIdempotencyGuard(newFakeStore(), time.Hour, "")
	require.Error(t, err)

	_, err = NewIdempotencyGuard(newFakeStore(), -time.Hour, "razorpay")
	require.Error(t, err)
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

const idempotencyKeyPrefix = "idempotency:payment:"

type RedisIdempotencyStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisIdempotencyStore(client redis.Cmdable, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{client: client, ttl: ttl}
}

func (s *RedisIdempotencyStore) Claim(ctx context.Context, key, fingerprint string) (*shared.IdempotencyRecord, error) {
	value, err := json.Marshal(shared.IdempotencyRecord{
		State:       shared.IdempotencyProcessing,
		Fingerprint: fingerprint,
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode idempotency record")
	}

	// A key can expire between SETNX and GET; one more round settles it.
	for range 2 {
		ok, err := s.client.SetNX(ctx, idempotencyKeyPrefix+key, value, s.ttl).Result()
		if err != nil {
			return nil, errs.Wrap(err, "failed to claim idempotency key")
		}
		if ok {
			return nil, nil
		}

		raw, err := s.client.Get(ctx, idempotencyKeyPrefix+key).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, errs.Wrap(err, "failed to read idempotency key")
		}

		var existing shared.IdempotencyRecord
		if err := json.Unmarshal(raw, &existing); err != nil {
			return nil, errs.Wrap(err, "failed to decode idempotency record")
		}
		return &existing, nil
	}
	return nil, errs.Newf("idempotency key %q kept expiring while being claimed", key)
}

func (s *RedisIdempotencyStore) Complete(ctx context.Context, key, fingerprint string, paymentID int64) error {
	value, err := json.Marshal(shared.IdempotencyRecord{
		State:       shared.IdempotencyCompleted,
		Fingerprint: fingerprint,
		PaymentID:   paymentID,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode idempotency record")
	}
	if err := s.client.Set(ctx, idempotencyKeyPrefix+key, value, s.ttl).Err(); err != nil {
		return errs.Wrap(err, "failed to complete idempotency key")
	}
	return nil
}

func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyKeyPrefix+key).Err(); err != nil {
		return errs.Wrap(err, "failed to release idempotency key")
	}
	return nil
}

// NopIdempotencyStore claims every key, so retried requests are processed
// again. It stands in when Redis is not configured.
type NopIdempotencyStore struct{}

func (NopIdempotencyStore) Claim(context.Context, string, string) (*shared.IdempotencyRecord, error) {
	return nil, nil
}

func (NopIdempotencyStore) Complete(context.Context, string, string, int64) error { return nil }

func (NopIdempotencyStore) Release(context.Context, string) error { return nil }

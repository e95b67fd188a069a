package queue

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"
)

// RedisTokenManager keeps tokens as elements of a Redis list. A marker key
// records that the list was filled, so that a process starting while a
// token is held does not add a second one.
type RedisTokenManager struct {
	client   rueidis.Client
	key      string
	readyKey string
}

func NewRedisTokenManager(client rueidis.Client, key string) *RedisTokenManager {
	return &RedisTokenManager{
		client:   client,
		key:      key,
		readyKey: key + ":ready",
	}
}

func (r *RedisTokenManager) AcquireToken(ctx context.Context) error {
	cmd := r.client.B().Lpop().Key(r.key).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return ErrNoTokenAvailable
		}
		return err
	}
	return nil
}

func (r *RedisTokenManager) ReleaseToken(ctx context.Context) error {
	cmd := r.client.B().Rpush().Key(r.key).Element("1").Build()
	return r.client.Do(ctx, cmd).Error()
}

// EnsureTokens fills the pool with count tokens unless another process
// already did. With reset the pool is refilled unconditionally, which
// recovers tokens lost by a process that died while holding one.
func (r *RedisTokenManager) EnsureTokens(ctx context.Context, count int, reset bool) error {
	if count < 1 {
		return fmt.Errorf("token count must be positive, got %d", count)
	}

	mark := r.client.B().Set().Key(r.readyKey).Value("1")
	if reset {
		if err := r.client.Do(ctx, mark.Build()).Error(); err != nil {
			return err
		}
	} else {
		err := r.client.Do(ctx, mark.Nx().Build()).Error()
		if rueidis.IsRedisNil(err) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	tokens := make([]string, count)
	for i := range tokens {
		tokens[i] = "1"
	}
	for _, resp := range r.client.DoMulti(ctx,
		r.client.B().Del().Key(r.key).Build(),
		r.client.B().Rpush().Key(r.key).Element(tokens...).Build(),
	) {
		if err := resp.Error(); err != nil {
			return err
		}
	}
	return nil
}

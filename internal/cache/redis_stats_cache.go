package cache

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/rueidis"
	log "github.com/sirupsen/logrus"

	model "realestate-crm.com/realestate-crm/internal/models"
)

const DashboardStatsKey = "crm:dashboard:stats"

// RedisStatsCache keeps the latest dashboard counters in Redis. Values
// computed on another day, or before the last invalidation, are treated as
// a miss.
type RedisStatsCache struct {
	client        rueidis.Client
	key           string
	generationKey string
	ttl           time.Duration
}

type statsEntry struct {
	Generation int64                `json:"generation"`
	Stats      model.DashboardStats `json:"stats"`
}

func NewRedisStatsCache(client rueidis.Client, ttl time.Duration) *RedisStatsCache {
	if client == nil {
		panic("cache.NewRedisStatsCache: client is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &RedisStatsCache{
		client:        client,
		key:           DashboardStatsKey,
		generationKey: DashboardStatsKey + ":generation",
		ttl:           ttl,
	}
}

func (c *RedisStatsCache) Get(ctx context.Context, day time.Time) (*model.DashboardStats, int64, bool) {
	results := c.client.DoMulti(ctx,
		c.client.B().Get().Key(c.generationKey).Build(),
		c.client.B().Get().Key(c.key).Build(),
	)

	generation, err := results[0].AsInt64()
	if err != nil && !rueidis.IsRedisNil(err) {
		log.WithError(err).Warn("stats cache: read failed")
		return nil, 0, false
	}

	data, err := results[1].AsBytes()
	if err != nil {
		if !rueidis.IsRedisNil(err) {
			log.WithError(err).Warn("stats cache: read failed")
		}
		return nil, generation, false
	}

	var entry statsEntry
	if err := sonic.Unmarshal(data, &entry); err != nil {
		log.WithError(err).Warn("stats cache: dropping undecodable entry")
		c.Invalidate(ctx)
		return nil, generation + 1, false
	}
	if entry.Generation != generation || !entry.Stats.Day.Equal(model.DateOf(day)) {
		return nil, generation, false
	}
	return &entry.Stats, generation, true
}

// Set stores stats computed while generation was current.
func (c *RedisStatsCache) Set(ctx context.Context, stats model.DashboardStats, generation int64) {
	data, err := sonic.Marshal(statsEntry{Generation: generation, Stats: stats})
	if err != nil {
		log.WithError(err).Warn("stats cache: encode failed")
		return
	}

	set := c.client.B().Set().Key(c.key).Value(rueidis.BinaryString(data))
	var cmd rueidis.Completed
	if secs := int64(c.ttl / time.Second); secs > 0 {
		cmd = set.ExSeconds(secs).Build()
	} else {
		cmd = set.Build()
	}
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		log.WithError(err).Warn("stats cache: write failed")
	}
}

func (c *RedisStatsCache) Invalidate(ctx context.Context) {
	for _, resp := range c.client.DoMulti(ctx,
		c.client.B().Incr().Key(c.generationKey).Build(),
		c.client.B().Del().Key(c.key).Build(),
	) {
		if err := resp.Error(); err != nil {
			log.WithError(err).Warn("stats cache: invalidate failed")
			return
		}
	}
}

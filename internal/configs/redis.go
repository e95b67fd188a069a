package config

import (
	"github.com/redis/rueidis"
	log "github.com/sirupsen/logrus"
)

// NewRedisClient connects to addr. An empty address means Redis is not
// configured and yields a nil client.
func NewRedisClient(addr string) rueidis.Client {
	if addr == "" {
		return nil
	}

	redisClient, err := rueidis.NewClient(
		rueidis.ClientOption{
			InitAddress: []string{addr},
		},
	)
	if err != nil {
		log.Fatalf("failed to create redis client: %v", err)
	}

	return redisClient
}

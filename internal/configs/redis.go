package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/rueidis"
)

// NewRedisClient connects to addr and checks the server answers PING before
// any reminder is written to it.
func NewRedisClient(addr string) rueidis.Client {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{addr},
		DisableCache: true,
	})
	if err != nil {
		log.Fatalf("failed to create redis client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		log.Fatalf("redis at %s is not reachable: %v", addr, err)
	}

	return client
}

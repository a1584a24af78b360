package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const relayChannelPrefix = "plg:events:"

// RedisRelay fans events out through redis pub/sub so that a popup served by one
// instance reaches the checkout page stream held by another.
type RedisRelay struct {
	redis *redis.Client
	local EventSender
}

func NewRedisRelay(redisClient *redis.Client, local EventSender) *RedisRelay {
	return &RedisRelay{
		redis: redisClient,
		local: local,
	}
}

func (r *RedisRelay) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err = r.redis.Publish(ctx, relayChannelPrefix+event.Topic, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Run subscribes to every relayed topic and re-broadcasts locally until ctx is done.
// ready is closed once the subscription is confirmed by redis.
func (r *RedisRelay) Run(ctx context.Context, ready chan<- struct{}) error {
	pubsub := r.redis.PSubscribe(ctx, relayChannelPrefix+"*")
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to relay channel: %w", err)
	}
	if ready != nil {
		close(ready)
	}
	log.Info().Msg("event relay subscribed ✅")

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}

			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Warn().Err(err).Str("channel", msg.Channel).Msg("dropped malformed relayed event")
				continue
			}
			r.local.Broadcast(event)
		}
	}
}

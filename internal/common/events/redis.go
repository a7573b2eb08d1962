// internal/common/events/redis.go
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher publishes each event as JSON on <channel>:<type>.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) topic(eventType string) string {
	return p.channel + ":" + eventType
}

func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.Type, err)
	}
	if err := p.client.Publish(ctx, p.topic(event.Type), data).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

// Subscribe calls handle for every event of the given types until ctx is
// done. With no types it receives every event on the channel. Messages that
// do not decode are dropped.
func (p *RedisPublisher) Subscribe(ctx context.Context, handle func(Event), types ...string) error {
	var sub *redis.PubSub
	if len(types) == 0 {
		sub = p.client.PSubscribe(ctx, p.topic("*"))
	} else {
		topics := make([]string, len(types))
		for i, t := range types {
			topics[i] = p.topic(t)
		}
		sub = p.client.Subscribe(ctx, topics...)
	}
	defer sub.Close()

	// wait for the subscription to be confirmed so no publish is missed
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			handle(event)
		}
	}
}

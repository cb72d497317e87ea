package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhishek622/interviewSession/pkg/model"
	"github.com/redis/go-redis/v9"
)

const TransitionChannel = "interview.transitions"

// RedisPublisher fans transition events out over redis pub/sub.
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: TransitionChannel}
}

func (p *RedisPublisher) Publish(ctx context.Context, ev model.TransitionEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal transition event: %w", err)
	}
	if err := p.rdb.Publish(ctx, p.channel, b).Err(); err != nil {
		return fmt.Errorf("publish transition event: %w", err)
	}
	return nil
}

package notify

import (
	"context"
	"encoding/json"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/multitimer/backend/domain"
)

// RedisNotifier publishes alerts as JSON to a Redis pub/sub channel so
// external processes (a push relay, a desktop agent) can deliver them.
type RedisNotifier struct {
	client  *redislib.Client
	channel string
}

// alertMessage is the wire shape published to the channel.
type alertMessage struct {
	Title string       `json:"title"`
	Body  string       `json:"body"`
	Timer domain.Timer `json:"timer"`
	At    time.Time    `json:"at"`
}

// NewRedisNotifier builds a pub/sub notifier on the given channel.
func NewRedisNotifier(client *redislib.Client, channel string) *RedisNotifier {
	if channel == "" {
		channel = "timer:alerts"
	}
	return &RedisNotifier{client: client, channel: channel}
}

func (n *RedisNotifier) Notify(ctx context.Context, title, body string, timer domain.Timer) error {
	payload, err := json.Marshal(alertMessage{
		Title: title,
		Body:  body,
		Timer: timer,
		At:    time.Now(),
	})
	if err != nil {
		return err
	}
	return n.client.Publish(ctx, n.channel, payload).Err()
}

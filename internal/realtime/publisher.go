package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Event names published on a user's private channel.
const (
	EventCaptureReceived       = "capture-received"
	EventInstantCaptureRequest = "instant-capture-request"
	EventCaptureAnalyzed       = "capture-analyzed"
	EventRequestTimeout        = "instant-capture-timeout"
)

// Publisher relays an event to one user's private channel. Delivery is
// best-effort: with no subscriber the publish is a no-op, and callers must
// never assume the message arrived.
type Publisher interface {
	Publish(ctx context.Context, userID uuid.UUID, event string, payload any) error
}

type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

type envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

func (p *RedisPublisher) Publish(ctx context.Context, userID uuid.UUID, event string, payload any) error {
	data, err := json.Marshal(envelope{Event: event, Payload: payload})
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, userChannel(userID), data).Err()
}

func userChannel(userID uuid.UUID) string {
	return fmt.Sprintf("monitoring:user:%s", userID)
}

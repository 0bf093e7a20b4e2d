// Package broadcast publishes warehouse events to the live dashboard over
// Redis pub/sub. Publishing is fire-and-forget: it runs after the database
// transaction has committed and a failed publish never fails the operation.
package broadcast

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"nexwms-backend/pkg/logger"
)

const channel = "dashboard"

// Event types pushed to the dashboard channel.
const (
	EventOrderShipped  = "ORDER_SHIPPED"
	EventWaveGenerated = "WAVE_GENERATED"
	EventStockAdjusted = "STOCK_ADJUSTED"
)

type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Broadcaster is the outbound event port. Services depend on this so tests
// can capture events without Redis.
type Broadcaster interface {
	Publish(ctx context.Context, eventType string, payload interface{})
}

type redisBroadcaster struct {
	client *redis.Client
}

func NewRedisBroadcaster(client *redis.Client) Broadcaster {
	return &redisBroadcaster{client: client}
}

// Publish sends the event and swallows any failure. Callers must only invoke
// this after their transaction has committed.
func (b *redisBroadcaster) Publish(ctx context.Context, eventType string, payload interface{}) {
	event := Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("broadcast marshal failed", err)
		return
	}

	// Bound the publish so a wedged Redis cannot stall the request path.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	if err := b.client.Publish(pubCtx, channel, data).Err(); err != nil {
		logger.Error("broadcast publish failed", err)
	}
}

// NopBroadcaster discards events. Used in tests and offline tooling.
type NopBroadcaster struct{}

func (NopBroadcaster) Publish(context.Context, string, interface{}) {}

package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/marcelsud/troquecommerce-bridge/webhook"
	"github.com/redis/go-redis/v9"
)

/* Redis List implementation of webhook.Repository
 * LPUSH keeps the newest event at index 0, LTRIM caps the list.
 * Both run in one MULTI/EXEC so no reader sees the list above capacity
 */

type Repository struct {
	client   *redis.Client
	key      string
	capacity int
}

// record is the JSON stored per list element
type record struct {
	ID         string          `json:"id"`
	Code       string          `json:"event_id"`
	Label      string          `json:"event_name"`
	Timestamp  time.Time       `json:"timestamp"`
	ReceivedAt time.Time       `json:"received_at"`
	Payload    json.RawMessage `json:"payload"`
}

// NewRepository creates a new Redis repository
func NewRepository(addr, password string, db int, key string, capacity int) (*Repository, error) {
	if key == "" {
		return nil, fmt.Errorf("key cannot be empty")
	}
	if capacity < 1 {
		return nil, fmt.Errorf("capacity must be at least 1 (got %d)", capacity)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &Repository{
		client:   client,
		key:      key,
		capacity: capacity,
	}, nil
}

// Append pushes the event to the head of the list and trims the tail
func (r *Repository) Append(ctx context.Context, event webhook.Event) error {
	data, err := json.Marshal(record{
		ID:         event.ID,
		Code:       event.Code,
		Label:      event.Label,
		Timestamp:  event.Timestamp,
		ReceivedAt: event.ReceivedAt,
		Payload:    event.Payload,
	})
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, r.key, data)
		pipe.LTrim(ctx, r.key, 0, int64(r.capacity-1))
		return nil
	})
	if err != nil {
		return fmt.Errorf("pushing event: %w", err)
	}
	return nil
}

// List returns every stored event, newest first
func (r *Repository) List(ctx context.Context) ([]webhook.Event, error) {
	items, err := r.client.LRange(ctx, r.key, 0, int64(r.capacity-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("reading events: %w", err)
	}

	events := make([]webhook.Event, 0, len(items))
	for _, item := range items {
		var rec record
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("unmarshaling event: %w", err)
		}
		events = append(events, webhook.Event{
			ID:         rec.ID,
			Code:       rec.Code,
			Label:      rec.Label,
			Timestamp:  rec.Timestamp,
			ReceivedAt: rec.ReceivedAt,
			Payload:    rec.Payload,
		})
	}
	return events, nil
}

// Count returns the list length
func (r *Repository) Count(ctx context.Context) (int, error) {
	n, err := r.client.LLen(ctx, r.key).Result()
	if err != nil {
		return 0, fmt.Errorf("counting events: %w", err)
	}
	return int(n), nil
}

// Capacity returns the maximum number of events kept
func (r *Repository) Capacity() int {
	return r.capacity
}

// Close closes the Redis connection
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Close()
}

// GetClient returns the underlying Redis client for advanced operations
func (r *Repository) GetClient() *redis.Client {
	return r.client
}

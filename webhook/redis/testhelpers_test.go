//go:build integration

package redis_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/marcelsud/troquecommerce-bridge/webhook"
	"github.com/marcelsud/troquecommerce-bridge/webhook/redis"
	"github.com/stretchr/testify/require"
	testcontainersredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

/* Test Helpers for Redis Integration Tests
 * Following the pattern from: https://eltonminetto.dev/post/2024-02-15-using-test-helpers/
 */

const testKey = "test:webhook-events"

// RedisContainer holds the Redis testcontainer and connection details
type RedisContainer struct {
	Container *testcontainersredis.RedisContainer
	Addr      string
}

// SetupRedisContainer creates and starts a Redis testcontainer
func SetupRedisContainer(t *testing.T, ctx context.Context) (*RedisContainer, func()) {
	t.Helper()

	redisContainer, err := testcontainersredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "failed to start Redis container")

	addr, err := redisContainer.ConnectionString(ctx)
	require.NoError(t, err, "failed to get Redis connection string")
	addr = strings.TrimPrefix(addr, "redis://")

	rc := &RedisContainer{
		Container: redisContainer,
		Addr:      addr,
	}

	cleanup := func() {
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Redis container: %v", err)
		}
	}

	return rc, cleanup
}

// CreateTestRepository creates a Redis repository connected to the test container
func CreateTestRepository(t *testing.T, addr string, capacity int) *redis.Repository {
	t.Helper()

	repo, err := redis.NewRepository(addr, "", 0, testKey, capacity)
	require.NoError(t, err, "failed to create Redis repository")

	return repo
}

// NewTestEvent builds an event with a unique id
func NewTestEvent(t *testing.T, index int) webhook.Event {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Millisecond)
	return webhook.Event{
		ID:         fmt.Sprintf("evt-%d-%d", index, now.UnixNano()),
		Code:       "6",
		Label:      webhook.LabelFor("6"),
		Timestamp:  now,
		ReceivedAt: now,
		Payload:    []byte(fmt.Sprintf(`{"webhook_event_id":6,"ecommerce_number":"%d"}`, index)),
	}
}

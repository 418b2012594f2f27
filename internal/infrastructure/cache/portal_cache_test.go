package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "portal:c1:catalog", Key("c1"))
}

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	if os.Getenv("INTEGRATION") != "1" {
		t.Skip("INTEGRATION=1 para correr contra Redis real")
	}
	ctx := context.Background()
	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctr.Terminate(ctx) })

	endpoint, err := ctr.Endpoint(ctx, "")
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestPortalCache_RoundTripAndInvalidate(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()
	c := NewPortalCache(client, time.Minute, zerolog.Nop())

	_, ok, err := c.Get(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, ok)

	in := &dto.PortalCatalogResponse{
		Company:  dto.PortalCompanyResponse{Name: "Bodega Sol", Slug: "bodega-sol"},
		Products: []dto.PortalProductResponse{{ID: "p1", Code: "A", Name: "Arroz", Price: decimal.RequireFromString("4.50"), Available: true}},
	}
	require.NoError(t, c.Set(ctx, "c1", in))

	got, ok, err := c.Get(ctx, "c1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Arroz", got.Products[0].Name)
	assert.True(t, got.Products[0].Price.Equal(in.Products[0].Price))

	ttl, err := client.TTL(ctx, Key("c1")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, c.Invalidate(ctx, "c1"))
	_, ok, err = c.Get(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPortalCache_CorruptEntryIsMiss(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()
	c := NewPortalCache(client, time.Minute, zerolog.Nop())

	require.NoError(t, client.Set(ctx, Key("c1"), "{no-json", time.Minute).Err())
	_, ok, err := c.Get(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, client.Exists(ctx, Key("c1")).Val())
}

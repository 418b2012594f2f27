// Package cache guarda en Redis el catálogo público de cada empresa.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Ventas-api/internal/application/catalog"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/portal"
	"github.com/jhoicas/Ventas-api/pkg/config"
)

var (
	_ portal.CatalogCache      = (*PortalCache)(nil)
	_ catalog.CacheInvalidator = (*PortalCache)(nil)
)

// PortalCache implementa portal.CatalogCache y catalog.CacheInvalidator sobre Redis.
type PortalCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewClient abre el cliente y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// NewPortalCache usa un cliente existente; quien lo creó lo cierra.
func NewPortalCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *PortalCache {
	return &PortalCache{client: client, ttl: ttl, log: log}
}

// Key devuelve la clave del catálogo de una empresa.
func Key(companyID string) string {
	return "portal:" + companyID + ":catalog"
}

// Get devuelve el catálogo cacheado de la empresa. ok=false si no hay entrada o si estaba corrupta.
func (c *PortalCache) Get(ctx context.Context, companyID string) (*dto.PortalCatalogResponse, bool, error) {
	data, err := c.client.Get(ctx, Key(companyID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var out dto.PortalCatalogResponse
	if err := json.Unmarshal(data, &out); err != nil {
		// Entrada corrupta: se borra y se trata como ausente.
		c.log.Warn().Err(err).Str("company_id", companyID).Msg("catálogo en caché ilegible")
		_ = c.client.Del(ctx, Key(companyID)).Err()
		return nil, false, nil
	}
	return &out, true, nil
}

// Set guarda el catálogo de la empresa por el TTL configurado.
func (c *PortalCache) Set(ctx context.Context, companyID string, catalog *dto.PortalCatalogResponse) error {
	data, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("marshal catálogo: %w", err)
	}
	if err := c.client.Set(ctx, Key(companyID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate borra el catálogo cacheado; se llama después de cada cambio de producto o categoría.
func (c *PortalCache) Invalidate(ctx context.Context, companyID string) error {
	if err := c.client.Del(ctx, Key(companyID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Package cache decora los extractores de órdenes con una caché Redis de TTL
// corto. Las extracciones cubren rangos largos sobre bases operativas: repetir
// la consulta por cada refresco del tablero castiga a Connexa y a SGM.
//
// La caché es estrictamente mejor-esfuerzo: cualquier error de Redis degrada a
// consultar directo, nunca rompe el reporte. La clave incluye fuente, rango y
// filtro; el TTL siempre es acotado.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/diarco-data/compras-monitor/internal/domain/entity"
	"github.com/diarco-data/compras-monitor/internal/domain/repository"
	"github.com/diarco-data/compras-monitor/pkg/logger"
)

var _ repository.SourceOrderRepository = (*SourceOrderCache)(nil)

// SourceOrderCache decorador de caché para el extractor de Connexa.
type SourceOrderCache struct {
	next repository.SourceOrderRepository
	rdb  *redis.Client
	ttl  time.Duration
	log  *logger.Logger
}

func NewSourceOrderCache(
	next repository.SourceOrderRepository,
	rdb *redis.Client,
	ttl time.Duration,
	log *logger.Logger,
) *SourceOrderCache {
	return &SourceOrderCache{next: next, rdb: rdb, ttl: ttl, log: log}
}

func (c *SourceOrderCache) ListOrders(ctx context.Context, f repository.OrderFilter) ([]entity.SourceOrder, error) {
	key := "ci:ordenes:" + f.CacheKey()

	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var rows []entity.SourceOrder
		if err := json.Unmarshal(raw, &rows); err == nil {
			return rows, nil
		}
		// Payload corrupto: se descarta y se relee de la fuente.
		c.rdb.Del(ctx, key)
	} else if err != redis.Nil {
		c.log.Warn().Err(err).Str("clave", key).Msg("caché no disponible, consulta directa")
	}

	rows, err := c.next.ListOrders(ctx, f)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(rows); err == nil {
		if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Str("clave", key).Msg("no se pudo guardar en caché")
		}
	}
	return rows, nil
}

var _ repository.ERPOrderRepository = (*ERPOrderCache)(nil)

// ERPOrderCache decorador de caché para el extractor de SGM.
type ERPOrderCache struct {
	next repository.ERPOrderRepository
	rdb  *redis.Client
	ttl  time.Duration
	log  *logger.Logger
}

func NewERPOrderCache(
	next repository.ERPOrderRepository,
	rdb *redis.Client,
	ttl time.Duration,
	log *logger.Logger,
) *ERPOrderCache {
	return &ERPOrderCache{next: next, rdb: rdb, ttl: ttl, log: log}
}

func (c *ERPOrderCache) ListOrders(ctx context.Context, f repository.OrderFilter) ([]entity.ERPOrder, error) {
	key := "sgm:ordenes:" + f.CacheKey()

	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var rows []entity.ERPOrder
		if err := json.Unmarshal(raw, &rows); err == nil {
			return rows, nil
		}
		c.rdb.Del(ctx, key)
	} else if err != redis.Nil {
		c.log.Warn().Err(err).Str("clave", key).Msg("caché no disponible, consulta directa")
	}

	rows, err := c.next.ListOrders(ctx, f)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(rows); err == nil {
		if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Str("clave", key).Msg("no se pudo guardar en caché")
		}
	}
	return rows, nil
}

// NewClient abre el cliente Redis y lo verifica con un ping.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}

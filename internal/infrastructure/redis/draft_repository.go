// Package redis implementa el almacén de borradores sobre Redis (JSON + TTL).
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
	"github.com/jhoicas/Cotizador-api/pkg/config"
)

var _ repository.DraftRepository = (*DraftRepo)(nil)

const keyPrefix = "cotizador:draft:"

// NewClient abre el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// DraftRepo guarda cada borrador como JSON bajo su propia clave con expiración.
type DraftRepo struct {
	client goredis.Cmdable
	ttl    time.Duration
}

// NewDraftRepository construye el adaptador. ttl = 0 guarda sin expiración.
func NewDraftRepository(client goredis.Cmdable, ttl time.Duration) *DraftRepo {
	return &DraftRepo{client: client, ttl: ttl}
}

func key(id string) string { return keyPrefix + id }

// Save serializa y guarda el borrador, renovando su TTL.
func (r *DraftRepo) Save(ctx context.Context, doc *entity.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("serializar borrador: %w", err)
	}
	if err := r.client.Set(ctx, key(doc.ID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("guardar borrador: %w", err)
	}
	return nil
}

// Get lee el borrador; (nil, nil) si no existe o expiró.
func (r *DraftRepo) Get(ctx context.Context, id string) (*entity.Document, error) {
	raw, err := r.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer borrador: %w", err)
	}
	var doc entity.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("deserializar borrador: %w", err)
	}
	return &doc, nil
}

// Delete elimina el borrador.
func (r *DraftRepo) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("eliminar borrador: %w", err)
	}
	return nil
}

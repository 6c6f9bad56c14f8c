// Package redis implementa repository.KVStore sobre Redis, para compartir el ledger entre instancias.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/Caderno-api/internal/domain/repository"
)

var _ repository.KVStore = (*KVStore)(nil)

// DefaultPrefix prefijo de las claves cuando no se configura uno.
const DefaultPrefix = "caderno"

// Config conexión a Redis.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// KVStore guarda cada clave del ledger como un string: {prefix}:{key}.
type KVStore struct {
	client *redis.Client
	prefix string
}

// NewKVStore envuelve un cliente ya creado.
func NewKVStore(client *redis.Client, prefix string) *KVStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &KVStore{client: client, prefix: prefix}
}

// Open crea el cliente y verifica la conexión con PING.
func Open(ctx context.Context, cfg Config) (*KVStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return NewKVStore(client, cfg.Prefix), nil
}

func (s *KVStore) key(k string) string {
	return s.prefix + ":" + k
}

// Load lee la clave; redis.Nil significa ausente.
func (s *KVStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis: leer %s: %w", key, err)
	}
	return v, true, nil
}

// Save guarda value sin expiración.
func (s *KVStore) Save(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis: guardar %s: %w", key, err)
	}
	return nil
}

// SaveMany escribe todas las entradas en un MULTI/EXEC.
func (s *KVStore) SaveMany(ctx context.Context, entries []repository.KVEntry) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, e := range entries {
			pipe.Set(ctx, s.key(e.Key), e.Value, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: guardar lote: %w", err)
	}
	return nil
}

// Close cierra el cliente.
func (s *KVStore) Close() error {
	return s.client.Close()
}

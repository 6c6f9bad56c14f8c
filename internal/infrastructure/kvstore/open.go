// Package kvstore elige y abre el almacén clave-valor según STORE_DRIVER.
package kvstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/Caderno-api/internal/domain/repository"
	infrabolt "github.com/jhoicas/Caderno-api/internal/infrastructure/bolt"
	"github.com/jhoicas/Caderno-api/internal/infrastructure/memory"
	"github.com/jhoicas/Caderno-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Caderno-api/internal/infrastructure/redis"
	"github.com/jhoicas/Caderno-api/internal/infrastructure/scheduler"
	"github.com/jhoicas/Caderno-api/pkg/config"
)

// Handle almacén abierto. fileBackup solo existe en drivers con copia nativa (bolt).
type Handle struct {
	Driver     string
	Store      repository.KVStore
	fileBackup scheduler.Backuper
	close      func() error
}

// Backuper estrategia de respaldo del driver y extensión de los archivos: copia del archivo
// de bolt (".db") o volcado JSON de las colecciones que entrega src (".json").
func (h *Handle) Backuper(src scheduler.EntrySource) (scheduler.Backuper, string) {
	if h.fileBackup != nil {
		return h.fileBackup, ".db"
	}
	return scheduler.NewSnapshotBackuper(src), ".json"
}

// Close libera la conexión o el archivo.
func (h *Handle) Close() error {
	if h.close == nil {
		return nil
	}
	return h.close()
}

// Open abre el driver configurado.
func Open(ctx context.Context, cfg *config.Config) (*Handle, error) {
	switch cfg.Store.Driver {
	case "bolt":
		s, err := infrabolt.Open(cfg.Store.BoltPath)
		if err != nil {
			return nil, err
		}
		return &Handle{Driver: "bolt", Store: s, fileBackup: s, close: s.Close}, nil

	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		repo := postgres.NewKVRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return &Handle{Driver: "postgres", Store: repo, close: func() error { pool.Close(); return nil }}, nil

	case "redis":
		s, err := infraredis.Open(ctx, infraredis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return &Handle{Driver: "redis", Store: s, close: s.Close}, nil

	case "memory":
		return &Handle{Driver: "memory", Store: memory.NewKVStore()}, nil

	default:
		return nil, fmt.Errorf("STORE_DRIVER desconocido %q", cfg.Store.Driver)
	}
}

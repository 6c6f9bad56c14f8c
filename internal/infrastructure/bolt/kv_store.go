// Package bolt implementa repository.KVStore sobre un archivo bbolt local.
// Es el driver por defecto: un solo archivo, sin servidor, adecuado para un solo dispositivo.
package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/jhoicas/Caderno-api/internal/domain/repository"
)

var _ repository.KVStore = (*KVStore)(nil)

var ledgerBucket = []byte("ledger")

// KVStore almacén en un bucket de bbolt.
type KVStore struct {
	db *bbolt.DB
}

// Open abre (o crea) el archivo en path y asegura el bucket.
func Open(path string) (*KVStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("bolt: crear directorio %s: %w", dir, err)
		}
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt: abrir %s: %w", path, err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(ledgerBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bolt: crear bucket: %w", err)
	}
	return &KVStore{db: db}, nil
}

// Load devuelve una copia del valor; los slices de bbolt solo son válidos dentro de la transacción.
func (s *KVStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	var out []byte
	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(ledgerBucket).Get([]byte(key))
		if v != nil {
			out = append([]byte(nil), v...)
			found = true
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("bolt: leer %s: %w", key, err)
	}
	return out, found, nil
}

// Save guarda value bajo key.
func (s *KVStore) Save(ctx context.Context, key string, value []byte) error {
	return s.SaveMany(ctx, []repository.KVEntry{{Key: key, Value: value}})
}

// SaveMany escribe todas las entradas en una sola transacción.
func (s *KVStore) SaveMany(_ context.Context, entries []repository.KVEntry) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(ledgerBucket)
		for _, e := range entries {
			if err := b.Put([]byte(e.Key), e.Value); err != nil {
				return fmt.Errorf("%s: %w", e.Key, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("bolt: guardar: %w", err)
	}
	return nil
}

// Backup copia una instantánea consistente del archivo a dst.
func (s *KVStore) Backup(_ context.Context, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("bolt: crear directorio de respaldo: %w", err)
	}
	return s.db.View(func(tx *bbolt.Tx) error {
		return tx.CopyFile(dst, 0o600)
	})
}

// Close cierra el archivo.
func (s *KVStore) Close() error {
	return s.db.Close()
}

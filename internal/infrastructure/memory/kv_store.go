// Package memory implementa repository.KVStore en memoria (tests y ejecuciones efímeras).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Caderno-api/internal/domain/repository"
)

var _ repository.KVStore = (*KVStore)(nil)

// KVStore almacén clave-valor en un mapa protegido por mutex. Copia los bytes en cada
// lectura y escritura para que el llamador no comparta buffers con el almacén.
type KVStore struct {
	mu sync.RWMutex
	m  map[string][]byte
}

// NewKVStore construye un almacén vacío.
func NewKVStore() *KVStore {
	return &KVStore{m: make(map[string][]byte)}
}

// Load devuelve una copia del valor guardado.
func (s *KVStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Save guarda una copia del valor.
func (s *KVStore) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = append([]byte(nil), value...)
	return nil
}

// SaveMany guarda todas las entradas bajo el mismo lock.
func (s *KVStore) SaveMany(_ context.Context, entries []repository.KVEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.m[e.Key] = append([]byte(nil), e.Value...)
	}
	return nil
}

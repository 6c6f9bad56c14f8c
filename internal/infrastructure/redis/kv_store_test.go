package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caderno-api/internal/domain/repository"
)

// Requiere un Redis real: TEST_REDIS_ADDR=localhost:6379 go test ./...
func openTestStore(t *testing.T) *KVStore {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR no definido")
	}
	prefix := fmt.Sprintf("caderno-test-%d", time.Now().UnixNano())
	s, err := Open(context.Background(), Config{Addr: addr, Prefix: prefix})
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx := context.Background()
		for _, k := range []string{repository.KeyProducts, repository.KeySales, repository.KeyDebts} {
			s.client.Del(ctx, s.key(k))
		}
		_ = s.Close()
	})
	return s
}

func TestKVStore_SaveLoad(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, ok, err := s.Load(ctx, repository.KeySales)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SaveMany(ctx, []repository.KVEntry{
		{Key: repository.KeyProducts, Value: []byte(`[{"id":"p1"}]`)},
		{Key: repository.KeySales, Value: []byte(`[]`)},
	}))
	v, ok, err := s.Load(ctx, repository.KeyProducts)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"p1"}]`, string(v))

	require.NoError(t, s.Save(ctx, repository.KeyProducts, []byte(`[]`)))
	v, _, err = s.Load(ctx, repository.KeyProducts)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(v))
}

func TestNewKVStore_PrefijoPorDefecto(t *testing.T) {
	s := NewKVStore(nil, "")
	assert.Equal(t, "caderno:k_sales", s.key(repository.KeySales))
}

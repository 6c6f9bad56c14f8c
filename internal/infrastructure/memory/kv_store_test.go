package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caderno-api/internal/domain/repository"
)

func TestKVStore_LoadAusente(t *testing.T) {
	s := NewKVStore()
	v, found, err := s.Load(context.Background(), repository.KeyProducts)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, v)
}

func TestKVStore_CopiaLosBytes(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore()
	buf := []byte(`[1]`)
	require.NoError(t, s.Save(ctx, "k", buf))
	buf[1] = '9'

	v, found, err := s.Load(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `[1]`, string(v))
}

func TestKVStore_SaveMany(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore()
	require.NoError(t, s.SaveMany(ctx, []repository.KVEntry{
		{Key: repository.KeySales, Value: []byte(`[]`)},
		{Key: repository.KeyDebts, Value: []byte(`[{}]`)},
	}))
	v, _, _ := s.Load(ctx, repository.KeyDebts)
	assert.Equal(t, `[{}]`, string(v))
}

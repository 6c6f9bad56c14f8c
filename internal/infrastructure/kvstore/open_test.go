package kvstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caderno-api/internal/application/ledger"
	"github.com/jhoicas/Caderno-api/internal/domain/repository"
	"github.com/jhoicas/Caderno-api/pkg/config"
)

func TestOpen_Bolt(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "bolt", BoltPath: filepath.Join(t.TempDir(), "c.db")}}
	h, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer h.Close()

	require.NoError(t, h.Store.Save(context.Background(), repository.KeySales, []byte("[]")))

	b, ext := h.Backuper(nil)
	assert.Equal(t, ".db", ext)
	dst := filepath.Join(t.TempDir(), "copia.db")
	require.NoError(t, b.Backup(context.Background(), dst))
	assert.FileExists(t, dst)
}

func TestOpen_Memory(t *testing.T) {
	h, err := Open(context.Background(), &config.Config{Store: config.StoreConfig{Driver: "memory"}})
	require.NoError(t, err)
	_, ext := h.Backuper(ledger.NewLedgerUseCase(h.Store))
	assert.Equal(t, ".json", ext)
	assert.NoError(t, h.Close())
}

func TestOpen_Desconocido(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{Store: config.StoreConfig{Driver: "mongo"}})
	assert.Error(t, err)
}

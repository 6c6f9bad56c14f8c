package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caderno-api/internal/domain/repository"
	infrabolt "github.com/jhoicas/Caderno-api/internal/infrastructure/bolt"
)

func TestUTF8Reader_Latin1(t *testing.T) {
	// "Feijão" en ISO-8859-1
	raw := []byte{'F', 'e', 'i', 'j', 0xE3, 'o'}
	out, err := io.ReadAll(utf8Reader(raw))
	require.NoError(t, err)
	assert.Equal(t, "Feijão", string(out))
}

func TestUTF8Reader_YaUTF8(t *testing.T) {
	out, err := io.ReadAll(utf8Reader([]byte("Açúcar")))
	require.NoError(t, err)
	assert.Equal(t, "Açúcar", string(out))
}

func TestRun_ImportaEnBolt(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	dbPath := filepath.Join(dir, "caderno.db")
	t.Setenv("STORE_DRIVER", "bolt")
	t.Setenv("STORE_BOLT_PATH", dbPath)

	csvPath := filepath.Join(dir, "catalogo.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("name,price,stock\nPão,100,30\nLeite,200,2\n"), 0o600))
	require.NoError(t, run(context.Background(), csvPath))

	// Si run no cerró el archivo, bbolt no podría reabrirlo (bloqueo exclusivo).
	store, err := infrabolt.Open(dbPath)
	require.NoError(t, err)
	defer store.Close()
	raw, ok, err := store.Load(context.Background(), repository.KeyProducts)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(raw), "Leite")
}

func TestRun_CSVInvalidoNoAbreElAlmacen(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("STORE_DRIVER", "bolt")
	t.Setenv("STORE_BOLT_PATH", filepath.Join(dir, "caderno.db"))

	csvPath := filepath.Join(dir, "catalogo.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("name,price\nPão,1.500\n"), 0o600))
	err := run(context.Background(), csvPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leer catálogo")
	assert.NoFileExists(t, filepath.Join(dir, "caderno.db"))
}

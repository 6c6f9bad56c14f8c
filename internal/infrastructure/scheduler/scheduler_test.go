package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caderno-api/internal/application/dto"
	"github.com/jhoicas/Caderno-api/internal/application/ledger"
	"github.com/jhoicas/Caderno-api/internal/domain/entity"
	"github.com/jhoicas/Caderno-api/internal/domain/repository"
	"github.com/jhoicas/Caderno-api/internal/infrastructure/memory"
)

func readDump(t *testing.T, path string) (products []entity.Product, sales []entity.Sale, debts []entity.Debt) {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var dump map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &dump))
	require.NoError(t, json.Unmarshal(dump[repository.KeyProducts], &products))
	require.NoError(t, json.Unmarshal(dump[repository.KeySales], &sales))
	require.NoError(t, json.Unmarshal(dump[repository.KeyDebts], &debts))
	return products, sales, debts
}

func TestSnapshotBackuper(t *testing.T) {
	ctx := context.Background()
	uc := ledger.NewLedgerUseCase(memory.NewKVStore())
	p, err := uc.AddProduct(ctx, dto.CreateProductRequest{Name: "Pão", Price: decimal.NewFromInt(100), Stock: 10})
	require.NoError(t, err)
	_, err = uc.RecordSale(ctx, dto.RecordSaleRequest{ProductID: p.ID, Quantity: 2, PaymentMethod: "debt", CustomerName: "Ana"})
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "b", "copia.json")
	require.NoError(t, NewSnapshotBackuper(uc).Backup(ctx, dst))

	products, sales, debts := readDump(t, dst)
	require.Len(t, products, 1)
	assert.Equal(t, 8, products[0].Stock)
	assert.Len(t, sales, 1)
	assert.Len(t, debts, 1)
}

// Ventas concurrentes con respaldos: cada archivo cumple stock + vendido = stock inicial
// y tiene una deuda por venta.
func TestSnapshotBackuper_VentasConcurrentes(t *testing.T) {
	const (
		initialStock = 100
		numSales     = 50
	)
	ctx := context.Background()
	uc := ledger.NewLedgerUseCase(memory.NewKVStore())
	p, err := uc.AddProduct(ctx, dto.CreateProductRequest{Name: "Sabão", Price: decimal.NewFromInt(500), Stock: initialStock})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < numSales; i++ {
			_, err := uc.RecordSale(ctx, dto.RecordSaleRequest{
				ProductID: p.ID, Quantity: 2, PaymentMethod: "debt", CustomerName: "Ana",
			})
			assert.NoError(t, err)
		}
	}()

	dir := t.TempDir()
	b := NewSnapshotBackuper(uc)
	for i := 0; i < 20; i++ {
		dst := filepath.Join(dir, fmt.Sprintf("copia-%02d.json", i))
		require.NoError(t, b.Backup(ctx, dst))

		products, sales, debts := readDump(t, dst)
		require.Len(t, products, 1)
		sold := 0
		for _, s := range sales {
			sold += s.Quantity
		}
		assert.Equal(t, initialStock, products[0].Stock+sold, "respaldo %d", i)
		assert.Len(t, debts, len(sales), "respaldo %d", i)
	}
	wg.Wait()
}

type countingBackuper struct{ err error }

func (c countingBackuper) Backup(_ context.Context, dst string) error {
	if c.err != nil {
		return c.err
	}
	return os.WriteFile(dst, []byte("x"), 0o600)
}

func TestBackupJob_RunYPoda(t *testing.T) {
	dir := t.TempDir()
	job := NewBackupJob(countingBackuper{}, dir, ".db", zerolog.Nop())
	job.keep = 3
	base := time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		at := base.AddDate(0, 0, i)
		job.now = func() time.Time { return at }
		path, err := job.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, fmt.Sprintf("caderno-202503%02d-030000.db", 10+i)), path)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "caderno-20250312-030000.db", entries[0].Name(), "se borran los más viejos")
}

func TestBackupJob_Error(t *testing.T) {
	job := NewBackupJob(countingBackuper{err: errors.New("disco lleno")}, t.TempDir(), ".db", zerolog.Nop())
	_, err := job.Run(context.Background())
	assert.ErrorContains(t, err, "disco lleno")
}

func TestScheduler_AddBackup(t *testing.T) {
	s := New(time.UTC, zerolog.Nop())
	job := NewBackupJob(countingBackuper{}, t.TempDir(), ".db", zerolog.Nop())

	require.NoError(t, s.AddBackup("0 3 * * *", job))
	require.NoError(t, s.AddBackup("@every 6h", job))
	assert.Error(t, s.AddBackup("todos los días", job))
	assert.Equal(t, 2, s.Len())

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}

package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caderno-api/internal/application/analytics"
	"github.com/jhoicas/Caderno-api/internal/application/dto"
	"github.com/jhoicas/Caderno-api/internal/application/ledger"
	"github.com/jhoicas/Caderno-api/internal/infrastructure/memory"
)

func TestGetSummary_ResumenDelDia(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)
	lg := ledger.NewLedgerUseCase(memory.NewKVStore(), ledger.WithClock(func() time.Time { return clock }))

	soap, err := lg.AddProduct(ctx, dto.CreateProductRequest{
		Name: "Soap", Category: "Aseo", Price: decimal.NewFromInt(500), Cost: decimal.NewFromInt(300), Stock: 10,
	})
	require.NoError(t, err)
	_, err = lg.AddProduct(ctx, dto.CreateProductRequest{Name: "Pan", Price: decimal.NewFromInt(100), Stock: 2})
	require.NoError(t, err)

	// Venta de ayer: no cuenta en el día.
	_, err = lg.RecordSale(ctx, dto.RecordSaleRequest{ProductID: soap.ID, Quantity: 1, PaymentMethod: "cash"})
	require.NoError(t, err)

	clock = clock.Add(24 * time.Hour)
	_, err = lg.RecordSale(ctx, dto.RecordSaleRequest{ProductID: soap.ID, Quantity: 2, PaymentMethod: "cash"})
	require.NoError(t, err)
	_, err = lg.RecordSale(ctx, dto.RecordSaleRequest{ProductID: soap.ID, Quantity: 1, PaymentMethod: "debt", CustomerName: "Ana"})
	require.NoError(t, err)

	uc := analytics.NewDashboardUseCase(lg, "Minha Loja", time.UTC).
		WithClock(func() time.Time { return clock })
	sum := uc.GetSummary()

	assert.Equal(t, "Minha Loja", sum.BusinessName)
	assert.True(t, sum.TodaySales.Equal(decimal.NewFromInt(1500)))
	assert.True(t, sum.TodayProfit.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, 2, sum.TodayCount)
	assert.True(t, sum.PendingDebts.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 1, sum.LowStock, "solo Pan tiene stock < 5")
	assert.ElementsMatch(t, []string{"Aseo", "General"}, sum.Categories)
	require.Len(t, sum.RecentSales, 3)
	assert.Equal(t, "debt", sum.RecentSales[0].PaymentMethod)
	assert.Equal(t, "2026-10-19", sum.DateLabel)
}

func TestGetSummary_LedgerVacio(t *testing.T) {
	lg := ledger.NewLedgerUseCase(memory.NewKVStore())
	sum := analytics.NewDashboardUseCase(lg, "X", nil).GetSummary()
	assert.True(t, sum.TodaySales.IsZero())
	assert.True(t, sum.PendingDebts.IsZero())
	assert.Empty(t, sum.RecentSales)
	assert.NotNil(t, sum.Categories)
}

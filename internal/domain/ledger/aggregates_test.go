package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caderno-api/internal/domain/entity"
	"github.com/jhoicas/Caderno-api/internal/domain/ledger"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestTodaysSales_ComparaDiaLocal(t *testing.T) {
	loc := time.FixedZone("WAT", 1*60*60)
	now := time.Date(2026, 3, 10, 0, 30, 0, 0, loc)

	sales := []entity.Sale{
		// 23:45 UTC del día 9 = 00:45 del día 10 en WAT
		{ID: "1", Total: d(100), Profit: d(40), Date: time.Date(2026, 3, 9, 23, 45, 0, 0, time.UTC)},
		// 22:00 UTC del día 9 = 23:00 del día 9 en WAT
		{ID: "2", Total: d(200), Profit: d(50), Date: time.Date(2026, 3, 9, 22, 0, 0, 0, time.UTC)},
		{ID: "3", Total: d(300), Profit: d(60), Date: time.Date(2026, 3, 10, 12, 0, 0, 0, loc)},
	}

	today := ledger.TodaysSales(sales, now)
	require.Len(t, today, 2)
	assert.Equal(t, "1", today[0].ID)
	assert.Equal(t, "3", today[1].ID)
	assert.True(t, ledger.Revenue(today).Equal(d(400)))
	assert.True(t, ledger.Profit(today).Equal(d(100)))
}

func TestPendingDebtTotal_SoloPendientes(t *testing.T) {
	debts := []entity.Debt{
		{ID: "1", Amount: d(500), Status: entity.DebtPending},
		{ID: "2", Amount: d(700), Status: entity.DebtPaid},
		{ID: "3", Amount: d(250), Status: entity.DebtPending},
	}
	assert.True(t, ledger.PendingDebtTotal(debts).Equal(d(750)))
	assert.Len(t, ledger.PendingDebts(debts), 2)
	assert.True(t, ledger.PendingDebtTotal(nil).IsZero())
}

func TestLowStockCount_UmbralFijo(t *testing.T) {
	products := []entity.Product{
		{ID: "1", Stock: 4},
		{ID: "2", Stock: 5},
		{ID: "3", Stock: -2},
		{ID: "4", Stock: 100},
	}
	assert.Equal(t, 2, ledger.LowStockCount(products))
}

func TestDistinctCategories(t *testing.T) {
	products := []entity.Product{
		{ID: "1", Category: "Bebidas"},
		{ID: "2", Category: ""},
		{ID: "3", Category: "Aseo"},
		{ID: "4", Category: "Bebidas"},
	}
	assert.ElementsMatch(t, []string{"Aseo", "Bebidas"}, ledger.DistinctCategories(products))
	assert.Empty(t, ledger.DistinctCategories(nil))
}

func TestRecentSales_MasNuevaPrimero(t *testing.T) {
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	sales := []entity.Sale{
		{ID: "a", Date: base},
		{ID: "b", Date: base.Add(time.Hour)},
		{ID: "c", Date: base.Add(time.Hour)},
		{ID: "d", Date: base.Add(30 * time.Minute)},
	}
	got := ledger.RecentSales(sales, 3)
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[0].ID, "a igual fecha gana la última insertada")
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "d", got[2].ID)

	assert.Len(t, ledger.RecentSales(sales, 0), 4)
	assert.Equal(t, "a", sales[0].ID, "no debe modificar el slice de entrada")
}

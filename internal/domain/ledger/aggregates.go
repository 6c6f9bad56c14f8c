package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caderno-api/internal/domain/entity"
)

const isoDate = "2006-01-02"

// TodaysSales ventas cuya fecha cae en el mismo día calendario que now, en la zona horaria de now.
// La comparación es por prefijo de fecha ISO (YYYY-MM-DD).
func TodaysSales(sales []entity.Sale, now time.Time) []entity.Sale {
	today := now.Format(isoDate)
	loc := now.Location()
	var out []entity.Sale
	for _, s := range sales {
		if s.Date.In(loc).Format(isoDate) == today {
			out = append(out, s)
		}
	}
	return out
}

// Revenue suma de Total.
func Revenue(sales []entity.Sale) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range sales {
		sum = sum.Add(s.Total)
	}
	return sum
}

// Profit suma de Profit.
func Profit(sales []entity.Sale) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range sales {
		sum = sum.Add(s.Profit)
	}
	return sum
}

// PendingDebtTotal suma de Amount de las deudas pendientes.
func PendingDebtTotal(debts []entity.Debt) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range debts {
		if d.IsPending() {
			sum = sum.Add(d.Amount)
		}
	}
	return sum
}

// LowStockCount cantidad de productos con stock < entity.LowStockThreshold.
func LowStockCount(products []entity.Product) int {
	n := 0
	for _, p := range products {
		if p.IsLowStock() {
			n++
		}
	}
	return n
}

// DistinctCategories categorías no vacías, sin repetir. Se devuelven ordenadas para salida estable.
func DistinctCategories(products []entity.Product) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}

// RecentSales las n ventas más recientes, de la más nueva a la más vieja.
// Con n <= 0 devuelve todas.
func RecentSales(sales []entity.Sale, n int) []entity.Sale {
	// Recorrido inverso: ante fechas iguales, la última insertada va primero.
	out := make([]entity.Sale, 0, len(sales))
	for i := len(sales) - 1; i >= 0; i-- {
		out = append(out, sales[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// PendingDebts deudas con estado pending, en el orden recibido.
func PendingDebts(debts []entity.Debt) []entity.Debt {
	var out []entity.Debt
	for _, d := range debts {
		if d.IsPending() {
			out = append(out, d)
		}
	}
	return out
}

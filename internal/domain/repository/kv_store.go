package repository

import "context"

// Claves lógicas de las colecciones persistidas.
const (
	KeyProducts = "k_products"
	KeySales    = "k_sales"
	KeyDebts    = "k_debts"
)

// KVEntry par clave/valor serializado.
type KVEntry struct {
	Key   string
	Value []byte
}

// KVStore define el puerto de persistencia del ledger (DIP): un almacén clave-valor durable.
// Load devuelve found=false cuando la clave no existe (colección vacía).
// SaveMany escribe todas las entradas de forma atómica cuando el backend lo permite.
type KVStore interface {
	Load(ctx context.Context, key string) (value []byte, found bool, err error)
	Save(ctx context.Context, key string, value []byte) error
	SaveMany(ctx context.Context, entries []KVEntry) error
}

package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Caderno-api/internal/domain/repository"
)

var _ repository.KVStore = (*KVRepo)(nil)

//go:embed migrations/001_ledger_kv.sql
var ledgerKVSchema string

// KVRepo implementación de repository.KVStore sobre la tabla ledger_kv.
type KVRepo struct {
	q  Querier
	tx *TxRunner
}

// NewKVRepository construye el adaptador. SaveMany usa una transacción del pool.
func NewKVRepository(pool *pgxpool.Pool) *KVRepo {
	return &KVRepo{q: pool, tx: NewTxRunner(pool)}
}

// EnsureSchema crea la tabla si no existe.
func (r *KVRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, ledgerKVSchema); err != nil {
		return fmt.Errorf("crear esquema ledger_kv: %w", err)
	}
	return nil
}

// Load obtiene el valor de key. Sin fila devuelve found=false.
func (r *KVRepo) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := r.q.QueryRow(ctx, `SELECT value FROM ledger_kv WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get ledger_kv %s: %w", key, err)
	}
	return value, true, nil
}

// Save inserta o reemplaza el valor de key.
func (r *KVRepo) Save(ctx context.Context, key string, value []byte) error {
	return upsert(ctx, r.q, key, value)
}

// SaveMany guarda todas las entradas en una sola transacción.
func (r *KVRepo) SaveMany(ctx context.Context, entries []repository.KVEntry) error {
	return r.tx.Run(ctx, func(q Querier) error {
		for _, e := range entries {
			if err := upsert(ctx, q, e.Key, e.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsert(ctx context.Context, q Querier, key string, value []byte) error {
	query := `
		INSERT INTO ledger_kv (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := q.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("upsert ledger_kv %s: %w", key, err)
	}
	return nil
}

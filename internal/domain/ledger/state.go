package ledger

import "github.com/jhoicas/Caderno-api/internal/domain/entity"

// State contenedor explícito del ledger: las tres colecciones relacionadas.
type State struct {
	Products *Collection[entity.Product]
	Sales    *Collection[entity.Sale]
	Debts    *Collection[entity.Debt]
}

// NewState crea un ledger vacío.
func NewState() *State {
	return &State{
		Products: NewCollection(func(p entity.Product) string { return p.ID }),
		Sales:    NewCollection(func(s entity.Sale) string { return s.ID }),
		Debts:    NewCollection(func(d entity.Debt) string { return d.ID }),
	}
}

// Snapshot copia de solo lectura del ledger en un instante dado.
type Snapshot struct {
	Products []entity.Product
	Sales    []entity.Sale
	Debts    []entity.Debt
}

// Snapshot copia el contenido actual. Los registros son valores, así que la copia es independiente.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Products: s.Products.Values(),
		Sales:    s.Sales.Values(),
		Debts:    s.Debts.Values(),
	}
}

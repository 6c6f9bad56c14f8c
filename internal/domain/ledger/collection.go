// Package ledger contiene los almacenes de registros del ledger (productos, ventas y deudas)
// y las consultas de agregación puras sobre ellos.
package ledger

import (
	"github.com/jhoicas/Caderno-api/internal/domain"
)

// Collection almacén de registros indexado por ID que conserva el orden de inserción.
// No valida consistencia entre colecciones; eso lo hacen las operaciones del ledger.
// No es seguro para uso concurrente: el dueño serializa el acceso.
type Collection[T any] struct {
	keyOf func(T) string
	order []string
	items map[string]T
}

// NewCollection construye una colección vacía. keyOf extrae el ID de un registro.
func NewCollection[T any](keyOf func(T) string) *Collection[T] {
	return &Collection[T]{keyOf: keyOf, items: make(map[string]T)}
}

// Insert agrega un registro al final. Devuelve domain.ErrDuplicate si el ID ya existe.
func (c *Collection[T]) Insert(rec T) error {
	id := c.keyOf(rec)
	if _, ok := c.items[id]; ok {
		return domain.ErrDuplicate
	}
	c.items[id] = rec
	c.order = append(c.order, id)
	return nil
}

// Get busca un registro por ID.
func (c *Collection[T]) Get(id string) (T, bool) {
	rec, ok := c.items[id]
	return rec, ok
}

// Replace reemplaza el registro completo, conservando su posición.
func (c *Collection[T]) Replace(rec T) error {
	id := c.keyOf(rec)
	if _, ok := c.items[id]; !ok {
		return domain.ErrNotFound
	}
	c.items[id] = rec
	return nil
}

// Update aplica fn sobre una copia del registro y la guarda (actualización parcial).
// El ID no puede cambiar dentro de fn.
func (c *Collection[T]) Update(id string, fn func(*T)) error {
	rec, ok := c.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	fn(&rec)
	if c.keyOf(rec) != id {
		return domain.ErrInvalidInput
	}
	c.items[id] = rec
	return nil
}

// Delete elimina un registro. Eliminar un ID inexistente no hace nada.
func (c *Collection[T]) Delete(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, k := range c.order {
		if k == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Len cantidad de registros.
func (c *Collection[T]) Len() int {
	return len(c.order)
}

// Values devuelve los registros en orden de inserción (copia del slice).
func (c *Collection[T]) Values() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Reset reemplaza el contenido con recs, en ese orden. Los IDs repetidos se descartan
// (gana la primera aparición) y se devuelve cuántos se descartaron.
func (c *Collection[T]) Reset(recs []T) int {
	c.order = make([]string, 0, len(recs))
	c.items = make(map[string]T, len(recs))
	dropped := 0
	for _, rec := range recs {
		if err := c.Insert(rec); err != nil {
			dropped++
		}
	}
	return dropped
}

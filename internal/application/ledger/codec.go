package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// encodeRecords serializa una colección como arreglo JSON ordenado de registros.
func encodeRecords[T any](recs []T) ([]byte, error) {
	if recs == nil {
		recs = []T{}
	}
	b, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("serializar registros: %w", err)
	}
	return b, nil
}

// decodeRecords deserializa un arreglo JSON. Payload vacío o "null" equivale a colección vacía.
func decodeRecords[T any](raw []byte) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("deserializar registros: %w", err)
	}
	return out, nil
}

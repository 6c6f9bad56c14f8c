package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/jhoicas/Caderno-api/internal/application/dto"
	"github.com/jhoicas/Caderno-api/internal/application/ledger"
	"github.com/jhoicas/Caderno-api/internal/domain"
)

// maxImportSize límite del archivo de catálogo.
const maxImportSize = 2 << 20

// importRow columnas aceptadas al importar productos. Todas texto: se validan en la frontera.
type importRow struct {
	Name     string `csv:"name"`
	Category string `csv:"category"`
	Cost     string `csv:"cost"`
	Price    string `csv:"price"`
	Stock    string `csv:"stock"`
}

// ParseProducts lee un catálogo CSV con encabezado (name, category, cost, price, stock).
// Acepta coma o punto y coma como separador y BOM UTF-8. Cost y stock vacíos valen 0.
// Un error en cualquier fila invalida todo el archivo.
func ParseProducts(r io.Reader) ([]dto.CreateProductRequest, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxImportSize+1))
	if err != nil {
		return nil, fmt.Errorf("csv: leer: %w", err)
	}
	if len(raw) > maxImportSize {
		return nil, domain.NewValidationError("file", "supera el tamaño máximo de 2 MB")
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, domain.NewValidationError("file", "está vacío")
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = detectSeparator(raw)
	reader.TrimLeadingSpace = true

	var rows []*importRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, domain.NewValidationError("file", "está vacío")
		}
		return nil, fmt.Errorf("%w: csv inválido: %v", domain.ErrInvalidInput, err)
	}

	out := make([]dto.CreateProductRequest, 0, len(rows))
	for i, row := range rows {
		in, err := row.toRequest()
		if err != nil {
			// +2: encabezado y base 1.
			return nil, fmt.Errorf("línea %d: %w", i+2, err)
		}
		out = append(out, in)
	}
	return out, nil
}

func (r *importRow) toRequest() (dto.CreateProductRequest, error) {
	in := dto.CreateProductRequest{Name: r.Name, Category: r.Category}
	price, err := ledger.ParseMoney("price", r.Price)
	if err != nil {
		return in, err
	}
	in.Price = price
	if strings.TrimSpace(r.Cost) != "" {
		if in.Cost, err = ledger.ParseMoney("cost", r.Cost); err != nil {
			return in, err
		}
	}
	if strings.TrimSpace(r.Stock) != "" {
		if in.Stock, err = ledger.ParseCount("stock", r.Stock); err != nil {
			return in, err
		}
	}
	return ledger.ValidateProductDraft(in)
}

// detectSeparator mira solo la línea de encabezado.
func detectSeparator(raw []byte) rune {
	header := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		header = raw[:i]
	}
	if bytes.Count(header, []byte(";")) > bytes.Count(header, []byte(",")) {
		return ';'
	}
	return ','
}

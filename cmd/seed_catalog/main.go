// seed_catalog carga un catálogo de productos desde CSV en el almacén configurado.
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual.
// Columnas: name,category,price,cost,stock (cost y stock opcionales; separador , o ;).
// Archivos exportados desde hojas de cálculo antiguas suelen venir en ISO-8859-1:
// si el contenido no es UTF-8 válido se convierte antes de leerlo.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Caderno-api/internal/application/ledger"
	"github.com/jhoicas/Caderno-api/internal/infrastructure/csvio"
	"github.com/jhoicas/Caderno-api/internal/infrastructure/kvstore"
	"github.com/jhoicas/Caderno-api/pkg/config"
	"github.com/jhoicas/Caderno-api/pkg/logger"
)

func main() {
	csvPath := "catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	if err := run(context.Background(), csvPath); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run importa el catálogo. El almacén se cierra en todos los caminos antes de salir.
func run(ctx context.Context, csvPath string) error {
	raw, err := os.ReadFile(csvPath)
	if err != nil {
		return fmt.Errorf("abrir CSV: %w", err)
	}
	drafts, err := csvio.ParseProducts(utf8Reader(raw))
	if err != nil {
		return fmt.Errorf("leer catálogo: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	store, err := kvstore.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("abrir almacén: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar almacén")
		}
	}()

	uc := ledger.NewLedgerUseCase(store.Store,
		ledger.WithLogger(log.Component("seed")),
		ledger.WithLanguage(cfg.App.Language),
	)
	if err := uc.Load(ctx); err != nil {
		return fmt.Errorf("cargar ledger: %w", err)
	}
	res, err := uc.ImportProducts(ctx, drafts)
	if err != nil {
		return fmt.Errorf("importar: %w", err)
	}

	fmt.Printf("Importados %d productos en %s (%s)\n", res.Imported, store.Driver, csvPath)
	return nil
}

// utf8Reader devuelve raw tal cual si ya es UTF-8; si no, lo decodifica como ISO-8859-1.
func utf8Reader(raw []byte) io.Reader {
	if utf8.Valid(raw) {
		return bytes.NewReader(raw)
	}
	return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder())
}

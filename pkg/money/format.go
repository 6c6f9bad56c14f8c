// Package money formatea montos para mostrar (reportes PDF, prompts de IA).
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter aplica separadores de miles según el idioma y antepone el símbolo de moneda.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter construye el formateador. symbol vacío omite el prefijo.
func NewFormatter(tag language.Tag, symbol string) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag), symbol: strings.TrimSpace(symbol)}
}

// Format devuelve el monto localizado, ej: "Kz 1.500" (pt) o "Kz 1,500.50" (en).
// Los montos enteros se muestran sin decimales.
func (f *Formatter) Format(d decimal.Decimal) string {
	var s string
	if d.Equal(d.Truncate(0)) {
		s = f.printer.Sprintf("%d", d.IntPart())
	} else {
		s = f.printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
	}
	if f.symbol == "" {
		return s
	}
	return f.symbol + " " + s
}

// Int formatea un entero con separadores de miles.
func (f *Formatter) Int(n int) string {
	return f.printer.Sprintf("%d", n)
}

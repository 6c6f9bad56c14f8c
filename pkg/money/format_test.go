package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFormat_EnterosConSeparador(t *testing.T) {
	f := NewFormatter(language.English, "Kz")
	assert.Equal(t, "Kz 1,000", f.Format(decimal.NewFromInt(1000)))
	assert.Equal(t, "Kz 0", f.Format(decimal.Zero))
	assert.Equal(t, "1,234,567", f.Int(1234567))
}

func TestFormat_SinSimbolo(t *testing.T) {
	f := NewFormatter(language.English, " ")
	assert.Equal(t, "500", f.Format(decimal.NewFromInt(500)))
}

func TestFormat_ConDecimales(t *testing.T) {
	f := NewFormatter(language.English, "Kz")
	out := f.Format(decimal.RequireFromString("1500.5"))
	assert.Contains(t, out, "Kz ")
	assert.Contains(t, out, "1,500")
}

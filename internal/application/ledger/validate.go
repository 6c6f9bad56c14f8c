package ledger

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caderno-api/internal/application/dto"
	"github.com/jhoicas/Caderno-api/internal/domain"
	"github.com/jhoicas/Caderno-api/internal/domain/entity"
)

// Funciones de frontera: convierten entrada sin tipo (formularios, CSV, query params) en valores
// validados o devuelven *domain.ValidationError antes de construir cualquier registro.

// ParsePaymentMethod valida la forma de pago (cash, debt, transfer). No distingue mayúsculas.
func ParsePaymentMethod(s string) (entity.PaymentMethod, error) {
	m := entity.PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", domain.NewValidationError("payment_method", "debe ser cash, debt o transfer")
	}
	return m, nil
}

// ParseDebtStatus valida el estado de una deuda (pending, paid).
func ParseDebtStatus(s string) (entity.DebtStatus, error) {
	st := entity.DebtStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", domain.NewValidationError("status", "debe ser pending o paid")
	}
	return st, nil
}

// Formatos de monto aceptados: 1500, 1500,50, 12.5, 1.500.000,50 y 1,500,000.50.
// ambiguousAmount: un solo separador seguido de tres dígitos (1.500, 1,500).
var (
	plainAmount     = regexp.MustCompile(`^\d+([.,]\d+)?$`)
	ambiguousAmount = regexp.MustCompile(`^[1-9]\d{0,2}[.,]\d{3}$`)
	dotGrouped      = regexp.MustCompile(`^\d{1,3}(\.\d{3})+(,\d+)?$`)
	commaGrouped    = regexp.MustCompile(`^\d{1,3}(,\d{3})+(\.\d+)?$`)
)

// ParseMoney convierte texto a un monto no negativo. Acepta coma o punto como separador decimal
// y separador de miles cuando no hay ambigüedad ("1.500,00", "1,500.00", "1.500.000").
// Un único separador seguido de exactamente tres dígitos ("1.500") se rechaza: puede ser
// 1500 con miles o 1,5 con decimales.
func ParseMoney(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, domain.NewValidationError(field, "es obligatorio")
	}
	negative := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")

	var normalized string
	switch {
	case ambiguousAmount.MatchString(digits):
		return decimal.Zero, domain.NewValidationError(field, "ambiguo: escriba 1500 o 1500,00")
	case plainAmount.MatchString(digits):
		normalized = strings.Replace(digits, ",", ".", 1)
	case dotGrouped.MatchString(digits):
		normalized = strings.Replace(strings.ReplaceAll(digits, ".", ""), ",", ".", 1)
	case commaGrouped.MatchString(digits):
		normalized = strings.ReplaceAll(digits, ",", "")
	default:
		return decimal.Zero, domain.NewValidationError(field, "no es un número válido")
	}

	v, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, domain.NewValidationError(field, "no es un número válido")
	}
	if negative && !v.IsZero() {
		return decimal.Zero, domain.NewValidationError(field, "no puede ser negativo")
	}
	return v, nil
}

// ParseCount convierte texto a un entero no negativo (stock, cantidades).
func ParseCount(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, domain.NewValidationError(field, "no es un entero válido")
	}
	if n < 0 {
		return 0, domain.NewValidationError(field, "no puede ser negativo")
	}
	return n, nil
}

// ValidateProductDraft valida y normaliza un producto nuevo. Categoría vacía → "General".
func ValidateProductDraft(in dto.CreateProductRequest) (dto.CreateProductRequest, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, domain.NewValidationError("name", "es obligatorio")
	}
	if in.Price.IsNegative() {
		return in, domain.NewValidationError("price", "no puede ser negativo")
	}
	if in.Cost.IsNegative() {
		return in, domain.NewValidationError("cost", "no puede ser negativo")
	}
	if in.Stock < 0 {
		return in, domain.NewValidationError("stock", "no puede ser negativo")
	}
	in.Category = normalizeCategory(in.Category)
	return in, nil
}

// ValidateProductPatch valida los campos presentes de una edición de producto.
func ValidateProductPatch(in dto.UpdateProductRequest) error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return domain.NewValidationError("name", "no puede quedar vacío")
	}
	if in.Price != nil && in.Price.IsNegative() {
		return domain.NewValidationError("price", "no puede ser negativo")
	}
	if in.Cost != nil && in.Cost.IsNegative() {
		return domain.NewValidationError("cost", "no puede ser negativo")
	}
	return nil
}

// ValidateDebtDraft valida una deuda manual: cliente obligatorio y monto > 0.
func ValidateDebtDraft(in dto.CreateDebtRequest) (dto.CreateDebtRequest, error) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.Description = strings.TrimSpace(in.Description)
	if in.CustomerName == "" {
		return in, domain.NewValidationError("customer_name", "es obligatorio")
	}
	if !in.Amount.IsPositive() {
		return in, domain.NewValidationError("amount", "debe ser mayor que cero")
	}
	return in, nil
}

// ValidateSaleRequest valida cantidad y forma de pago de una venta.
func ValidateSaleRequest(in dto.RecordSaleRequest) (entity.PaymentMethod, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return "", domain.NewValidationError("product_id", "es obligatorio")
	}
	if in.Quantity <= 0 {
		return "", domain.NewValidationError("quantity", "debe ser mayor que cero")
	}
	return ParsePaymentMethod(in.PaymentMethod)
}

func normalizeCategory(c string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return entity.DefaultCategory
	}
	return c
}

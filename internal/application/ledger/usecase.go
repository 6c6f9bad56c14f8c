// Package ledger contiene las operaciones del ledger: el único lugar donde se aplican las reglas
// de negocio entre productos, ventas y deudas.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/jhoicas/Caderno-api/internal/application/dto"
	"github.com/jhoicas/Caderno-api/internal/domain"
	"github.com/jhoicas/Caderno-api/internal/domain/entity"
	domledger "github.com/jhoicas/Caderno-api/internal/domain/ledger"
	"github.com/jhoicas/Caderno-api/internal/domain/repository"
)

// LedgerUseCase dueño del estado del ledger y de su persistencia.
//
// Cada operación corre completa bajo el lock: ningún lector observa una venta sin su
// descuento de stock ni una venta a crédito sin su deuda. Tras mutar en memoria se
// persisten las colecciones afectadas; si falla la persistencia el cambio en memoria
// se conserva y se devuelve el resultado junto con un error que envuelve domain.ErrPersistence.
type LedgerUseCase struct {
	mu    sync.RWMutex
	state *domledger.State
	store repository.KVStore
	log   zerolog.Logger
	now   func() time.Time
	newID func() string

	debtFormat string // descripción de la deuda de una venta a crédito
}

// Descripción automática de la deuda generada por una venta a crédito, por idioma.
// El primero es el valor por defecto.
var saleDebtFormats = []struct {
	tag    language.Tag
	format string
}{
	{language.Portuguese, "Venda de %dx %s"},
	{language.Spanish, "Venta de %dx %s"},
}

var saleDebtMatcher = func() language.Matcher {
	tags := make([]language.Tag, 0, len(saleDebtFormats))
	for _, f := range saleDebtFormats {
		tags = append(tags, f.tag)
	}
	return language.NewMatcher(tags)
}()

// Option configura el caso de uso.
type Option func(*LedgerUseCase)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *LedgerUseCase) { uc.now = now }
}

// WithIDGenerator reemplaza el generador de IDs (tests).
func WithIDGenerator(fn func() string) Option {
	return func(uc *LedgerUseCase) { uc.newID = fn }
}

// WithLanguage elige el idioma de los textos que genera el ledger ("pt", "es", "pt-AO"...).
// Sin coincidencia se usa portugués.
func WithLanguage(raw string) Option {
	return func(uc *LedgerUseCase) {
		_, idx := language.MatchStrings(saleDebtMatcher, raw)
		if idx < 0 || idx >= len(saleDebtFormats) {
			idx = 0
		}
		uc.debtFormat = saleDebtFormats[idx].format
	}
}

// WithLogger inyecta el logger.
func WithLogger(l zerolog.Logger) Option {
	return func(uc *LedgerUseCase) { uc.log = l }
}

// NewLedgerUseCase construye el caso de uso con un ledger vacío. Llamar Load para leer lo persistido.
func NewLedgerUseCase(store repository.KVStore, opts ...Option) *LedgerUseCase {
	uc := &LedgerUseCase{
		state: domledger.NewState(),
		store: store,
		log:   zerolog.Nop(),
		now:   time.Now,
		newID: func() string { return uuid.New().String() },

		debtFormat: saleDebtFormats[0].format,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Load lee las tres colecciones. Una clave ausente equivale a colección vacía.
// Si una clave no se puede leer o decodificar, esa colección queda vacía y se devuelve
// un error que envuelve domain.ErrPersistence; las demás se cargan igual.
func (uc *LedgerUseCase) Load(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	var failures []string
	load := func(key string, apply func([]byte) (int, error)) {
		raw, found, err := uc.store.Load(ctx, key)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", key, err))
			return
		}
		if !found {
			return
		}
		dropped, err := apply(raw)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", key, err))
			return
		}
		if dropped > 0 {
			uc.log.Warn().Str("key", key).Int("dropped", dropped).Msg("registros con ID repetido descartados al cargar")
		}
	}

	load(repository.KeyProducts, func(raw []byte) (int, error) {
		recs, err := decodeRecords[entity.Product](raw)
		if err != nil {
			return 0, err
		}
		return uc.state.Products.Reset(recs), nil
	})
	load(repository.KeySales, func(raw []byte) (int, error) {
		recs, err := decodeRecords[entity.Sale](raw)
		if err != nil {
			return 0, err
		}
		return uc.state.Sales.Reset(recs), nil
	})
	load(repository.KeyDebts, func(raw []byte) (int, error) {
		recs, err := decodeRecords[entity.Debt](raw)
		if err != nil {
			return 0, err
		}
		return uc.state.Debts.Reset(recs), nil
	})

	uc.log.Info().
		Int("products", uc.state.Products.Len()).
		Int("sales", uc.state.Sales.Len()).
		Int("debts", uc.state.Debts.Len()).
		Msg("ledger cargado")

	if len(failures) > 0 {
		return fmt.Errorf("%w: cargar ledger: %s", domain.ErrPersistence, strings.Join(failures, "; "))
	}
	return nil
}

// ── Productos ────────────────────────────────────────────────────────────────

// AddProduct valida el borrador, asigna ID y lo inserta. Sin efectos en otras colecciones.
func (uc *LedgerUseCase) AddProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in, err := ValidateProductDraft(in)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	product := entity.Product{
		ID:       uc.newID(),
		Name:     in.Name,
		Category: in.Category,
		Cost:     in.Cost,
		Price:    in.Price,
		Stock:    in.Stock,
	}
	if err := uc.state.Products.Insert(product); err != nil {
		return nil, fmt.Errorf("insertar producto: %w", err)
	}
	return toProductResponse(product), uc.persist(ctx, repository.KeyProducts)
}

// ImportProducts agrega varios productos. Si alguno es inválido no se inserta ninguno.
func (uc *LedgerUseCase) ImportProducts(ctx context.Context, drafts []dto.CreateProductRequest) (*dto.ImportProductsResponse, error) {
	valid := make([]dto.CreateProductRequest, 0, len(drafts))
	for i, in := range drafts {
		v, err := ValidateProductDraft(in)
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", i+1, err)
		}
		valid = append(valid, v)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	out := &dto.ImportProductsResponse{Items: make([]dto.ProductResponse, 0, len(valid))}
	for _, in := range valid {
		product := entity.Product{
			ID:       uc.newID(),
			Name:     in.Name,
			Category: in.Category,
			Cost:     in.Cost,
			Price:    in.Price,
			Stock:    in.Stock,
		}
		if err := uc.state.Products.Insert(product); err != nil {
			// Deshacer lo insertado para mantener el todo-o-nada.
			for _, p := range out.Items {
				uc.state.Products.Delete(p.ID)
			}
			return nil, fmt.Errorf("insertar producto: %w", err)
		}
		out.Items = append(out.Items, *toProductResponse(product))
	}
	out.Imported = len(out.Items)
	if out.Imported == 0 {
		return out, nil
	}
	return out, uc.persist(ctx, repository.KeyProducts)
}

// UpdateProduct edita nombre, categoría, costo o precio. El stock no se edita aquí.
// Las ventas ya registradas conservan su ganancia original.
func (uc *LedgerUseCase) UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := ValidateProductPatch(in); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	err := uc.state.Products.Update(id, func(p *entity.Product) {
		if in.Name != nil {
			p.Name = strings.TrimSpace(*in.Name)
		}
		if in.Category != nil {
			p.Category = normalizeCategory(*in.Category)
		}
		if in.Cost != nil {
			p.Cost = *in.Cost
		}
		if in.Price != nil {
			p.Price = *in.Price
		}
	})
	if err != nil {
		return nil, err
	}
	product, _ := uc.state.Products.Get(id)
	return toProductResponse(product), uc.persist(ctx, repository.KeyProducts)
}

// DeleteProduct elimina el producto sin cascada: las ventas conservan su copia de nombre,
// total y ganancia. La confirmación del usuario es responsabilidad del llamador.
// Eliminar un ID inexistente no hace nada.
func (uc *LedgerUseCase) DeleteProduct(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !uc.state.Products.Delete(id) {
		return nil
	}
	return uc.persist(ctx, repository.KeyProducts)
}

// GetProduct obtiene un producto por ID.
func (uc *LedgerUseCase) GetProduct(id string) (*dto.ProductResponse, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	p, ok := uc.state.Products.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// ListProducts lista el catálogo en orden de alta. category vacío no filtra.
func (uc *LedgerUseCase) ListProducts(category string) *dto.ProductListResponse {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	category = strings.TrimSpace(category)
	items := make([]dto.ProductResponse, 0, uc.state.Products.Len())
	for _, p := range uc.state.Products.Values() {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}
}

// Categories categorías distintas del catálogo.
func (uc *LedgerUseCase) Categories() []string {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return domledger.DistinctCategories(uc.state.Products.Values())
}

// ── Ventas ───────────────────────────────────────────────────────────────────

// RecordSale registra una venta como una sola unidad lógica:
//  1. busca el producto (domain.ErrNotFound si no existe);
//  2. total = precio * cantidad, ganancia = total - costo * cantidad;
//  3. inserta la venta con copia del nombre del producto;
//  4. descuenta el stock sin piso (puede quedar negativo);
//  5. si es a crédito y hay cliente, crea una deuda pendiente por el total.
func (uc *LedgerUseCase) RecordSale(ctx context.Context, in dto.RecordSaleRequest) (*dto.RecordSaleResponse, error) {
	method, err := ValidateSaleRequest(in)
	if err != nil {
		return nil, err
	}
	customer := strings.TrimSpace(in.CustomerName)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	product, ok := uc.state.Products.Get(in.ProductID)
	if !ok {
		return nil, fmt.Errorf("venta de producto %q: %w", in.ProductID, domain.ErrNotFound)
	}

	qty := decimal.NewFromInt(int64(in.Quantity))
	total := product.Price.Mul(qty)
	profit := total.Sub(product.Cost.Mul(qty))
	now := uc.now()

	sale := entity.Sale{
		ID:            uc.newID(),
		ProductID:     product.ID,
		ProductName:   product.Name,
		Quantity:      in.Quantity,
		Total:         total,
		Profit:        profit,
		PaymentMethod: method,
		CustomerName:  customer,
		Date:          now,
	}

	var debt *entity.Debt
	if method == entity.PaymentDebt && customer != "" {
		debt = &entity.Debt{
			ID:           uc.newID(),
			CustomerName: customer,
			Amount:       total,
			Description:  fmt.Sprintf(uc.debtFormat, in.Quantity, product.Name),
			Date:         now,
			Status:       entity.DebtPending,
		}
		if _, exists := uc.state.Debts.Get(debt.ID); exists {
			return nil, fmt.Errorf("insertar deuda: %w", domain.ErrDuplicate)
		}
	}

	if err := uc.state.Sales.Insert(sale); err != nil {
		return nil, fmt.Errorf("insertar venta: %w", err)
	}
	product.Stock -= in.Quantity
	if err := uc.state.Products.Replace(product); err != nil {
		uc.state.Sales.Delete(sale.ID)
		return nil, fmt.Errorf("descontar stock: %w", err)
	}

	keys := []string{repository.KeySales, repository.KeyProducts}
	out := &dto.RecordSaleResponse{Sale: *toSaleResponse(sale)}
	if debt != nil {
		if err := uc.state.Debts.Insert(*debt); err != nil {
			product.Stock += in.Quantity
			_ = uc.state.Products.Replace(product)
			uc.state.Sales.Delete(sale.ID)
			return nil, fmt.Errorf("insertar deuda: %w", err)
		}
		keys = append(keys, repository.KeyDebts)
		out.Debt = toDebtResponse(*debt)
	} else if method == entity.PaymentDebt {
		uc.log.Warn().Str("sale_id", sale.ID).Msg("venta a crédito sin cliente: no se registra deuda")
	}

	return out, uc.persist(ctx, keys...)
}

// ListSales ventas de la más reciente a la más antigua. limit <= 0 devuelve todas.
func (uc *LedgerUseCase) ListSales(limit int) *dto.SaleListResponse {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	recent := domledger.RecentSales(uc.state.Sales.Values(), limit)
	items := make([]dto.SaleResponse, 0, len(recent))
	for _, s := range recent {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{Items: items, Total: uc.state.Sales.Len()}
}

// ── Deudas ───────────────────────────────────────────────────────────────────

// AddDebt registra una deuda manual en estado pending.
func (uc *LedgerUseCase) AddDebt(ctx context.Context, in dto.CreateDebtRequest) (*dto.DebtResponse, error) {
	in, err := ValidateDebtDraft(in)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	debt := entity.Debt{
		ID:           uc.newID(),
		CustomerName: in.CustomerName,
		Amount:       in.Amount,
		Description:  in.Description,
		Date:         uc.now(),
		Status:       entity.DebtPending,
	}
	if err := uc.state.Debts.Insert(debt); err != nil {
		return nil, fmt.Errorf("insertar deuda: %w", err)
	}
	return toDebtResponse(debt), uc.persist(ctx, repository.KeyDebts)
}

// SettleDebt marca la deuda como pagada. Saldar una deuda ya pagada no cambia nada ni falla.
func (uc *LedgerUseCase) SettleDebt(ctx context.Context, id string) (*dto.DebtResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	debt, ok := uc.state.Debts.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if debt.Status == entity.DebtPaid {
		return toDebtResponse(debt), nil
	}
	debt.Status = entity.DebtPaid
	if err := uc.state.Debts.Replace(debt); err != nil {
		return nil, err
	}
	return toDebtResponse(debt), uc.persist(ctx, repository.KeyDebts)
}

// ListDebts deudas de la más reciente a la más antigua. status vacío no filtra.
func (uc *LedgerUseCase) ListDebts(status string) (*dto.DebtListResponse, error) {
	var filter entity.DebtStatus
	if strings.TrimSpace(status) != "" {
		st, err := ParseDebtStatus(status)
		if err != nil {
			return nil, err
		}
		filter = st
	}

	uc.mu.RLock()
	defer uc.mu.RUnlock()

	all := uc.state.Debts.Values()
	items := make([]dto.DebtResponse, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if filter != "" && all[i].Status != filter {
			continue
		}
		items = append(items, *toDebtResponse(all[i]))
	}
	return &dto.DebtListResponse{
		Items:        items,
		Total:        len(items),
		PendingTotal: domledger.PendingDebtTotal(all),
	}, nil
}

// Snapshot copia consistente del ledger para consultas, reportes y consejos.
func (uc *LedgerUseCase) Snapshot() domledger.Snapshot {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.state.Snapshot()
}

// ── persistencia ─────────────────────────────────────────────────────────────

// Export serializa las tres colecciones bajo un mismo lock de lectura, en el formato que
// guarda el almacén. Ninguna venta queda sin su descuento de stock ni sin su deuda.
func (uc *LedgerUseCase) Export() ([]repository.KVEntry, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.encode(repository.KeyProducts, repository.KeySales, repository.KeyDebts)
}

// persist guarda las colecciones indicadas. Se llama con el lock tomado y después de
// que todas las mutaciones en memoria terminaron.
func (uc *LedgerUseCase) persist(ctx context.Context, keys ...string) error {
	entries, err := uc.encode(keys...)
	if err != nil {
		return uc.persistenceWarning(keys, err)
	}
	if err := uc.store.SaveMany(ctx, entries); err != nil {
		return uc.persistenceWarning(keys, err)
	}
	return nil
}

// encode serializa las colecciones indicadas. Requiere el lock (lectura o escritura).
func (uc *LedgerUseCase) encode(keys ...string) ([]repository.KVEntry, error) {
	entries := make([]repository.KVEntry, 0, len(keys))
	for _, key := range keys {
		var (
			raw []byte
			err error
		)
		switch key {
		case repository.KeyProducts:
			raw, err = encodeRecords(uc.state.Products.Values())
		case repository.KeySales:
			raw, err = encodeRecords(uc.state.Sales.Values())
		case repository.KeyDebts:
			raw, err = encodeRecords(uc.state.Debts.Values())
		default:
			err = fmt.Errorf("clave desconocida %q", key)
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, repository.KVEntry{Key: key, Value: raw})
	}
	return entries, nil
}

func (uc *LedgerUseCase) persistenceWarning(keys []string, err error) error {
	uc.log.Warn().Err(err).Strs("keys", keys).Msg("no se pudo persistir el ledger; el estado en memoria sigue vigente")
	return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
}

// ── mapeo a DTO ──────────────────────────────────────────────────────────────

func toProductResponse(p entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Cost:     p.Cost,
		Price:    p.Price,
		Stock:    p.Stock,
		LowStock: p.IsLowStock(),
	}
}

// ToSaleResponse mapea una venta al DTO de salida.
func ToSaleResponse(s entity.Sale) dto.SaleResponse {
	return *toSaleResponse(s)
}

func toSaleResponse(s entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:            s.ID,
		ProductID:     s.ProductID,
		ProductName:   s.ProductName,
		Quantity:      s.Quantity,
		Total:         s.Total,
		Profit:        s.Profit,
		PaymentMethod: string(s.PaymentMethod),
		CustomerName:  s.CustomerName,
		Date:          s.Date,
	}
}

func toDebtResponse(d entity.Debt) *dto.DebtResponse {
	return &dto.DebtResponse{
		ID:           d.ID,
		CustomerName: d.CustomerName,
		Amount:       d.Amount,
		Description:  d.Description,
		Date:         d.Date,
		Status:       string(d.Status),
	}
}

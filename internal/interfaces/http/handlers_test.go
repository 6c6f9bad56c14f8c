package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caderno-api/internal/application/advice"
	appanalytics "github.com/jhoicas/Caderno-api/internal/application/analytics"
	"github.com/jhoicas/Caderno-api/internal/application/dto"
	"github.com/jhoicas/Caderno-api/internal/application/ledger"
	"github.com/jhoicas/Caderno-api/internal/application/report"
	"github.com/jhoicas/Caderno-api/internal/domain/repository"
	"github.com/jhoicas/Caderno-api/internal/infrastructure/csvio"
	"github.com/jhoicas/Caderno-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Caderno-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type blockingAdvisor struct{ release chan struct{} }

func (a *blockingAdvisor) GenerateAdvice(ctx context.Context, _ string) (string, error) {
	select {
	case <-a.release:
		return "- Venda mais pão", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type failingStore struct{ *memory.KVStore }

func (failingStore) SaveMany(context.Context, []repository.KVEntry) error {
	return errors.New("disco lleno")
}

type testEnv struct {
	app     *fiber.App
	advisor *blockingAdvisor
}

func newTestEnv(t *testing.T, store repository.KVStore) *testEnv {
	t.Helper()
	ledgerUC := ledger.NewLedgerUseCase(store)
	advisor := &blockingAdvisor{release: make(chan struct{})}
	adviceUC, err := advice.NewAdviceUseCase(advisor, ledgerUC, advice.Config{
		BusinessName: "Cantina",
		Timeout:      5 * time.Second,
		Logger:       zerolog.Nop(),
	})
	require.NoError(t, err)
	t.Cleanup(adviceUC.Close)

	pdf := fakePDF{}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:      "caderno-test",
		LedgerUC:     ledgerUC,
		DashboardUC:  appanalytics.NewDashboardUseCase(ledgerUC, "Cantina", time.UTC),
		AdviceUC:     adviceUC,
		ReportUC:     report.NewReportUseCase(ledgerUC, pdf, csvio.NewExporter(time.UTC), "Cantina", time.UTC),
		ParseCatalog: csvio.ParseProducts,
	})
	return &testEnv{app: app, advisor: advisor}
}

type fakePDF struct{}

func (fakePDF) GenerateDailyPDF(context.Context, *report.DailyReport) ([]byte, error) {
	return []byte("%PDF-1.3 fake"), nil
}

func (e *testEnv) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (e *testEnv) createProduct(t *testing.T, body string) dto.ProductResponse {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/products", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.ProductResponse](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	env := newTestEnv(t, memory.NewKVStore())
	resp := env.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProducts_CRUD(t *testing.T) {
	env := newTestEnv(t, memory.NewKVStore())

	p := env.createProduct(t, `{"name":"Pão","category":"Padaria","cost":50,"price":"100","stock":30}`)
	assert.Equal(t, "Pão", p.Name)
	assert.Equal(t, "100", p.Price.String())
	assert.False(t, p.LowStock)

	resp := env.do(t, http.MethodGet, "/api/products/"+p.ID, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/products/"+p.ID, `{"price":"120"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "120", decode[dto.ProductResponse](t, resp).Price.String())

	env.createProduct(t, `{"name":"Leite","price":200}`)
	resp = env.do(t, http.MethodGet, "/api/products?category=general", "")
	list := decode[dto.ProductListResponse](t, resp)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Leite", list.Items[0].Name)

	resp = env.do(t, http.MethodGet, "/api/products/categories", "")
	cats := decode[map[string][]string](t, resp)
	assert.Equal(t, []string{"General", "Padaria"}, cats["items"])

	// Borrar exige confirmación.
	resp = env.do(t, http.MethodDelete, "/api/products/"+p.ID, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "CONFIRMATION_REQUIRED", decode[dto.ErrorResponse](t, resp).Code)

	resp = env.do(t, http.MethodDelete, "/api/products/"+p.ID+"?confirm=true", "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/products/"+p.ID, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProducts_Validacion(t *testing.T) {
	env := newTestEnv(t, memory.NewKVStore())

	resp := env.do(t, http.MethodPost, "/api/products", `{"name":"  ","price":10}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	resp = env.do(t, http.MethodPost, "/api/products", `{"name":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)
}

func TestProducts_ImportCSV(t *testing.T) {
	env := newTestEnv(t, memory.NewKVStore())

	req := httptest.NewRequest(http.MethodPost, "/api/products/import", strings.NewReader("name,price,stock\nPão,100,30\nLeite,200,2\n"))
	req.Header.Set("Content-Type", "text/csv")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	out := decode[dto.ImportProductsResponse](t, resp)
	assert.Equal(t, 2, out.Imported)
	assert.True(t, out.Items[1].LowStock)

	req = httptest.NewRequest(http.MethodPost, "/api/products/import", strings.NewReader("name,price\nPão,abc\n"))
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSales_VentaACreditoCreaDeuda(t *testing.T) {
	env := newTestEnv(t, memory.NewKVStore())
	p := env.createProduct(t, `{"name":"Pão","cost":50,"price":100,"stock":10}`)

	resp := env.do(t, http.MethodPost, "/api/sales",
		`{"product_id":"`+p.ID+`","quantity":3,"payment_method":"debt","customer_name":"João"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	out := decode[dto.RecordSaleResponse](t, resp)
	assert.Equal(t, "300", out.Sale.Total.String())
	assert.Equal(t, "150", out.Sale.Profit.String())
	require.NotNil(t, out.Debt)
	assert.Equal(t, "pending", out.Debt.Status)

	resp = env.do(t, http.MethodGet, "/api/products/"+p.ID, "")
	assert.Equal(t, 7, decode[dto.ProductResponse](t, resp).Stock)

	resp = env.do(t, http.MethodGet, "/api/debts?status=pending", "")
	debts := decode[dto.DebtListResponse](t, resp)
	require.Equal(t, 1, debts.Total)
	assert.Equal(t, "300", debts.PendingTotal.String())

	// Saldar dos veces: idempotente.
	for i := 0; i < 2; i++ {
		resp = env.do(t, http.MethodPost, "/api/debts/"+out.Debt.ID+"/settle", "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "paid", decode[dto.DebtResponse](t, resp).Status)
	}

	resp = env.do(t, http.MethodGet, "/api/sales?limit=5", "")
	assert.Equal(t, 1, decode[dto.SaleListResponse](t, resp).Total)
}

func TestSales_Errores(t *testing.T) {
	env := newTestEnv(t, memory.NewKVStore())

	resp := env.do(t, http.MethodPost, "/api/sales", `{"product_id":"nope","quantity":1,"payment_method":"cash"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/sales", `{"product_id":"x","quantity":0,"payment_method":"cash"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/debts?status=late", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/debts/nope/settle", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestPersistenceWarning(t *testing.T) {
	env := newTestEnv(t, failingStore{memory.NewKVStore()})

	resp := env.do(t, http.MethodPost, "/api/debts", `{"customer_name":"Ana","amount":"500"}`)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode, "el cambio se aplica aunque no se guarde")
	assert.Contains(t, resp.Header.Get(apphttp.HeaderLedgerWarning), "disco lleno")

	resp = env.do(t, http.MethodGet, "/api/debts", "")
	assert.Equal(t, 1, decode[dto.DebtListResponse](t, resp).Total)
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t, memory.NewKVStore())
	p := env.createProduct(t, `{"name":"Pão","cost":50,"price":100,"stock":4}`)
	env.do(t, http.MethodPost, "/api/sales", `{"product_id":"`+p.ID+`","quantity":1,"payment_method":"cash"}`)

	resp := env.do(t, http.MethodGet, "/api/dashboard/summary", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	summary := decode[dto.DashboardSummaryDTO](t, resp)
	assert.Equal(t, "Cantina", summary.BusinessName)
	assert.Equal(t, "100", summary.TodaySales.String())
	assert.Equal(t, 1, summary.LowStock)
	assert.Len(t, summary.RecentSales, 1)
}

func TestAdvice_UnaConsultaALaVez(t *testing.T) {
	env := newTestEnv(t, memory.NewKVStore())

	resp := env.do(t, http.MethodGet, "/api/advice", "")
	assert.Equal(t, "idle", decode[dto.AdviceTaskDTO](t, resp).State)

	resp = env.do(t, http.MethodPost, "/api/advice", "")
	require.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	task := decode[dto.AdviceTaskDTO](t, resp)
	assert.Equal(t, "running", task.State)

	resp = env.do(t, http.MethodPost, "/api/advice", `{"business_name":"Outra"}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ADVICE_IN_FLIGHT", decode[dto.ErrorResponse](t, resp).Code)

	close(env.advisor.release)
	require.Eventually(t, func() bool {
		resp := env.do(t, http.MethodGet, "/api/advice", "")
		return decode[dto.AdviceTaskDTO](t, resp).State == "done"
	}, 2*time.Second, 10*time.Millisecond)

	resp = env.do(t, http.MethodGet, "/api/advice", "")
	done := decode[dto.AdviceTaskDTO](t, resp)
	assert.Equal(t, task.ID, done.ID)
	assert.Equal(t, "- Venda mais pão", done.Text)
}

func TestReports(t *testing.T) {
	env := newTestEnv(t, memory.NewKVStore())
	env.createProduct(t, `{"name":"Pão","price":100,"stock":4}`)

	resp := env.do(t, http.MethodGet, "/api/reports/products.csv", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "id,name,category,cost,price,stock\n"))
	assert.Contains(t, string(body), ",Pão,General,0,100,4")

	resp = env.do(t, http.MethodGet, "/api/reports/daily.pdf", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "caderno-")
}

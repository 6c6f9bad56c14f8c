package advice

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	domledger "github.com/jhoicas/Caderno-api/internal/domain/ledger"
)

// recentSalesInPrompt ventas recientes que se envían al modelo.
const recentSalesInPrompt = 10

// promptLanguage textos del consultor en un idioma.
type promptLanguage struct {
	tag           language.Tag
	template      string // %q nombre del negocio, luego productos, ventas y deudas en JSON
	fallbackEmpty string
	fallbackError string
}

var supportedLanguages = []promptLanguage{
	{
		tag: language.Portuguese,
		template: `Você é um consultor financeiro especialista em pequenos negócios informais (zungueiras, cantinas, barbeiros).
Analise os seguintes dados do negócio %q:

Produtos: %s
Vendas recentes: %s
Dívidas pendentes: %s

Por favor, forneça 3 dicas práticas e curtas em português para melhorar o lucro ou gerir melhor o negócio.
Use uma linguagem simples e direta. Retorne em formato de lista Markdown.`,
		fallbackEmpty: "Não foi possível gerar dicas no momento. Continue vendendo bem!",
		fallbackError: "Ocorreu um erro ao consultar o consultor IA. Verifique sua conexão.",
	},
	{
		tag: language.Spanish,
		template: `Eres un asesor financiero experto en pequeños negocios informales (tiendas de barrio, cantinas, peluquerías).
Analiza los siguientes datos del negocio %q:

Productos: %s
Ventas recientes: %s
Deudas pendientes: %s

Por favor, entrega 3 consejos prácticos y cortos en español para mejorar la ganancia o administrar mejor el negocio.
Usa un lenguaje simple y directo. Responde en formato de lista Markdown.`,
		fallbackEmpty: "No fue posible generar consejos en este momento. ¡Sigue vendiendo bien!",
		fallbackError: "Ocurrió un error al consultar el asesor IA. Verifica tu conexión.",
	},
}

var languageMatcher = func() language.Matcher {
	tags := make([]language.Tag, 0, len(supportedLanguages))
	for _, l := range supportedLanguages {
		tags = append(tags, l.tag)
	}
	return language.NewMatcher(tags)
}()

// matchLanguage elige el idioma soportado más cercano a raw (ej: "pt-AO", "es-CO").
// Sin coincidencia usa portugués.
func matchLanguage(raw string) promptLanguage {
	_, idx := language.MatchStrings(languageMatcher, raw)
	if idx < 0 || idx >= len(supportedLanguages) {
		idx = 0
	}
	return supportedLanguages[idx]
}

// LanguageTag idioma efectivo para raw; útil para formatear montos en el mismo idioma.
func LanguageTag(raw string) language.Tag {
	return matchLanguage(raw).tag
}

// Estructuras compactas enviadas al modelo.
type promptProduct struct {
	Name  string  `json:"n"`
	Stock int     `json:"s"`
	Price float64 `json:"p"`
}

type promptSale struct {
	Name  string  `json:"n"`
	Total float64 `json:"t"`
}

type promptDebt struct {
	Customer string  `json:"c"`
	Amount   float64 `json:"v"`
}

// buildPrompt arma el prompt con productos, las 10 ventas más recientes y las deudas pendientes.
func (l promptLanguage) buildPrompt(businessName string, snap domledger.Snapshot) (string, error) {
	products := make([]promptProduct, 0, len(snap.Products))
	for _, p := range snap.Products {
		products = append(products, promptProduct{Name: p.Name, Stock: p.Stock, Price: p.Price.InexactFloat64()})
	}
	recent := domledger.RecentSales(snap.Sales, recentSalesInPrompt)
	sales := make([]promptSale, 0, len(recent))
	for _, s := range recent {
		sales = append(sales, promptSale{Name: s.ProductName, Total: s.Total.InexactFloat64()})
	}
	pending := domledger.PendingDebts(snap.Debts)
	debts := make([]promptDebt, 0, len(pending))
	for _, d := range pending {
		debts = append(debts, promptDebt{Customer: d.CustomerName, Amount: d.Amount.InexactFloat64()})
	}

	pj, err := json.Marshal(products)
	if err != nil {
		return "", fmt.Errorf("serializar productos: %w", err)
	}
	sj, err := json.Marshal(sales)
	if err != nil {
		return "", fmt.Errorf("serializar ventas: %w", err)
	}
	dj, err := json.Marshal(debts)
	if err != nil {
		return "", fmt.Errorf("serializar deudas: %w", err)
	}
	return fmt.Sprintf(l.template, strings.TrimSpace(businessName), pj, sj, dj), nil
}

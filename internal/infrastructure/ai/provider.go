package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/Caderno-api/internal/application/ports"
)

// ErrNoProvider se devuelve cuando no hay consultor configurado (AI_PROVIDER=none).
var ErrNoProvider = errors.New("AI: ningún proveedor configurado")

// ProviderConfig datos necesarios para elegir el adaptador.
type ProviderConfig struct {
	Provider        string // gemini | anthropic | none
	GeminiAPIKey    string
	GeminiModel     string
	AnthropicAPIKey string
	AnthropicModel  string
}

// NewAdvisor devuelve el adaptador según Provider.
func NewAdvisor(cfg ProviderConfig) (ports.AdvisorService, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "gemini":
		return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel), nil
	case "anthropic", "claude":
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	case "none", "off":
		return disabledAdvisor{}, nil
	default:
		return nil, fmt.Errorf("AI: proveedor desconocido %q", cfg.Provider)
	}
}

// disabledAdvisor siempre falla; el caso de uso responde con el mensaje de respaldo.
type disabledAdvisor struct{}

func (disabledAdvisor) GenerateAdvice(context.Context, string) (string, error) {
	return "", ErrNoProvider
}

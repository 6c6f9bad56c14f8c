package ports

import "context"

// AdvisorService define el puerto de salida para el consultor de IA.
// Cualquier adaptador (Gemini, Anthropic, mock) debe implementar esta interfaz.
// El texto devuelto es libre y el núcleo no lo interpreta.
type AdvisorService interface {
	// GenerateAdvice envía el prompt al modelo y devuelve su respuesta en texto.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	GenerateAdvice(ctx context.Context, prompt string) (string, error)
}

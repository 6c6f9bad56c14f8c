// Package advice orquesta la consulta al consultor de IA: arma el snapshot del negocio,
// lo envía de forma asíncrona y entrega una sola vez el texto (o un mensaje de respaldo).
package advice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Caderno-api/internal/application/dto"
	"github.com/jhoicas/Caderno-api/internal/application/ports"
	"github.com/jhoicas/Caderno-api/internal/domain"
	domledger "github.com/jhoicas/Caderno-api/internal/domain/ledger"
)

const (
	defaultTimeout = 30 * time.Second
	// Capacidad del pool: la regla de una sola consulta en curso la aplica el caso de uso;
	// el margen cubre workers que terminan y aún no volvieron al pool.
	advicePoolSize = 4
)

// SnapshotSource fuente de lectura del ledger.
type SnapshotSource interface {
	Snapshot() domledger.Snapshot
}

// Config opciones del caso de uso.
type Config struct {
	BusinessName string        // nombre por defecto del negocio
	Language     string        // "pt" (por defecto) o "es"; acepta etiquetas BCP 47
	Timeout      time.Duration // timeout de cada llamada al modelo
	Logger       zerolog.Logger
}

// AdviceUseCase permite como máximo una consulta en curso; una segunda solicitud mientras
// la primera corre recibe domain.ErrAdviceInFlight (sin cola ni reintentos).
type AdviceUseCase struct {
	llm          ports.AdvisorService
	source       SnapshotSource
	pool         *ants.Pool
	lang         promptLanguage
	businessName string
	timeout      time.Duration
	log          zerolog.Logger
	now          func() time.Time

	baseCtx context.Context
	cancel  context.CancelFunc

	mu      sync.Mutex
	current *Task
}

// NewAdviceUseCase construye el caso de uso y su pool de workers. Llamar Close al apagar.
func NewAdviceUseCase(llm ports.AdvisorService, source SnapshotSource, cfg Config) (*AdviceUseCase, error) {
	pool, err := ants.NewPool(advicePoolSize, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("consejos: crear pool: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &AdviceUseCase{
		llm:          llm,
		source:       source,
		pool:         pool,
		lang:         matchLanguage(cfg.Language),
		businessName: cfg.BusinessName,
		timeout:      cfg.Timeout,
		log:          cfg.Logger,
		now:          time.Now,
		baseCtx:      ctx,
		cancel:       cancel,
	}, nil
}

// Request inicia una consulta con el snapshot actual. businessName vacío usa el configurado.
func (uc *AdviceUseCase) Request(businessName string) (*Task, error) {
	name := strings.TrimSpace(businessName)
	if name == "" {
		name = uc.businessName
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.current != nil && !uc.current.finished() {
		return nil, domain.ErrAdviceInFlight
	}

	prompt, err := uc.lang.buildPrompt(name, uc.source.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("consejos: armar prompt: %w", err)
	}

	task := &Task{
		ID:           uuid.New().String(),
		BusinessName: name,
		StartedAt:    uc.now(),
		done:         make(chan struct{}),
	}
	if err := uc.pool.Submit(func() { uc.run(task, prompt) }); err != nil {
		if errors.Is(err, ants.ErrPoolOverload) {
			return nil, domain.ErrAdviceInFlight
		}
		return nil, fmt.Errorf("consejos: enviar tarea: %w", err)
	}
	uc.current = task
	return task, nil
}

// Latest última consulta iniciada, o nil si nunca se pidió.
func (uc *AdviceUseCase) Latest() *Task {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.current
}

// Status estado de la última consulta para la capa HTTP.
func (uc *AdviceUseCase) Status() dto.AdviceTaskDTO {
	task := uc.Latest()
	if task == nil {
		return dto.AdviceTaskDTO{State: "idle"}
	}
	return task.DTO()
}

// Close cancela la consulta en curso y libera el pool.
func (uc *AdviceUseCase) Close() {
	uc.cancel()
	uc.pool.Release()
}

func (uc *AdviceUseCase) run(task *Task, prompt string) {
	defer func() {
		if r := recover(); r != nil {
			uc.log.Error().Interface("panic", r).Str("task_id", task.ID).Msg("consejos: pánico en la consulta")
			task.finish(uc.lang.fallbackError, true, uc.now())
		}
	}()

	ctx, cancel := context.WithTimeout(uc.baseCtx, uc.timeout)
	defer cancel()

	text, err := uc.llm.GenerateAdvice(ctx, prompt)
	switch {
	case err != nil:
		uc.log.Warn().Err(err).Str("task_id", task.ID).Msg("consejos: fallo del consultor IA")
		task.finish(uc.lang.fallbackError, true, uc.now())
	case strings.TrimSpace(text) == "":
		task.finish(uc.lang.fallbackEmpty, true, uc.now())
	default:
		task.finish(strings.TrimSpace(text), false, uc.now())
	}
}

// Task una consulta de consejos. El resultado se entrega una sola vez al cerrar Done().
type Task struct {
	ID           string
	BusinessName string
	StartedAt    time.Time

	done       chan struct{}
	once       sync.Once
	text       string
	fallback   bool
	finishedAt time.Time
}

// Done se cierra cuando el resultado está disponible.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Result devuelve el texto y si es el mensaje de respaldo. ok=false mientras siga en curso.
func (t *Task) Result() (text string, fallback bool, ok bool) {
	if !t.finished() {
		return "", false, false
	}
	return t.text, t.fallback, true
}

// Wait espera el resultado o la cancelación de ctx.
func (t *Task) Wait(ctx context.Context) (string, error) {
	select {
	case <-t.done:
		return t.text, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// DTO representación para la capa HTTP.
func (t *Task) DTO() dto.AdviceTaskDTO {
	started := t.StartedAt
	out := dto.AdviceTaskDTO{
		ID:           t.ID,
		State:        "running",
		BusinessName: t.BusinessName,
		StartedAt:    &started,
	}
	if text, fallback, ok := t.Result(); ok {
		finished := t.finishedAt
		out.State = "done"
		out.Text = text
		out.Fallback = fallback
		out.FinishedAt = &finished
	}
	return out
}

func (t *Task) finished() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

func (t *Task) finish(text string, fallback bool, at time.Time) {
	t.once.Do(func() {
		t.text = text
		t.fallback = fallback
		t.finishedAt = at
		close(t.done)
	})
}

package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// jobTimeout límite de cada ejecución programada.
const jobTimeout = 2 * time.Minute

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Scheduler envoltorio de cron.Cron con la zona horaria del negocio.
type Scheduler struct {
	sched *cron.Cron
	log   zerolog.Logger
}

// New crea el planificador. loc nil usa time.Local.
func New(loc *time.Location, log zerolog.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		sched: cron.New(cron.WithLocation(loc), cron.WithParser(cronParser)),
		log:   log,
	}
}

// AddBackup programa job según spec ("0 3 * * *", "@daily", "@every 6h").
func (s *Scheduler) AddBackup(spec string, job *BackupJob) error {
	_, err := s.sched.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		_, _ = job.Run(ctx) // Run ya registra el resultado
	})
	if err != nil {
		return fmt.Errorf("scheduler: expresión %q inválida: %w", spec, err)
	}
	s.log.Info().Str("spec", spec).Msg("scheduler: respaldo programado")
	return nil
}

// Len tareas programadas.
func (s *Scheduler) Len() int {
	return len(s.sched.Entries())
}

// Start arranca el planificador en su propia goroutine.
func (s *Scheduler) Start() {
	s.sched.Start()
}

// Stop detiene el planificador y espera a que terminen las tareas en curso o a ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.sched.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn().Msg("scheduler: apagado sin esperar tareas en curso")
	}
}

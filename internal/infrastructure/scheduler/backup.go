// Package scheduler ejecuta tareas periódicas (respaldo del ledger) con robfig/cron.
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Caderno-api/internal/domain/repository"
)

// defaultKeep respaldos que se conservan en el directorio.
const defaultKeep = 14

// Backuper copia el almacén completo a dst.
type Backuper interface {
	Backup(ctx context.Context, dst string) error
}

// EntrySource entrega las colecciones del ledger serializadas en un mismo instante.
type EntrySource interface {
	Export() ([]repository.KVEntry, error)
}

// SnapshotBackuper respalda el ledger en un JSON {clave: payload}.
// Se usa con los drivers que no tienen copia nativa (postgres, redis, memory). Lee del
// ledger en memoria y no del almacén: tres lecturas sueltas podrían mezclar el antes y
// el después de una venta.
type SnapshotBackuper struct {
	source EntrySource
}

// NewSnapshotBackuper construye el respaldo genérico.
func NewSnapshotBackuper(source EntrySource) *SnapshotBackuper {
	return &SnapshotBackuper{source: source}
}

// Backup escribe las tres claves del ledger.
func (b *SnapshotBackuper) Backup(ctx context.Context, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries, err := b.source.Export()
	if err != nil {
		return fmt.Errorf("exportar ledger: %w", err)
	}
	dump := make(map[string]json.RawMessage, len(entries))
	for _, e := range entries {
		dump[e.Key] = e.Value
	}
	out, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar respaldo: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("crear directorio de respaldo: %w", err)
	}
	return os.WriteFile(dst, out, 0o600)
}

// BackupJob genera un archivo con marca de tiempo por ejecución y poda los más viejos.
type BackupJob struct {
	backuper Backuper
	dir      string
	ext      string
	keep     int
	log      zerolog.Logger
	now      func() time.Time
}

// NewBackupJob construye la tarea. ext incluye el punto (".db", ".json").
func NewBackupJob(b Backuper, dir, ext string, log zerolog.Logger) *BackupJob {
	return &BackupJob{backuper: b, dir: dir, ext: ext, keep: defaultKeep, log: log, now: time.Now}
}

// Run ejecuta un respaldo y devuelve la ruta creada.
func (j *BackupJob) Run(ctx context.Context) (string, error) {
	name := fmt.Sprintf("caderno-%s%s", j.now().Format("20060102-150405"), j.ext)
	dst := filepath.Join(j.dir, name)
	if err := j.backuper.Backup(ctx, dst); err != nil {
		j.log.Error().Err(err).Str("path", dst).Msg("respaldo: falló")
		return "", fmt.Errorf("respaldo %s: %w", dst, err)
	}
	j.log.Info().Str("path", dst).Msg("respaldo: completado")
	if err := j.prune(); err != nil {
		j.log.Warn().Err(err).Msg("respaldo: no se pudieron borrar respaldos viejos")
	}
	return dst, nil
}

// prune borra los respaldos más viejos por encima de keep. El nombre ordena por fecha.
func (j *BackupJob) prune() error {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		return err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "caderno-") && strings.HasSuffix(e.Name(), j.ext) {
			names = append(names, e.Name())
		}
	}
	if len(names) <= j.keep {
		return nil
	}
	sort.Strings(names)
	for _, n := range names[:len(names)-j.keep] {
		if err := os.Remove(filepath.Join(j.dir, n)); err != nil {
			return err
		}
	}
	return nil
}

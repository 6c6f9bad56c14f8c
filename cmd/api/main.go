package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Caderno-api/internal/application/advice"
	appanalytics "github.com/jhoicas/Caderno-api/internal/application/analytics"
	"github.com/jhoicas/Caderno-api/internal/application/ledger"
	"github.com/jhoicas/Caderno-api/internal/application/report"
	"github.com/jhoicas/Caderno-api/internal/domain"
	infraai "github.com/jhoicas/Caderno-api/internal/infrastructure/ai"
	"github.com/jhoicas/Caderno-api/internal/infrastructure/csvio"
	"github.com/jhoicas/Caderno-api/internal/infrastructure/kvstore"
	infrapdf "github.com/jhoicas/Caderno-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Caderno-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/Caderno-api/internal/interfaces/http"
	"github.com/jhoicas/Caderno-api/pkg/config"
	"github.com/jhoicas/Caderno-api/pkg/logger"
	"github.com/jhoicas/Caderno-api/pkg/money"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	loc, err := cfg.App.LoadLocation()
	if err != nil {
		log.Warn().Err(err).Msg("zona horaria inválida, se usa la del sistema")
	}

	ctx := context.Background()
	store, err := kvstore.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar almacén")
		}
	}()

	ledgerUC := ledger.NewLedgerUseCase(store.Store,
		ledger.WithLogger(log.Component("ledger")),
		ledger.WithLanguage(cfg.App.Language),
	)
	if err := ledgerUC.Load(ctx); err != nil {
		// Datos ilegibles no impiden arrancar: la colección afectada queda vacía.
		if !errors.Is(err, domain.ErrPersistence) {
			log.Fatal().Err(err).Msg("cargar ledger")
		}
		log.Warn().Err(err).Msg("ledger cargado parcialmente")
	}

	dashboardUC := appanalytics.NewDashboardUseCase(ledgerUC, cfg.App.BusinessName, loc)

	advisor, err := infraai.NewAdvisor(infraai.ProviderConfig{
		Provider:        cfg.AI.Provider,
		GeminiAPIKey:    cfg.AI.GeminiAPIKey,
		GeminiModel:     cfg.AI.GeminiModel,
		AnthropicAPIKey: cfg.AI.AnthropicAPIKey,
		AnthropicModel:  cfg.AI.AnthropicModel,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("consultor IA")
	}
	adviceUC, err := advice.NewAdviceUseCase(advisor, ledgerUC, advice.Config{
		BusinessName: cfg.App.BusinessName,
		Language:     cfg.App.Language,
		Timeout:      cfg.AI.Timeout(),
		Logger:       log.Component("advice"),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("caso de uso de consejos")
	}
	defer adviceUC.Close()

	// PDF: cierre del día con montos en el idioma del negocio
	formatter := money.NewFormatter(advice.LanguageTag(cfg.App.Language), cfg.App.Currency)
	reportUC := report.NewReportUseCase(
		ledgerUC, infrapdf.NewMarotoPDFGenerator(formatter), csvio.NewExporter(loc), cfg.App.BusinessName, loc,
	)

	// Respaldo programado (BACKUP_CRON vacío = desactivado)
	sched := scheduler.New(loc, log.Component("backup"))
	if cfg.Backup.Cron != "" {
		backuper, ext := store.Backuper(ledgerUC)
		job := scheduler.NewBackupJob(backuper, cfg.Backup.Dir, ext, log.Component("backup"))
		if err := sched.AddBackup(cfg.Backup.Cron, job); err != nil {
			log.Fatal().Err(err).Msg("programar respaldo")
		}
		sched.Start()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // el PDF puede tardar
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Caderno API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:      cfg.App.Name,
		LedgerUC:     ledgerUC,
		DashboardUC:  dashboardUC,
		AdviceUC:     adviceUC,
		ReportUC:     reportUC,
		ParseCatalog: csvio.ParseProducts,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	sched.Stop(shutdownCtx)

	log.Info().Msg("aplicación detenida")
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/diarco-data/compras-monitor/internal/application/indicators"
	appstock "github.com/diarco-data/compras-monitor/internal/application/stock"
	"github.com/diarco-data/compras-monitor/internal/domain/repository"
	"github.com/diarco-data/compras-monitor/internal/infrastructure/cache"
	"github.com/diarco-data/compras-monitor/internal/infrastructure/mssql"
	"github.com/diarco-data/compras-monitor/internal/infrastructure/postgres"
	httpRouter "github.com/diarco-data/compras-monitor/internal/interfaces/http"
	"github.com/diarco-data/compras-monitor/pkg/config"
	"github.com/diarco-data/compras-monitor/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	loc, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("tz", cfg.Report.Timezone).Msg("zona horaria inválida")
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.CIDB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL (diarco_data)")
	}
	defer pool.Close()

	erpDB, err := mssql.Open(ctx, cfg.ERPDB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a SQL Server (SGM)")
	}
	defer erpDB.Close()

	var sourceRepo repository.SourceOrderRepository = postgres.NewCIOrderRepository(pool)
	var erpRepo repository.ERPOrderRepository = mssql.NewERPOrderRepository(erpDB)

	// Caché de extracciones, opcional. Sin Redis el tablero consulta directo.
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		sourceRepo = cache.NewSourceOrderCache(sourceRepo, rdb, cfg.Report.CacheTTL, log)
		erpRepo = cache.NewERPOrderCache(erpRepo, rdb, cfg.Report.CacheTTL, log)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de extracciones activa")
	}

	stockRepo := postgres.NewStockRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	usageRepo := postgres.NewUsageRepository(pool)

	reportUC := indicators.NewReportUseCase(sourceRepo, erpRepo, loc, cfg.Report.ExtractorTimeout, log)
	weeklyUC := indicators.NewWeeklyUsageUseCase(usageRepo, loc, log)
	rankingUC := indicators.NewRankingUseCase(sourceRepo, catalogRepo, cfg.Report.ExtractorTimeout, log)
	coverageUC := appstock.NewCoverageUseCase(stockRepo, cfg.Report.ExtractorTimeout, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReportUC:    reportUC,
		WeeklyUC:    weeklyUC,
		RankingUC:   rankingUC,
		CoverageUC:  coverageUC,
		CatalogRepo: catalogRepo,
		JWTSecret:   cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}

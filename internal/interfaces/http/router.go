package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/diarco-data/compras-monitor/internal/application/indicators"
	"github.com/diarco-data/compras-monitor/internal/application/stock"
	"github.com/diarco-data/compras-monitor/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReportUC    *indicators.ReportUseCase
	WeeklyUC    *indicators.WeeklyUsageUseCase
	RankingUC   *indicators.RankingUseCase
	CoverageUC  *stock.CoverageUseCase
	CatalogRepo repository.CatalogRepository
	JWTSecret   string
}

// Router registra las rutas de la API. Todo el tablero va detrás del Bearer
// Token; /health queda público para los probes.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Indicadores de adopción
	ind := api.Group("/indicadores")
	indicatorsHandler := NewIndicatorsHandler(deps.ReportUC, deps.WeeklyUC, deps.RankingUC)
	ind.Get("/adopcion", indicatorsHandler.Adoption)
	ind.Get("/embudo", indicatorsHandler.Funnel)
	ind.Get("/sin-cruce", indicatorsHandler.Orphans)
	ind.Get("/uso-semanal", indicatorsHandler.WeeklyUsage)
	ind.Get("/ranking/compradores", indicatorsHandler.BuyerRanking)
	ind.Get("/ranking/proveedores", indicatorsHandler.SupplierRanking)

	// Stock
	stockGroup := api.Group("/stock")
	stockHandler := NewStockHandler(deps.CoverageUC)
	stockGroup.Get("/cobertura", stockHandler.Coverage)

	// Maestros para filtros del tablero
	catalog := api.Group("/catalogo")
	catalogHandler := NewCatalogHandler(deps.CatalogRepo)
	catalog.Get("/compradores", catalogHandler.Buyers)
	catalog.Get("/proveedores", catalogHandler.Suppliers)
}

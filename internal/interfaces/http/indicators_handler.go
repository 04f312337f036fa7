package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/diarco-data/compras-monitor/internal/application/dto"
	"github.com/diarco-data/compras-monitor/internal/application/indicators"
	"github.com/diarco-data/compras-monitor/internal/domain"
	"github.com/diarco-data/compras-monitor/internal/domain/adoption"
)

// IndicatorsHandler endpoints del tablero de adopción Connexa → SGM.
type IndicatorsHandler struct {
	reportUC  *indicators.ReportUseCase
	weeklyUC  *indicators.WeeklyUsageUseCase
	rankingUC *indicators.RankingUseCase
}

func NewIndicatorsHandler(
	reportUC *indicators.ReportUseCase,
	weeklyUC *indicators.WeeklyUsageUseCase,
	rankingUC *indicators.RankingUseCase,
) *IndicatorsHandler {
	return &IndicatorsHandler{reportUC: reportUC, weeklyUC: weeklyUC, rankingUC: rankingUC}
}

// Adoption reporte de conciliación del rango.
// GET /api/indicadores/adopcion?desde=...&hasta=...[&apertura=][&denominador=][&comprador=][&proveedor=][&sucursal=]
func (h *IndicatorsHandler) Adoption(c *fiber.Ctx) error {
	filter, err := parseOrderFilter(c)
	if err != nil {
		return badRequest(c, err)
	}

	dim, err := parseDimension(c.Query("apertura"))
	if err != nil {
		return badRequest(c, err)
	}
	denom, err := parseDenominator(c.Query("denominador"))
	if err != nil {
		return badRequest(c, err)
	}

	rep, err := h.reportUC.AdoptionReport(c.Context(), indicators.AdoptionQuery{
		Filter:      filter,
		Dimension:   dim,
		Denominator: denom,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(rep)
}

// Funnel conteos mensuales crudos por lado.
// GET /api/indicadores/embudo?desde=...&hasta=...
func (h *IndicatorsHandler) Funnel(c *fiber.Ctx) error {
	filter, err := parseOrderFilter(c)
	if err != nil {
		return badRequest(c, err)
	}
	rep, err := h.reportUC.MonthlyFunnel(c.Context(), filter)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(rep)
}

// Orphans detalle de huérfanos para drill-down.
// GET /api/indicadores/sin-cruce?desde=...&hasta=...
func (h *IndicatorsHandler) Orphans(c *fiber.Ctx) error {
	filter, err := parseOrderFilter(c)
	if err != nil {
		return badRequest(c, err)
	}
	rep, err := h.reportUC.Orphans(c.Context(), filter)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(rep)
}

// WeeklyUsage serie semanal de uso de Connexa.
// GET /api/indicadores/uso-semanal?desde=...&hasta=...
func (h *IndicatorsHandler) WeeklyUsage(c *fiber.Ctx) error {
	r, err := parseRange(c)
	if err != nil {
		return badRequest(c, err)
	}
	rep, err := h.weeklyUC.WeeklySeries(c.Context(), r)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(rep)
}

// BuyerRanking ranking de compradores por órdenes generadas.
// GET /api/indicadores/ranking/compradores?desde=...&hasta=...[&limite=]
func (h *IndicatorsHandler) BuyerRanking(c *fiber.Ctx) error {
	r, err := parseRange(c)
	if err != nil {
		return badRequest(c, err)
	}
	limit, err := parseLimit(c)
	if err != nil {
		return badRequest(c, err)
	}
	rows, err := h.rankingUC.TopBuyers(c.Context(), r, limit)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(rows)
}

// SupplierRanking ranking de proveedores por órdenes generadas.
// GET /api/indicadores/ranking/proveedores?desde=...&hasta=...[&limite=]
func (h *IndicatorsHandler) SupplierRanking(c *fiber.Ctx) error {
	r, err := parseRange(c)
	if err != nil {
		return badRequest(c, err)
	}
	limit, err := parseLimit(c)
	if err != nil {
		return badRequest(c, err)
	}
	rows, err := h.rankingUC.TopSuppliers(c.Context(), r, limit)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(rows)
}

func parseDimension(s string) (adoption.Dimension, error) {
	switch s {
	case "", "ninguna":
		return adoption.DimensionNone, nil
	case "comprador":
		return adoption.DimensionBuyer, nil
	case "proveedor":
		return adoption.DimensionSupplier, nil
	}
	return adoption.DimensionNone, errors.New("apertura inválida: usar comprador o proveedor")
}

func parseDenominator(s string) (adoption.Denominator, error) {
	switch s {
	case "", "actividad-destino":
		return adoption.DestinationActivity, nil
	case "cobertura-origen":
		return adoption.SourceCoverage, nil
	}
	return adoption.DestinationActivity, errors.New("denominador inválido: usar actividad-destino o cobertura-origen")
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "BAD_REQUEST", Message: err.Error(),
	})
}

// mapDomainError traduce errores de dominio a códigos HTTP.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidRange), errors.Is(err, domain.ErrInvalidInput):
		return badRequest(c, err)
	case errors.Is(err, domain.ErrDuplicateOrderID):
		// Contrato del extractor roto: el dato de origen no es confiable.
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "EXTRACTOR_CONTRACT", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrSourceUnavailable), errors.Is(err, domain.ErrDestinationUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "SOURCE_UNAVAILABLE", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: err.Error(),
	})
}

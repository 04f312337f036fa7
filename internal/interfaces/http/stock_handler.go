package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/diarco-data/compras-monitor/internal/application/stock"
)

// toleranciaDefault días de tolerancia sobre el mínimo antes de marcar
// sobre-stock, cuando el llamador no la especifica.
const toleranciaDefault = 5

// StockHandler endpoint de cobertura de stock.
type StockHandler struct {
	uc *stock.CoverageUseCase
}

func NewStockHandler(uc *stock.CoverageUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Coverage clasificación de cobertura por artículo-sucursal.
// GET /api/stock/cobertura[?sucursal=][&tolerancia=]
func (h *StockHandler) Coverage(c *fiber.Ctx) error {
	tolerance := decimal.NewFromInt(toleranciaDefault)
	if v := c.Query("tolerancia"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return badRequest(c, fmt.Errorf("tolerancia inválida: %q", v))
		}
		tolerance = d
	}

	rep, err := h.uc.CoverageReport(c.Context(), c.Query("sucursal"), tolerance)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(rep)
}

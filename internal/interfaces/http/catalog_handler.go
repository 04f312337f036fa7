package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/diarco-data/compras-monitor/internal/domain/repository"
)

// CatalogHandler expone los maestros para poblar los filtros del tablero.
type CatalogHandler struct {
	repo repository.CatalogRepository
}

func NewCatalogHandler(repo repository.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{repo: repo}
}

// Buyers listado del maestro de compradores.
// GET /api/catalogo/compradores
func (h *CatalogHandler) Buyers(c *fiber.Ctx) error {
	buyers, err := h.repo.ListBuyers(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]fiber.Map, 0, len(buyers))
	for _, b := range buyers {
		out = append(out, fiber.Map{"code": b.Code, "name": b.Name})
	}
	return c.JSON(out)
}

// Suppliers listado del maestro de proveedores.
// GET /api/catalogo/proveedores
func (h *CatalogHandler) Suppliers(c *fiber.Ctx) error {
	suppliers, err := h.repo.ListSuppliers(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]fiber.Map, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, fiber.Map{"code": s.Code, "name": s.Name})
	}
	return c.JSON(out)
}

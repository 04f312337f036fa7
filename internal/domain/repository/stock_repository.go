package repository

import (
	"context"

	"github.com/diarco-data/compras-monitor/internal/domain/entity"
)

// StockRepository entrega el feed combinado stock + venta 30 días por
// (artículo, sucursal). El join entre inventario y ventas lo resuelve el
// datamart aguas arriba; acá llega una sola fila por par.
type StockRepository interface {
	// ListStock devuelve el snapshot vigente. branchID vacío = todas las
	// sucursales.
	ListStock(ctx context.Context, branchID string) ([]entity.StockRow, error)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/diarco-data/compras-monitor/internal/domain/entity"
	"github.com/diarco-data/compras-monitor/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo lee el feed combinado stock + venta 30 días desde la vista
// materializada del datamart. El join inventario/ventas ya viene resuelto:
// una fila por (artículo, sucursal).
type StockRepo struct {
	q Querier
}

func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func (r *StockRepo) ListStock(ctx context.Context, branchID string) ([]entity.StockRow, error) {
	query := `
		SELECT codigo_articulo,
		       btrim(codigo_sucursal::text),
		       COALESCE(stock, 0),
		       COALESCE(pedido_sc, 0),
		       COALESCE(q_stock_minimo, 0),
		       q_dias_stock,
		       COALESCE(venta_diaria_30d, 0)
		FROM datamart.mv_stock_cartera_30d
		WHERE ($1 = '' OR btrim(codigo_sucursal::text) = $1)
		ORDER BY codigo_sucursal, codigo_articulo`

	rows, err := r.q.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("listar stock: %w", err)
	}
	defer rows.Close()

	var out []entity.StockRow
	for rows.Next() {
		var s entity.StockRow
		if err := rows.Scan(
			&s.ArticleID,
			&s.BranchID,
			&s.StockOnHand,
			&s.StockReserved,
			&s.StockMinimum,
			&s.MinimumStockDays,
			&s.AvgDailySales30d,
		); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar stock: %w", err)
	}
	return out, nil
}

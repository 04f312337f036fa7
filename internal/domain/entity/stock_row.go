package entity

import "github.com/shopspring/decimal"

// StockRow es una fila del feed combinado stock + venta 30 días por
// (artículo, sucursal), construida aguas arriba (datamart.mv_stock_cartera_30d).
// Si inventario y consumo vienen de sistemas distintos, ese join es
// responsabilidad del datamart, no del clasificador.
type StockRow struct {
	ArticleID     int64  // codigo_articulo
	BranchID      string // codigo_sucursal
	StockOnHand   decimal.Decimal
	StockReserved decimal.Decimal

	// StockMinimum es el mínimo absoluto en unidades (stock_minimo del maestro
	// de productos vigentes), distinto del mínimo expresado en días.
	StockMinimum decimal.Decimal

	// MinimumStockDays (q_dias_stock) puede no estar parametrizado; sin él no
	// se puede calcular sobre-stock.
	MinimumStockDays decimal.NullDecimal

	// AvgDailySales30d venta promedio diaria de los últimos 30 días. Cero es
	// un valor legítimo (artículo sin venta), no un faltante.
	AvgDailySales30d decimal.Decimal
}

// TotalStock es el disponible total: en mano más reservado.
func (r StockRow) TotalStock() decimal.Decimal {
	return r.StockOnHand.Add(r.StockReserved)
}

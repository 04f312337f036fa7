// Package stockhealth clasifica la salud de stock por (artículo, sucursal) a
// partir del feed combinado stock + venta 30 días.
package stockhealth

import (
	"github.com/shopspring/decimal"

	"github.com/diarco-data/compras-monitor/internal/domain/entity"
)

// Classification es el veredicto sobre una fila de stock. Los cuatro flags son
// independientes entre sí: una fila puede estar a la vez bajo mínimo y sin
// venta con stock (por ejemplo con un mínimo mal parametrizado); se informan
// todos, no se elige uno.
type Classification struct {
	ArticleID int64
	BranchID  string

	// CoverageDays = (stock en mano + reservado) / venta promedio diaria 30d.
	// Indefinido (Valid=false) cuando la venta promedio es cero: no es
	// infinito ni cero, y mantiene distinguibles "sin venta con stock" y
	// "sobre-stock".
	CoverageDays decimal.NullDecimal

	// BelowMinimum: stock total < mínimo absoluto en unidades.
	BelowMinimum bool

	// StaleWithStock: sin venta en 30 días y con stock positivo inmovilizado.
	StaleWithStock bool

	// Overstock: cobertura por encima de (mínimo en días + tolerancia).
	// Solo significativo cuando OverstockComputable es true.
	Overstock bool

	// OverstockComputable: false cuando falta el mínimo en días o la cobertura
	// es indefinida; en ese caso Overstock queda en false y no debe leerse
	// como "sin sobre-stock confirmado".
	OverstockComputable bool
}

// Classify evalúa una fila. toleranceDays lo aporta el llamador (perilla del
// tablero), no es una constante del clasificador.
func Classify(row entity.StockRow, toleranceDays decimal.Decimal) Classification {
	total := row.TotalStock()

	c := Classification{
		ArticleID:      row.ArticleID,
		BranchID:       row.BranchID,
		BelowMinimum:   total.LessThan(row.StockMinimum),
		StaleWithStock: row.AvgDailySales30d.IsZero() && total.GreaterThan(decimal.Zero),
	}

	if row.AvgDailySales30d.GreaterThan(decimal.Zero) {
		c.CoverageDays = decimal.NullDecimal{
			Decimal: total.Div(row.AvgDailySales30d).Round(2),
			Valid:   true,
		}
	}

	if row.MinimumStockDays.Valid && c.CoverageDays.Valid {
		threshold := row.MinimumStockDays.Decimal.Add(toleranceDays)
		c.OverstockComputable = true
		c.Overstock = c.CoverageDays.Decimal.GreaterThan(threshold)
	}
	return c
}

// ClassifyAll evalúa todas las filas del feed con la misma tolerancia.
func ClassifyAll(rows []entity.StockRow, toleranceDays decimal.Decimal) []Classification {
	out := make([]Classification, 0, len(rows))
	for _, r := range rows {
		out = append(out, Classify(r, toleranceDays))
	}
	return out
}

package dto

import "github.com/shopspring/decimal"

// StockReportDTO respuesta de GET /api/stock/cobertura: clasificación por
// (artículo, sucursal) más los totalizadores del tablero.
type StockReportDTO struct {
	ToleranceDays decimal.Decimal          `json:"tolerance_days"`
	Summary       StockSummaryDTO          `json:"summary"`
	Rows          []StockClassificationDTO `json:"rows"`
}

// StockSummaryDTO totalizadores sobre las filas clasificadas.
type StockSummaryDTO struct {
	TotalRows      int `json:"total_rows"`
	BelowMinimum   int `json:"below_minimum"`
	StaleWithStock int `json:"stale_with_stock"`
	Overstock      int `json:"overstock"`
	NotComputable  int `json:"overstock_not_computable"`
}

// StockClassificationDTO veredicto de una fila.
type StockClassificationDTO struct {
	ArticleID int64  `json:"article_id"`
	BranchID  string `json:"branch_id"`

	// CoverageDays null cuando la venta 30d es cero (indefinida, no infinita).
	CoverageDays decimal.NullDecimal `json:"coverage_days"`

	BelowMinimum        bool `json:"below_minimum"`
	StaleWithStock      bool `json:"stale_with_stock"`
	Overstock           bool `json:"overstock"`
	OverstockComputable bool `json:"overstock_computable"`
}

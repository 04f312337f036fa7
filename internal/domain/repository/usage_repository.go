package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// WeeklyUsageRow es una fila cruda del agregado semanal de uso (vista mon.*).
// WeekKey llega como texto "YYYY-WW" generado aguas arriba; el use case lo
// interpreta bajo la regla ISO y descarta (contando) lo que no parsea.
type WeeklyUsageRow struct {
	WeekKey  string
	Orders   int64           // OC Connexa distintas de la semana
	Quantity decimal.Decimal // total de bultos
}

// WeeklyUsageRepository lee la serie semanal de uso de Connexa.
type WeeklyUsageRepository interface {
	ListWeeklyUsage(ctx context.Context, r DateRange) ([]WeeklyUsageRow, error)
}

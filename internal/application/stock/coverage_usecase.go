// Package stock expone el reporte de cobertura de stock por artículo-sucursal.
package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diarco-data/compras-monitor/internal/application/dto"
	"github.com/diarco-data/compras-monitor/internal/domain"
	"github.com/diarco-data/compras-monitor/internal/domain/repository"
	"github.com/diarco-data/compras-monitor/internal/domain/stockhealth"
	"github.com/diarco-data/compras-monitor/pkg/logger"
)

// CoverageUseCase clasifica el snapshot de stock de una sucursal en días de
// cobertura y banderas de salud.
type CoverageUseCase struct {
	stockRepo repository.StockRepository
	timeout   time.Duration
	log       *logger.Logger
}

func NewCoverageUseCase(
	stockRepo repository.StockRepository,
	timeout time.Duration,
	log *logger.Logger,
) *CoverageUseCase {
	return &CoverageUseCase{stockRepo: stockRepo, timeout: timeout, log: log}
}

// CoverageReport corre el clasificador sobre las filas de la sucursal pedida
// (vacía = todas). toleranceDays no puede ser negativa: el umbral de
// sobre-stock es mínimo + tolerancia y una tolerancia negativa no tiene
// lectura operativa.
func (uc *CoverageUseCase) CoverageReport(
	ctx context.Context,
	branchID string,
	toleranceDays decimal.Decimal,
) (*dto.StockReportDTO, error) {
	if toleranceDays.IsNegative() {
		return nil, fmt.Errorf("%w: tolerancia negativa", domain.ErrInvalidInput)
	}

	cctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	rows, err := uc.stockRepo.ListStock(cctx, branchID)
	if err != nil {
		return nil, err
	}

	report := &dto.StockReportDTO{
		ToleranceDays: toleranceDays,
		Rows:          make([]dto.StockClassificationDTO, 0, len(rows)),
	}
	report.Summary.TotalRows = len(rows)

	for _, c := range stockhealth.ClassifyAll(rows, toleranceDays) {
		if c.BelowMinimum {
			report.Summary.BelowMinimum++
		}
		if c.StaleWithStock {
			report.Summary.StaleWithStock++
		}
		if c.Overstock {
			report.Summary.Overstock++
		}
		if !c.OverstockComputable {
			report.Summary.NotComputable++
		}
		report.Rows = append(report.Rows, dto.StockClassificationDTO{
			ArticleID:           c.ArticleID,
			BranchID:            c.BranchID,
			CoverageDays:        c.CoverageDays,
			BelowMinimum:        c.BelowMinimum,
			StaleWithStock:      c.StaleWithStock,
			Overstock:           c.Overstock,
			OverstockComputable: c.OverstockComputable,
		})
	}

	uc.log.Info().
		Str("sucursal", branchID).
		Int("filas", report.Summary.TotalRows).
		Int("bajo_minimo", report.Summary.BelowMinimum).
		Msg("reporte de cobertura generado")

	return report, nil
}

package indicators

import (
	"context"
	"sort"
	"time"

	"github.com/diarco-data/compras-monitor/internal/application/dto"
	"github.com/diarco-data/compras-monitor/internal/domain/repository"
	"github.com/diarco-data/compras-monitor/internal/domain/timebucket"
	"github.com/diarco-data/compras-monitor/pkg/logger"
)

// WeeklyUsageUseCase arma la serie de uso semanal de Connexa a partir de la
// vista agregada por clave ISO "YYYY-WW".
type WeeklyUsageUseCase struct {
	usageRepo repository.WeeklyUsageRepository
	loc       *time.Location
	log       *logger.Logger
}

func NewWeeklyUsageUseCase(
	usageRepo repository.WeeklyUsageRepository,
	loc *time.Location,
	log *logger.Logger,
) *WeeklyUsageUseCase {
	return &WeeklyUsageUseCase{usageRepo: usageRepo, loc: loc, log: log}
}

// WeeklySeries devuelve la serie ordenada por semana. Las filas cuya clave no
// valida como semana ISO real se descartan y se cuentan en DroppedKeys, nunca
// se mapean a una semana "cercana".
func (uc *WeeklyUsageUseCase) WeeklySeries(
	ctx context.Context,
	r repository.DateRange,
) (*dto.WeeklyUsageDTO, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	rows, err := uc.usageRepo.ListWeeklyUsage(ctx, r)
	if err != nil {
		return nil, err
	}

	out := &dto.WeeklyUsageDTO{Weeks: make([]dto.WeeklyUsageRowDTO, 0, len(rows))}
	for _, row := range rows {
		wk, err := timebucket.ParseWeek(row.WeekKey)
		if err != nil {
			out.DroppedKeys++
			uc.log.Warn().Str("clave", row.WeekKey).Msg("clave de semana inválida descartada")
			continue
		}
		out.Weeks = append(out.Weeks, dto.WeeklyUsageRowDTO{
			Week:      wk.String(),
			WeekStart: wk.Monday().Format("2006-01-02"),
			Orders:    row.Orders,
			Quantity:  row.Quantity,
		})
	}
	sort.Slice(out.Weeks, func(i, j int) bool { return out.Weeks[i].Week < out.Weeks[j].Week })
	return out, nil
}

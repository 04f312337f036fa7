package postgres

import (
	"context"
	"fmt"

	"github.com/diarco-data/compras-monitor/internal/domain/repository"
)

var _ repository.WeeklyUsageRepository = (*UsageRepo)(nil)

// UsageRepo lee el agregado semanal de uso de Connexa. La vista ya trae la
// clave "YYYY-WW" como texto; acá no se interpreta, solo se acarrea.
type UsageRepo struct {
	q Querier
}

func NewUsageRepository(q Querier) *UsageRepo {
	return &UsageRepo{q: q}
}

func (r *UsageRepo) ListWeeklyUsage(ctx context.Context, dr repository.DateRange) ([]repository.WeeklyUsageRow, error) {
	query := `
		SELECT semana,
		       COALESCE(q_oc, 0),
		       COALESCE(q_bultos, 0)
		FROM mon.v_uso_semanal_connexa
		WHERE f_semana >= $1 AND f_semana < $2
		ORDER BY semana`

	rows, err := r.q.Query(ctx, query, dr.From, dr.To.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("listar uso semanal: %w", err)
	}
	defer rows.Close()

	var out []repository.WeeklyUsageRow
	for rows.Next() {
		var u repository.WeeklyUsageRow
		if err := rows.Scan(&u.WeekKey, &u.Orders, &u.Quantity); err != nil {
			return nil, fmt.Errorf("scan uso semanal: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar uso semanal: %w", err)
	}
	return out, nil
}

package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/diarco-data/compras-monitor/internal/domain/entity"
	"github.com/diarco-data/compras-monitor/internal/domain/repository"
)

var _ repository.SourceOrderRepository = (*CIOrderRepo)(nil)

// CIOrderRepo lee las órdenes generadas en Connexa desde la tabla espejada
// t080_oc_precarga_connexa. Solo lectura: la vinculación con SGM la escribe
// otro proceso.
type CIOrderRepo struct {
	q Querier
}

func NewCIOrderRepository(q Querier) *CIOrderRepo {
	return &CIOrderRepo{q: q}
}

// ListOrders devuelve las órdenes del rango (días inclusivos) con los filtros
// opcionales aplicados. Prefijo y sufijo salen como texto crudo: la
// interpretación (centinela cero, malformadas) es del dominio, no del SQL.
func (r *CIOrderRepo) ListOrders(ctx context.Context, f repository.OrderFilter) ([]entity.SourceOrder, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT c_compra_connexa::text,
		       c_comprador,
		       c_proveedor,
		       btrim(c_sucu_empr::text),
		       COALESCE(q_bultos_kilos_diarco, 0),
		       f_alta_sist,
		       COALESCE(u_prefijo_oc::text, ''),
		       COALESCE(u_sufijo_oc::text, '')
		FROM t080_oc_precarga_connexa
		WHERE f_alta_sist >= $1 AND f_alta_sist < $2`)

	// Rango inclusivo en días: el límite superior es el día siguiente, exclusivo.
	args := []any{f.Range.From, f.Range.To.AddDate(0, 0, 1)}
	if f.BuyerCode != 0 {
		args = append(args, f.BuyerCode)
		sb.WriteString(" AND c_comprador = $" + strconv.Itoa(len(args)))
	}
	if f.SupplierCode != 0 {
		args = append(args, f.SupplierCode)
		sb.WriteString(" AND c_proveedor = $" + strconv.Itoa(len(args)))
	}
	if f.BranchCode != "" {
		args = append(args, f.BranchCode)
		sb.WriteString(" AND btrim(c_sucu_empr::text) = $" + strconv.Itoa(len(args)))
	}
	sb.WriteString(" ORDER BY f_alta_sist, c_compra_connexa")

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("listar órdenes connexa: %w", err)
	}
	defer rows.Close()

	var out []entity.SourceOrder
	for rows.Next() {
		var o entity.SourceOrder
		if err := rows.Scan(
			&o.OrderID,
			&o.BuyerCode,
			&o.SupplierCode,
			&o.BranchCode,
			&o.Quantity,
			&o.CreatedAt,
			&o.LinkPrefix,
			&o.LinkSuffix,
		); err != nil {
			return nil, fmt.Errorf("scan orden connexa: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar órdenes connexa: %w", err)
	}
	return out, nil
}

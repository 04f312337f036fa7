package postgres

import (
	"context"
	"fmt"

	"github.com/diarco-data/compras-monitor/internal/domain/entity"
	"github.com/diarco-data/compras-monitor/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo maestros de compradores y proveedores espejados de SGM.
type CatalogRepo struct {
	q Querier
}

func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

func (r *CatalogRepo) ListBuyers(ctx context.Context) ([]entity.Buyer, error) {
	query := `
		SELECT cod_comprador, COALESCE(btrim(n_comprador), '')
		FROM src.m_9_compradores
		ORDER BY cod_comprador`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar compradores: %w", err)
	}
	defer rows.Close()

	var out []entity.Buyer
	for rows.Next() {
		var b entity.Buyer
		if err := rows.Scan(&b.Code, &b.Name); err != nil {
			return nil, fmt.Errorf("scan comprador: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar compradores: %w", err)
	}
	return out, nil
}

func (r *CatalogRepo) ListSuppliers(ctx context.Context) ([]entity.Supplier, error) {
	query := `
		SELECT c_proveedor, COALESCE(btrim(n_proveedor), '')
		FROM src.m_10_proveedores
		ORDER BY c_proveedor`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar proveedores: %w", err)
	}
	defer rows.Close()

	var out []entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.Code, &s.Name); err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar proveedores: %w", err)
	}
	return out, nil
}

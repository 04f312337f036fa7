// Package mssql implementa el adaptador de lectura contra SGM (SQL Server).
package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/microsoft/go-mssqldb"

	"github.com/diarco-data/compras-monitor/internal/domain/entity"
	"github.com/diarco-data/compras-monitor/internal/domain/repository"
	"github.com/diarco-data/compras-monitor/pkg/config"
)

// Open abre la conexión a SGM y la verifica con un ping.
func Open(ctx context.Context, cfg config.MSSQLConfig) (*sql.DB, error) {
	db, err := sql.Open("sqlserver", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("abrir sqlserver: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlserver: %w", err)
	}
	return db, nil
}

var _ repository.ERPOrderRepository = (*ERPOrderRepo)(nil)

// ERPOrderRepo lee cabeceras de OC desde T080_OC_CABE. Las cantidades NUMERIC
// se traen como texto y se convierten a decimal al armar la entidad, para no
// pasar por float64.
type ERPOrderRepo struct {
	db *sql.DB
}

func NewERPOrderRepository(db *sql.DB) *ERPOrderRepo {
	return &ERPOrderRepo{db: db}
}

func (r *ERPOrderRepo) ListOrders(ctx context.Context, f repository.OrderFilter) ([]entity.ERPOrder, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT CAST(C_OC AS varchar(20)),
		       COALESCE(CAST(U_PREFIJO_OC AS varchar(20)), ''),
		       COALESCE(CAST(U_SUFIJO_OC AS varchar(20)), ''),
		       C_COMPRADOR,
		       C_PROVEEDOR,
		       COALESCE(CAST(Q_BULTOS_KILOS_DIARCO AS varchar(40)), '0'),
		       F_ALTA_SIST
		FROM T080_OC_CABE WITH (NOLOCK)
		WHERE F_ALTA_SIST >= @desde AND F_ALTA_SIST < @hasta`)

	args := []any{
		sql.Named("desde", f.Range.From),
		sql.Named("hasta", f.Range.To.AddDate(0, 0, 1)),
	}
	if f.BuyerCode != 0 {
		sb.WriteString(" AND C_COMPRADOR = @comprador")
		args = append(args, sql.Named("comprador", f.BuyerCode))
	}
	if f.SupplierCode != 0 {
		sb.WriteString(" AND C_PROVEEDOR = @proveedor")
		args = append(args, sql.Named("proveedor", f.SupplierCode))
	}
	if f.BranchCode != "" {
		sb.WriteString(" AND LTRIM(RTRIM(CAST(C_SUCU_EMPR AS varchar(10)))) = @sucursal")
		args = append(args, sql.Named("sucursal", f.BranchCode))
	}
	sb.WriteString(" ORDER BY F_ALTA_SIST, C_OC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("listar OC sgm: %w", err)
	}
	defer rows.Close()

	var out []entity.ERPOrder
	for rows.Next() {
		var o entity.ERPOrder
		var qty string
		if err := rows.Scan(
			&o.OrderID,
			&o.Prefix,
			&o.Suffix,
			&o.BuyerCode,
			&o.SupplierCode,
			&qty,
			&o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan OC sgm: %w", err)
		}
		o.Quantity, err = parseQuantity(qty)
		if err != nil {
			return nil, fmt.Errorf("OC %s: %w", o.OrderID, err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar OC sgm: %w", err)
	}
	return out, nil
}

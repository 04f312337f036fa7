package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/diarco-data/compras-monitor/internal/domain"
	"github.com/diarco-data/compras-monitor/internal/domain/entity"
)

// DateRange es un rango de fechas de negocio, ambos extremos inclusive a nivel
// día. Las implementaciones consultan f_alta_sist >= From y < To + 1 día.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Validate rechaza rangos con hasta anterior a desde.
func (r DateRange) Validate() error {
	if r.To.Before(r.From) {
		return fmt.Errorf("%w: %s > %s", domain.ErrInvalidRange,
			r.From.Format("2006-01-02"), r.To.Format("2006-01-02"))
	}
	return nil
}

// OrderFilter restringe una extracción de órdenes: rango obligatorio y
// dimensiones opcionales (cero / vacío = sin filtro). El core nunca arma SQL;
// solo pasa este filtro al colaborador.
type OrderFilter struct {
	Range        DateRange
	BuyerCode    int64
	SupplierCode int64
	BranchCode   string
}

// CacheKey serializa el filtro como clave estable de caché. La caché del
// extractor indexa estrictamente por (fuente, rango, filtro); esta parte cubre
// rango y filtro, la fuente la aporta el decorador.
func (f OrderFilter) CacheKey() string {
	return fmt.Sprintf("%s:%s:c%d:p%d:s%s",
		f.Range.From.Format("2006-01-02"), f.Range.To.Format("2006-01-02"),
		f.BuyerCode, f.SupplierCode, f.BranchCode)
}

// SourceOrderRepository extrae órdenes del lado Connexa (CI) para un rango.
// Contrato: los registros devueltos son distintos por OrderID; entregar dos
// veces el mismo identificador en una llamada es una violación que el
// extractor debe impedir (el core igual la detecta y aborta).
type SourceOrderRepository interface {
	ListOrders(ctx context.Context, filter OrderFilter) ([]entity.SourceOrder, error)
}

// ERPOrderRepository extrae cabeceras de OC del lado SGM (ERP) para un rango.
// Mismo contrato de distinción, sobre la clave primaria propia de SGM (C_OC),
// no sobre el par prefijo/sufijo.
type ERPOrderRepository interface {
	ListOrders(ctx context.Context, filter OrderFilter) ([]entity.ERPOrder, error)
}

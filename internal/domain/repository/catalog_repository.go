package repository

import (
	"context"

	"github.com/diarco-data/compras-monitor/internal/domain/entity"
)

// CatalogRepository maestros de compradores y proveedores, usados solo para
// enriquecer rankings con nombres legibles. Colaborador de borde: el motor de
// cruce no depende de él.
type CatalogRepository interface {
	ListBuyers(ctx context.Context) ([]entity.Buyer, error)
	ListSuppliers(ctx context.Context) ([]entity.Supplier, error)
}

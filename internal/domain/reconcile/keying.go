package reconcile

import (
	"fmt"

	"github.com/diarco-data/compras-monitor/internal/domain"
	"github.com/diarco-data/compras-monitor/internal/domain/entity"
)

// KeyedSource es una orden Connexa con su clave de correlación ya derivada.
type KeyedSource struct {
	Key   MatchKey
	Order entity.SourceOrder
}

// KeyedERP es una cabecera SGM con su clave de correlación ya derivada.
type KeyedERP struct {
	Key   MatchKey
	Order entity.ERPOrder
}

// KeyingStats resume qué pasó al derivar claves de una colección.
type KeyingStats struct {
	Keyed     int // registros con clave válida
	Unlinked  int // centinela cero: todavía sin OC SGM (pendientes)
	Malformed int // prefijo/sufijo no numérico o fuera de rango, excluidos
}

// KeySourceOrders deriva la clave de cada orden Connexa. Las órdenes sin
// vínculo quedan fuera del cruce pero contadas como pendientes; las claves
// malformadas se cuentan y excluyen.
//
// Un mismo OrderID entregado dos veces por el extractor es violación del
// contrato de distinción (la consulta debe devolver registros distintos) y
// aborta con domain.ErrDuplicateOrderID.
func KeySourceOrders(orders []entity.SourceOrder) ([]KeyedSource, KeyingStats, error) {
	var stats KeyingStats
	keyed := make([]KeyedSource, 0, len(orders))
	seen := make(map[string]struct{}, len(orders))

	for _, o := range orders {
		if _, dup := seen[o.OrderID]; dup {
			return nil, KeyingStats{}, fmt.Errorf("connexa %q: %w", o.OrderID, domain.ErrDuplicateOrderID)
		}
		seen[o.OrderID] = struct{}{}

		key, ok, err := BuildKey(o.LinkPrefix, o.LinkSuffix)
		if err != nil {
			stats.Malformed++
			continue
		}
		if !ok {
			stats.Unlinked++
			continue
		}
		stats.Keyed++
		keyed = append(keyed, KeyedSource{Key: key, Order: o})
	}
	return keyed, stats, nil
}

// KeyERPOrders deriva la clave de cada cabecera SGM. Cabeceras con prefijo o
// sufijo cero no son originadas por CI y quedan fuera de la construcción de
// claves (no se convierten en "0-0").
func KeyERPOrders(orders []entity.ERPOrder) ([]KeyedERP, KeyingStats, error) {
	var stats KeyingStats
	keyed := make([]KeyedERP, 0, len(orders))
	seen := make(map[string]struct{}, len(orders))

	for _, o := range orders {
		if _, dup := seen[o.OrderID]; dup {
			return nil, KeyingStats{}, fmt.Errorf("sgm %q: %w", o.OrderID, domain.ErrDuplicateOrderID)
		}
		seen[o.OrderID] = struct{}{}

		key, ok, err := BuildKey(o.Prefix, o.Suffix)
		if err != nil {
			stats.Malformed++
			continue
		}
		if !ok {
			stats.Unlinked++
			continue
		}
		stats.Keyed++
		keyed = append(keyed, KeyedERP{Key: key, Order: o})
	}
	return keyed, stats, nil
}

package reconcile

import (
	"sort"

	"github.com/diarco-data/compras-monitor/internal/domain/entity"
)

// Pair es una clave presente en ambos sistemas, con el registro representante
// de cada lado.
type Pair struct {
	Key         MatchKey
	Source      entity.SourceOrder
	Destination entity.ERPOrder
}

// SourceDuplicate: una misma orden Connexa que terminó vinculada a más de una
// OC SGM distinta. Señal de que la orden se partió al pasar a SGM; se reporta,
// no se fusiona en silencio.
type SourceDuplicate struct {
	SourceOrderID string
	Keys          []MatchKey
}

// DestinationDuplicate: una misma clave prefijo-sufijo presente en más de una
// cabecera SGM distinta. Señal de calidad de datos del lado destino.
type DestinationDuplicate struct {
	Key      MatchKey
	OrderIDs []string
}

// Result es la clasificación completa de un cruce. Todas las colecciones
// vienen ordenadas por clave: el mismo par de snapshots produce siempre el
// mismo resultado, byte a byte.
type Result struct {
	Matched         []Pair
	SourceOnly      []KeyedSource
	DestinationOnly []KeyedERP

	SourceDuplicates      []SourceDuplicate
	DestinationDuplicates []DestinationDuplicate
}

// Reconcile ejecuta el full outer join por clave entre ambos conjuntos,
// restringidos aguas arriba al mismo rango de fechas y filtros.
//
// El cruce trabaja a nivel de clave distinta, no de fila: registros repetidos
// sobre la misma clave colapsan en un representante (el de alta más antigua,
// con el identificador menor como desempate) y la multiplicidad se informa en
// los listados de duplicados. Así cada clave cae en exactamente una de las
// tres clasificaciones y los conteos no se inflan.
func Reconcile(src []KeyedSource, dst []KeyedERP) Result {
	srcByKey := make(map[MatchKey][]KeyedSource, len(src))
	for _, s := range src {
		srcByKey[s.Key] = append(srcByKey[s.Key], s)
	}
	dstByKey := make(map[MatchKey][]KeyedERP, len(dst))
	for _, d := range dst {
		dstByKey[d.Key] = append(dstByKey[d.Key], d)
	}

	keys := make([]MatchKey, 0, len(srcByKey)+len(dstByKey))
	for k := range srcByKey {
		keys = append(keys, k)
	}
	for k := range dstByKey {
		if _, inSrc := srcByKey[k]; !inSrc {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var res Result
	for _, k := range keys {
		ss, inSrc := srcByKey[k]
		ds, inDst := dstByKey[k]
		switch {
		case inSrc && inDst:
			res.Matched = append(res.Matched, Pair{
				Key:         k,
				Source:      pickSource(ss),
				Destination: pickERP(ds),
			})
		case inSrc:
			res.SourceOnly = append(res.SourceOnly, KeyedSource{Key: k, Order: pickSource(ss)})
		default:
			res.DestinationOnly = append(res.DestinationOnly, KeyedERP{Key: k, Order: pickERP(ds)})
		}
	}

	res.SourceDuplicates = sourceDuplicates(src)
	res.DestinationDuplicates = destinationDuplicates(dstByKey)
	return res
}

// sourceDuplicates agrupa por orden Connexa y detecta las que apuntan a más de
// una clave SGM distinta.
func sourceDuplicates(src []KeyedSource) []SourceDuplicate {
	keysByOrder := make(map[string]map[MatchKey]struct{})
	for _, s := range src {
		set, ok := keysByOrder[s.Order.OrderID]
		if !ok {
			set = make(map[MatchKey]struct{})
			keysByOrder[s.Order.OrderID] = set
		}
		set[s.Key] = struct{}{}
	}

	var dups []SourceDuplicate
	for orderID, set := range keysByOrder {
		if len(set) < 2 {
			continue
		}
		keys := make([]MatchKey, 0, len(set))
		for k := range set {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		dups = append(dups, SourceDuplicate{SourceOrderID: orderID, Keys: keys})
	}
	sort.Slice(dups, func(i, j int) bool { return dups[i].SourceOrderID < dups[j].SourceOrderID })
	return dups
}

// destinationDuplicates detecta claves con más de una cabecera SGM distinta.
func destinationDuplicates(dstByKey map[MatchKey][]KeyedERP) []DestinationDuplicate {
	var dups []DestinationDuplicate
	for k, ds := range dstByKey {
		ids := make(map[string]struct{}, len(ds))
		for _, d := range ds {
			ids[d.Order.OrderID] = struct{}{}
		}
		if len(ids) < 2 {
			continue
		}
		ordered := make([]string, 0, len(ids))
		for id := range ids {
			ordered = append(ordered, id)
		}
		sort.Strings(ordered)
		dups = append(dups, DestinationDuplicate{Key: k, OrderIDs: ordered})
	}
	sort.Slice(dups, func(i, j int) bool { return dups[i].Key < dups[j].Key })
	return dups
}

func pickSource(ss []KeyedSource) entity.SourceOrder {
	best := ss[0].Order
	for _, s := range ss[1:] {
		o := s.Order
		if o.CreatedAt.Before(best.CreatedAt) ||
			(o.CreatedAt.Equal(best.CreatedAt) && o.OrderID < best.OrderID) {
			best = o
		}
	}
	return best
}

func pickERP(ds []KeyedERP) entity.ERPOrder {
	best := ds[0].Order
	for _, d := range ds[1:] {
		o := d.Order
		if o.CreatedAt.Before(best.CreatedAt) ||
			(o.CreatedAt.Equal(best.CreatedAt) && o.OrderID < best.OrderID) {
			best = o
		}
	}
	return best
}

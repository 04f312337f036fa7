// Package adoption agrega el resultado del cruce Connexa↔SGM en series de
// tiempo por mes y, opcionalmente, por comprador o proveedor, y calcula los
// ratios de adopción acotados.
package adoption

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diarco-data/compras-monitor/internal/domain/reconcile"
	"github.com/diarco-data/compras-monitor/internal/domain/timebucket"
)

// Denominator elige la pregunta de negocio que responde el ratio. Histórico
// del tablero: se calculaban "proporciones" con dos denominadores distintos
// sin distinguirlos por nombre; acá el llamador elige explícitamente y el
// calculador no adivina.
type Denominator int

const (
	// DestinationActivity: matched / (matched + destination_only).
	// ¿Qué parte de la actividad de SGM se originó en Connexa?
	DestinationActivity Denominator = iota

	// SourceCoverage: matched / (matched + source_only).
	// ¿Qué parte de lo generado en Connexa llegó a ser OC en SGM?
	SourceCoverage
)

// Dimension apertura opcional de la serie.
type Dimension int

const (
	DimensionNone Dimension = iota
	DimensionBuyer
	DimensionSupplier
)

// Row es una fila de la serie: cubeta mensual, valor de dimensión (vacío si no
// hay apertura), conteos por clave distinta y el ratio elegido. Las filas son
// inmutables una vez emitidas.
type Row struct {
	Bucket    timebucket.Month
	Dimension string

	MatchedCount         int
	SourceOnlyCount      int
	DestinationOnlyCount int

	// Ratio es nulo (no cero) cuando el denominador elegido es cero en la
	// cubeta: "sin actividad medible" y "0% de adopción" son cosas distintas.
	Ratio decimal.NullDecimal
}

// Series particiona el resultado del cruce por mes y dimensión y calcula el
// ratio pedido por cubeta. Los conteos son de claves distintas, nunca de filas
// crudas, así los duplicados no inflan la serie.
//
// Regla de calendario: los pares cruzados y las OC solo-destino se asignan al
// mes de alta en SGM; las órdenes solo-origen, al mes de alta en Connexa (aún
// no existen en SGM). Numerador y denominador del ratio destino miran así el
// mismo calendario.
func Series(res reconcile.Result, dim Dimension, denom Denominator, loc *time.Location) []Row {
	type cell struct {
		matched, sourceOnly, destinationOnly int
	}
	type groupKey struct {
		bucket    timebucket.Month
		dimension string
	}
	cells := make(map[groupKey]*cell)

	at := func(bucket timebucket.Month, dimension string) *cell {
		k := groupKey{bucket: bucket, dimension: dimension}
		c, ok := cells[k]
		if !ok {
			c = &cell{}
			cells[k] = c
		}
		return c
	}

	for _, p := range res.Matched {
		bucket := timebucket.MonthOf(p.Destination.CreatedAt, loc)
		at(bucket, dimValue(dim, p.Destination.BuyerCode, p.Destination.SupplierCode)).matched++
	}
	for _, s := range res.SourceOnly {
		bucket := timebucket.MonthOf(s.Order.CreatedAt, loc)
		at(bucket, dimValue(dim, s.Order.BuyerCode, s.Order.SupplierCode)).sourceOnly++
	}
	for _, d := range res.DestinationOnly {
		bucket := timebucket.MonthOf(d.Order.CreatedAt, loc)
		at(bucket, dimValue(dim, d.Order.BuyerCode, d.Order.SupplierCode)).destinationOnly++
	}

	rows := make([]Row, 0, len(cells))
	for k, c := range cells {
		rows = append(rows, Row{
			Bucket:               k.bucket,
			Dimension:            k.dimension,
			MatchedCount:         c.matched,
			SourceOnlyCount:      c.sourceOnly,
			DestinationOnlyCount: c.destinationOnly,
			Ratio:                Ratio(denom, c.matched, c.sourceOnly, c.destinationOnly),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Bucket != rows[j].Bucket {
			return rows[i].Bucket.Before(rows[j].Bucket)
		}
		return rows[i].Dimension < rows[j].Dimension
	})
	return rows
}

// Ratio calcula el ratio elegido a partir de conteos de claves distintas.
// Nulo, nunca cero, cuando el denominador es cero; acotado a [0, 1] en
// cualquier otro caso por construcción.
func Ratio(denom Denominator, matched, sourceOnly, destinationOnly int) decimal.NullDecimal {
	total := matched
	switch denom {
	case SourceCoverage:
		total += sourceOnly
	default:
		total += destinationOnly
	}
	if total == 0 {
		return decimal.NullDecimal{}
	}
	r := decimal.NewFromInt(int64(matched)).
		Div(decimal.NewFromInt(int64(total))).
		Round(6)
	return decimal.NullDecimal{Decimal: r, Valid: true}
}

func dimValue(dim Dimension, buyer, supplier int64) string {
	switch dim {
	case DimensionBuyer:
		return strconv.FormatInt(buyer, 10)
	case DimensionSupplier:
		return strconv.FormatInt(supplier, 10)
	default:
		return ""
	}
}

package reconcile_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diarco-data/compras-monitor/internal/domain"
	"github.com/diarco-data/compras-monitor/internal/domain/entity"
	"github.com/diarco-data/compras-monitor/internal/domain/reconcile"
)

func srcOrder(id, prefix, suffix string, created time.Time) entity.SourceOrder {
	return entity.SourceOrder{
		OrderID:      id,
		BuyerCode:    9,
		SupplierCode: 400,
		BranchCode:   "21",
		Quantity:     decimal.NewFromInt(10),
		CreatedAt:    created,
		LinkPrefix:   prefix,
		LinkSuffix:   suffix,
	}
}

func erpOrder(id, prefix, suffix string, created time.Time) entity.ERPOrder {
	return entity.ERPOrder{
		OrderID:      id,
		Prefix:       prefix,
		Suffix:       suffix,
		BuyerCode:    9,
		SupplierCode: 400,
		Quantity:     decimal.NewFromInt(10),
		CreatedAt:    created,
	}
}

var (
	march10 = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	march12 = time.Date(2025, 3, 12, 9, 30, 0, 0, time.UTC)
)

// TestKeySourceOrders_Estadisticas: órdenes con clave, pendientes y malformadas
// se separan y se cuentan; nada se corrige en silencio.
func TestKeySourceOrders_Estadisticas(t *testing.T) {
	orders := []entity.SourceOrder{
		srcOrder("K1", "100", "5", march10),
		srcOrder("K2", "0", "0", march10),   // todavía sin OC SGM
		srcOrder("K3", "abc", "5", march10), // clave malformada
	}

	keyed, stats, err := reconcile.KeySourceOrders(orders)
	require.NoError(t, err)

	assert.Len(t, keyed, 1)
	assert.Equal(t, reconcile.MatchKey("100-5"), keyed[0].Key)
	assert.Equal(t, 1, stats.Keyed)
	assert.Equal(t, 1, stats.Unlinked)
	assert.Equal(t, 1, stats.Malformed)
}

// TestKeySourceOrders_DuplicadoAborta: el mismo identificador nativo dos veces
// en una extracción es violación de contrato y corta el procesamiento.
func TestKeySourceOrders_DuplicadoAborta(t *testing.T) {
	orders := []entity.SourceOrder{
		srcOrder("K1", "100", "5", march10),
		srcOrder("K1", "100", "6", march10),
	}

	_, _, err := reconcile.KeySourceOrders(orders)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateOrderID)
}

// TestReconcile_CruceLimpio: una clave presente en ambos lados produce
// exactamente un par cruzado y ningún huérfano.
func TestReconcile_CruceLimpio(t *testing.T) {
	src, _, err := reconcile.KeySourceOrders([]entity.SourceOrder{
		srcOrder("K1", "100", "5", march10),
	})
	require.NoError(t, err)
	dst, _, err := reconcile.KeyERPOrders([]entity.ERPOrder{
		erpOrder("OC1", "100", "5", march12),
	})
	require.NoError(t, err)

	res := reconcile.Reconcile(src, dst)

	require.Len(t, res.Matched, 1)
	assert.Equal(t, reconcile.MatchKey("100-5"), res.Matched[0].Key)
	assert.Equal(t, "K1", res.Matched[0].Source.OrderID)
	assert.Equal(t, "OC1", res.Matched[0].Destination.OrderID)
	assert.Empty(t, res.SourceOnly)
	assert.Empty(t, res.DestinationOnly)
	assert.Empty(t, res.SourceDuplicates)
	assert.Empty(t, res.DestinationDuplicates)
}

// TestReconcile_Huerfanos: claves de un solo lado caen en SourceOnly
// (pendiente) o DestinationOnly (carga directa en SGM).
func TestReconcile_Huerfanos(t *testing.T) {
	src, _, _ := reconcile.KeySourceOrders([]entity.SourceOrder{
		srcOrder("K1", "100", "5", march10),
		srcOrder("K2", "150", "7", march10),
	})
	dst, _, _ := reconcile.KeyERPOrders([]entity.ERPOrder{
		erpOrder("OC1", "100", "5", march12),
		erpOrder("OC2", "200", "9", march12),
	})

	res := reconcile.Reconcile(src, dst)

	require.Len(t, res.Matched, 1)
	require.Len(t, res.SourceOnly, 1)
	assert.Equal(t, reconcile.MatchKey("150-7"), res.SourceOnly[0].Key)
	require.Len(t, res.DestinationOnly, 1)
	assert.Equal(t, reconcile.MatchKey("200-9"), res.DestinationOnly[0].Key)
}

// TestReconcile_ParticionCompleta: cada clave distinta de la unión cae en
// exactamente una de las tres clasificaciones.
func TestReconcile_ParticionCompleta(t *testing.T) {
	src, _, _ := reconcile.KeySourceOrders([]entity.SourceOrder{
		srcOrder("K1", "100", "5", march10),
		srcOrder("K2", "150", "7", march10),
		srcOrder("K3", "150", "7", march12), // misma clave, otra orden
		srcOrder("K4", "160", "1", march10),
	})
	dst, _, _ := reconcile.KeyERPOrders([]entity.ERPOrder{
		erpOrder("OC1", "100", "5", march12),
		erpOrder("OC2", "200", "9", march12),
		erpOrder("OC3", "210", "2", march12),
	})

	res := reconcile.Reconcile(src, dst)

	distinct := map[reconcile.MatchKey]struct{}{}
	for _, s := range src {
		distinct[s.Key] = struct{}{}
	}
	for _, d := range dst {
		distinct[d.Key] = struct{}{}
	}

	total := len(res.Matched) + len(res.SourceOnly) + len(res.DestinationOnly)
	assert.Equal(t, len(distinct), total,
		"matched + source_only + destination_only debe cubrir la unión de claves distintas")
}

// TestReconcile_DuplicadosDestino: una clave con dos cabeceras SGM distintas se
// informa como duplicado del destino y cuenta una sola vez en el cruce.
func TestReconcile_DuplicadosDestino(t *testing.T) {
	src, _, _ := reconcile.KeySourceOrders([]entity.SourceOrder{
		srcOrder("K1", "100", "5", march10),
	})
	dst, _, _ := reconcile.KeyERPOrders([]entity.ERPOrder{
		erpOrder("OC1", "100", "5", march12),
		erpOrder("OC2", "100", "5", march12),
	})

	res := reconcile.Reconcile(src, dst)

	require.Len(t, res.Matched, 1, "la clave duplicada colapsa en un solo par")
	require.Len(t, res.DestinationDuplicates, 1)
	assert.Equal(t, reconcile.MatchKey("100-5"), res.DestinationDuplicates[0].Key)
	assert.Equal(t, []string{"OC1", "OC2"}, res.DestinationDuplicates[0].OrderIDs)
}

// TestReconcile_DuplicadosOrigen: una orden Connexa partida en dos OC SGM
// distintas se informa como duplicado del origen, no se fusiona en silencio.
func TestReconcile_DuplicadosOrigen(t *testing.T) {
	// Misma orden K1 con dos claves distintas: el extractor la entrega como
	// filas separadas del histórico, con identificadores de fila distintos.
	src := []reconcile.KeyedSource{
		{Key: "100-5", Order: srcOrder("K1", "100", "5", march10)},
		{Key: "100-6", Order: srcOrder("K1", "100", "6", march10)},
	}
	dst, _, _ := reconcile.KeyERPOrders([]entity.ERPOrder{
		erpOrder("OC1", "100", "5", march12),
		erpOrder("OC2", "100", "6", march12),
	})

	res := reconcile.Reconcile(src, dst)

	require.Len(t, res.SourceDuplicates, 1)
	assert.Equal(t, "K1", res.SourceDuplicates[0].SourceOrderID)
	assert.Equal(t, []reconcile.MatchKey{"100-5", "100-6"}, res.SourceDuplicates[0].Keys)
}

// TestReconcile_Idempotente: dos corridas sobre los mismos snapshots producen
// resultados idénticos (colecciones ordenadas, sin estado compartido).
func TestReconcile_Idempotente(t *testing.T) {
	src, _, _ := reconcile.KeySourceOrders([]entity.SourceOrder{
		srcOrder("K1", "100", "5", march10),
		srcOrder("K2", "150", "7", march10),
	})
	dst, _, _ := reconcile.KeyERPOrders([]entity.ERPOrder{
		erpOrder("OC1", "100", "5", march12),
		erpOrder("OC2", "200", "9", march12),
	})

	r1 := reconcile.Reconcile(src, dst)
	r2 := reconcile.Reconcile(src, dst)

	assert.Equal(t, r1, r2)
}

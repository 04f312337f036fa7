package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdoptionReportDTO respuesta de GET /api/indicadores/adopcion.
// Es el reporte de conciliación completo de un rango: conteos globales por
// clave distinta, serie mensual y diagnósticos de duplicidad. Las
// irregularidades (huérfanos, duplicados, claves malformadas) son datos del
// reporte, no errores.
type AdoptionReportDTO struct {
	ReportID    string    `json:"report_id"`
	GeneratedAt time.Time `json:"generated_at"`
	From        string    `json:"desde"`
	To          string    `json:"hasta"`

	Source      SideStatusDTO `json:"source"`
	Destination SideStatusDTO `json:"destination"`

	// Reconciled indica si el cruce pudo ejecutarse (ambos lados
	// disponibles). En false, solo los estados por lado traen información.
	Reconciled bool `json:"reconciled"`

	MatchedCount         int `json:"matched_count"`
	SourceOnlyCount      int `json:"source_only_count"`
	DestinationOnlyCount int `json:"destination_only_count"`

	// UnlinkedSource órdenes Connexa del rango todavía sin OC SGM asignada
	// (centinela cero). No son huérfanas del cruce: aún no juegan.
	UnlinkedSource int `json:"unlinked_source"`

	// Claves excluidas por prefijo/sufijo no numérico o fuera de rango.
	SkippedMalformedSource      int `json:"skipped_malformed_source"`
	SkippedMalformedDestination int `json:"skipped_malformed_destination"`

	SourceDuplicates      []SourceDuplicateDTO      `json:"source_duplicates"`
	DestinationDuplicates []DestinationDuplicateDTO `json:"destination_duplicates"`

	TimeSeries []AdoptionBucketDTO `json:"time_series"`
}

// AdoptionBucketDTO una cubeta de la serie mensual.
type AdoptionBucketDTO struct {
	Bucket      string `json:"bucket"`       // "2025-03"
	BucketStart string `json:"bucket_start"` // "2025-03-01"
	Dimension   string `json:"dimension,omitempty"`

	MatchedCount         int `json:"matched_count"`
	SourceOnlyCount      int `json:"source_only_count"`
	DestinationOnlyCount int `json:"destination_only_count"`

	// Ratio según el denominador pedido; null cuando el denominador de la
	// cubeta es cero (sin actividad medible, distinto de 0%).
	Ratio decimal.NullDecimal `json:"ratio"`
}

// SourceDuplicateDTO una orden Connexa partida en varias OC SGM.
type SourceDuplicateDTO struct {
	SourceOrderID string   `json:"source_order_id"`
	Keys          []string `json:"keys"`
}

// DestinationDuplicateDTO una clave con más de una cabecera SGM.
type DestinationDuplicateDTO struct {
	Key      string   `json:"key"`
	OrderIDs []string `json:"order_ids"`
}

// FunnelReportDTO respuesta de GET /api/indicadores/embudo: conteos mensuales
// crudos por lado. Se calcula por lado disponible, así sirve incluso con un
// extractor caído (resultado degradado, marcado como tal).
type FunnelReportDTO struct {
	Source      SideStatusDTO    `json:"source"`
	Destination SideStatusDTO    `json:"destination"`
	Months      []FunnelMonthDTO `json:"months"`
}

// FunnelMonthDTO conteos crudos de un mes. Los campos de un lado no
// disponible quedan en cero y el estado del lado lo aclara.
type FunnelMonthDTO struct {
	Month string `json:"month"` // "2025-03"

	SourceOrders   int             `json:"source_orders"` // OC Connexa distintas
	SourceQuantity decimal.Decimal `json:"source_quantity"`

	DestinationOrders     int             `json:"destination_orders"`      // cabeceras SGM distintas
	DestinationLinkedKeys int             `json:"destination_linked_keys"` // claves prefijo-sufijo válidas distintas
	DestinationQuantity   decimal.Decimal `json:"destination_quantity"`

	// Alcance de proveedores: cuántos proveedores distintos operaron en SGM
	// el mes, cuántos de ellos vía OC originada en Connexa, y la proporción
	// (nula si el mes no tiene proveedores del lado destino).
	DestinationSuppliers       int                 `json:"destination_suppliers"`
	DestinationLinkedSuppliers int                 `json:"destination_linked_suppliers"`
	SupplierShare              decimal.NullDecimal `json:"supplier_share"`
}

// OrphanReportDTO respuesta de GET /api/indicadores/sin-cruce: el detalle de
// los huérfanos del rango, para drill-down desde los conteos del reporte de
// adopción.
type OrphanReportDTO struct {
	From string `json:"desde"`
	To   string `json:"hasta"`

	SourceOnly      []OrphanSourceDTO      `json:"source_only"`      // en Connexa sin cabecera SGM
	DestinationOnly []OrphanDestinationDTO `json:"destination_only"` // OC SGM directas con clave sin par
}

// OrphanSourceDTO una orden Connexa vinculada cuya clave no aparece en SGM.
type OrphanSourceDTO struct {
	OrderID      string          `json:"order_id"`
	Key          string          `json:"key"`
	BuyerCode    int64           `json:"buyer_code"`
	SupplierCode int64           `json:"supplier_code"`
	BranchCode   string          `json:"branch_code"`
	Quantity     decimal.Decimal `json:"quantity"`
	CreatedAt    time.Time       `json:"created_at"`
}

// OrphanDestinationDTO una cabecera SGM con clave válida que no existe en
// Connexa.
type OrphanDestinationDTO struct {
	OrderID      string          `json:"order_id"`
	Key          string          `json:"key"`
	BuyerCode    int64           `json:"buyer_code"`
	SupplierCode int64           `json:"supplier_code"`
	Quantity     decimal.Decimal `json:"quantity"`
	CreatedAt    time.Time       `json:"created_at"`
}

// WeeklyUsageDTO serie semanal de uso de Connexa construida desde claves
// "YYYY-WW" generadas aguas arriba.
type WeeklyUsageDTO struct {
	Weeks []WeeklyUsageRowDTO `json:"weeks"`

	// DroppedKeys claves que no parsean bajo la regla ISO: excluidas de la
	// serie y contadas acá, nunca corridas a otra semana.
	DroppedKeys int `json:"dropped_keys"`
}

// WeeklyUsageRowDTO una semana ISO de la serie.
type WeeklyUsageRowDTO struct {
	Week      string          `json:"week"`       // "2025-07"
	WeekStart string          `json:"week_start"` // lunes, "2025-02-10"
	Orders    int64           `json:"orders"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// RankingRowDTO una posición del ranking de compradores o proveedores.
type RankingRowDTO struct {
	Code int64 `json:"code"`
	// Name nombre del maestro; si falta, el código formateado como texto.
	Name     string          `json:"name"`
	Orders   int             `json:"orders"`
	Quantity decimal.Decimal `json:"quantity"`
}

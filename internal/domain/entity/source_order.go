package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceOrder es una orden de compra generada en Connexa (CI), leída de
// t080_oc_precarga_connexa. Snapshot de solo lectura: el proceso externo que
// vincula la orden con SGM puebla LinkPrefix/LinkSuffix más tarde, por eso se
// releen en cada consulta y nunca se escriben desde acá.
type SourceOrder struct {
	OrderID      string          // c_compra_connexa, identificador propio de Connexa (NIP)
	BuyerCode    int64           // c_comprador
	SupplierCode int64           // c_proveedor
	BranchCode   string          // c_sucu_empr
	Quantity     decimal.Decimal // q_bultos_kilos_diarco
	CreatedAt    time.Time       // f_alta_sist

	// Vínculo con la OC de SGM, poblado fuera de banda. Se mantiene como texto
	// crudo tal como viene de la tabla: "0" o vacío significa "todavía sin OC",
	// y cualquier valor no numérico se trata como clave malformada.
	LinkPrefix string // u_prefijo_oc
	LinkSuffix string // u_sufijo_oc
}

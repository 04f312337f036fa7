package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ERPOrder es una cabecera de orden de compra en SGM (T080_OC_CABE).
// OrderID es la clave primaria propia de SGM (C_OC); el par prefijo/sufijo es
// la clave natural que comparte con Connexa. Un prefijo o sufijo en cero
// significa "no originada por CI", no una clave válida "0-0".
type ERPOrder struct {
	OrderID      string          // C_OC
	Prefix       string          // U_PREFIJO_OC, texto crudo
	Suffix       string          // U_SUFIJO_OC, texto crudo
	BuyerCode    int64           // C_COMPRADOR
	SupplierCode int64           // C_PROVEEDOR
	Quantity     decimal.Decimal // Q_BULTOS_KILOS_DIARCO
	CreatedAt    time.Time       // F_ALTA_SIST
}

package mssql

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// parseQuantity convierte el NUMERIC traído como varchar. SGM a veces guarda
// la cantidad con coma decimal según la configuración regional del servidor.
func parseQuantity(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cantidad inválida %q: %w", s, err)
	}
	return d, nil
}

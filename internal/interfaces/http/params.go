package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/diarco-data/compras-monitor/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// parseRange lee desde/hasta del query string. Ambos obligatorios, formato
// YYYY-MM-DD, rango inclusivo en días.
func parseRange(c *fiber.Ctx) (repository.DateRange, error) {
	var r repository.DateRange

	desde := c.Query("desde")
	hasta := c.Query("hasta")
	if desde == "" || hasta == "" {
		return r, fmt.Errorf("desde y hasta son obligatorios (YYYY-MM-DD)")
	}

	from, err := time.Parse(dateLayout, desde)
	if err != nil {
		return r, fmt.Errorf("desde inválido: %q", desde)
	}
	to, err := time.Parse(dateLayout, hasta)
	if err != nil {
		return r, fmt.Errorf("hasta inválido: %q", hasta)
	}

	r = repository.DateRange{From: from, To: to}
	return r, r.Validate()
}

// parseOrderFilter arma el filtro completo: rango más dimensiones opcionales.
func parseOrderFilter(c *fiber.Ctx) (repository.OrderFilter, error) {
	var f repository.OrderFilter

	r, err := parseRange(c)
	if err != nil {
		return f, err
	}
	f.Range = r

	if v := c.Query("comprador"); v != "" {
		code, err := strconv.ParseInt(v, 10, 64)
		if err != nil || code <= 0 {
			return f, fmt.Errorf("comprador inválido: %q", v)
		}
		f.BuyerCode = code
	}
	if v := c.Query("proveedor"); v != "" {
		code, err := strconv.ParseInt(v, 10, 64)
		if err != nil || code <= 0 {
			return f, fmt.Errorf("proveedor inválido: %q", v)
		}
		f.SupplierCode = code
	}
	f.BranchCode = c.Query("sucursal")
	return f, nil
}

// parseLimit lee el tope de filas de un ranking; 0 = sin tope.
func parseLimit(c *fiber.Ctx) (int, error) {
	v := c.Query("limite")
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("limite inválido: %q", v)
	}
	return n, nil
}

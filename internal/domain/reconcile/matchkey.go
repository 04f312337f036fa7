// Package reconcile implementa el cruce de órdenes entre Connexa (CI) y SGM:
// construcción de la clave de correlación prefijo-sufijo y el full outer join
// de ambos conjuntos con detección de duplicidades.
package reconcile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/diarco-data/compras-monitor/internal/domain"
)

// MatchKey es la clave canónica "{prefijo}-{sufijo}" que identifica una misma
// OC de SGM desde cualquiera de los dos sistemas.
type MatchKey string

// BuildKey deriva la clave de correlación a partir del par prefijo/sufijo
// crudo. Función pura: el mismo input produce siempre el mismo resultado.
//
// Devuelve ok=false sin error cuando alguno de los dos campos es el centinela
// cero o viene vacío/nulo: significa "sin OC SGM todavía", no una clave "0-0".
// Devuelve error (domain.ErrMalformedKey) cuando un campo no es numérico o es
// negativo; ese registro se cuenta aparte, jamás se convierte en clave.
func BuildKey(rawPrefix, rawSuffix string) (MatchKey, bool, error) {
	prefix, err := parsePart(rawPrefix)
	if err != nil {
		return "", false, err
	}
	suffix, err := parsePart(rawSuffix)
	if err != nil {
		return "", false, err
	}
	if prefix == 0 || suffix == 0 {
		return "", false, nil
	}
	// Forma canónica: decimal sin ceros a la izquierda, separada por un guion.
	return MatchKey(strconv.FormatInt(prefix, 10) + "-" + strconv.FormatInt(suffix, 10)), true, nil
}

// parsePart normaliza un campo crudo de prefijo/sufijo. Vacío o "NULL" cuentan
// como centinela cero (campo aún no poblado por el proceso de vínculo).
func parsePart(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "null") {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q no es numérico", domain.ErrMalformedKey, raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d fuera de rango", domain.ErrMalformedKey, n)
	}
	return n, nil
}

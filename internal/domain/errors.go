package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrMalformedKey indica un prefijo/sufijo de OC no numérico o fuera de
	// rango. El registro se excluye del cruce y se cuenta aparte, nunca se
	// fuerza a una clave.
	ErrMalformedKey = errors.New("clave de OC malformada")

	// ErrSourceUnavailable / ErrDestinationUnavailable: un extractor falló o
	// venció su timeout. Se reportan como estado del lado afectado; no abortan
	// el reporte completo.
	ErrSourceUnavailable      = errors.New("origen CI no disponible")
	ErrDestinationUnavailable = errors.New("destino SGM no disponible")

	// ErrDuplicateOrderID: el extractor entregó dos veces el mismo identificador
	// nativo en una misma llamada. Violación de contrato: esto sí aborta.
	ErrDuplicateOrderID = errors.New("identificador de orden duplicado en el extractor")

	// ErrInvalidRange rango de fechas inválido (hasta anterior a desde).
	ErrInvalidRange = errors.New("rango de fechas inválido")

	ErrInvalidInput = errors.New("entrada inválida")
	ErrNotFound     = errors.New("recurso no encontrado")
)

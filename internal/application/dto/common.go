package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SideStatusDTO estado de disponibilidad de un lado del cruce (Connexa o SGM).
// Cuando Available es false, los conteos cruzados no se calculan y RawCount
// queda en cero: "no medido" nunca se reporta como "cero actividad".
type SideStatusDTO struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
	RawCount  int    `json:"raw_count"`
}

package entity

// Buyer maestro de compradores (src.m_9_compradores).
type Buyer struct {
	Code int64  // cod_comprador
	Name string // n_comprador
}

// Supplier maestro de proveedores (src.m_10_proveedores).
type Supplier struct {
	Code int64  // c_proveedor
	Name string // n_proveedor
}

package dto

// CategoryRequest body para crear/actualizar categorías.
type CategoryRequest struct {
	Name        string `json:"nombre" validate:"required,min=1,max=100"`
	Description string `json:"descripcion" validate:"max=500"`
}

// CategoryResponse categoría en respuestas.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

// SupplierRequest body para crear/actualizar proveedores.
type SupplierRequest struct {
	Name    string `json:"nombre" validate:"required,min=1,max=200"`
	RUC     string `json:"ruc" validate:"max=20"`
	Contact string `json:"contacto" validate:"max=200"`
	Phone   string `json:"telefono" validate:"max=30"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"direccion" validate:"max=300"`
}

// SupplierResponse proveedor en respuestas.
type SupplierResponse struct {
	ID      string `json:"id"`
	Name    string `json:"nombre"`
	RUC     string `json:"ruc,omitempty"`
	Contact string `json:"contacto,omitempty"`
	Phone   string `json:"telefono,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"direccion,omitempty"`
}

// CustomerRequest body para crear/actualizar clientes.
type CustomerRequest struct {
	Name     string `json:"nombre" validate:"required,min=1,max=200"`
	Document string `json:"documento" validate:"required,min=8,max=20"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"telefono" validate:"max=30"`
	Address  string `json:"direccion" validate:"max=300"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID       string `json:"id"`
	Name     string `json:"nombre"`
	Document string `json:"documento"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"telefono,omitempty"`
	Address  string `json:"direccion,omitempty"`
}

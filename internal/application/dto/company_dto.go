package dto

import "time"

// RegisterCompanyRequest registro público: empresa + primer usuario ADMIN.
type RegisterCompanyRequest struct {
	CompanyName string `json:"empresa" validate:"required,min=2,max=200"`
	RUC         string `json:"ruc" validate:"required,min=8,max=20"`
	Address     string `json:"direccion" validate:"max=300"`
	Phone       string `json:"telefono" validate:"max=30"`
	AdminName   string `json:"nombre" validate:"required,min=1,max=200"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
}

// CreateCompanyRequest alta directa por SUPERUSER (sin usuario).
type CreateCompanyRequest struct {
	Name    string `json:"nombre" validate:"required,min=2,max=200"`
	RUC     string `json:"ruc" validate:"required,min=8,max=20"`
	Address string `json:"direccion" validate:"max=300"`
	Phone   string `json:"telefono" validate:"max=30"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// UpdateCompanyStatusRequest body para PATCH /api/companies/:id/status.
type UpdateCompanyStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended inactive"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	RUC       string    `json:"ruc"`
	Slug      string    `json:"slug"`
	Address   string    `json:"direccion"`
	Phone     string    `json:"telefono"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// RegisterCompanyResponse resultado del registro con token listo para usar.
type RegisterCompanyResponse struct {
	Company CompanyResponse `json:"empresa"`
	Login   LoginResponse   `json:"sesion"`
}

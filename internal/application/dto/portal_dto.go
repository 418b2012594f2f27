package dto

import "github.com/shopspring/decimal"

// PortalCompanyResponse datos públicos de la empresa en el portal.
type PortalCompanyResponse struct {
	Name    string `json:"nombre"`
	Slug    string `json:"slug"`
	Address string `json:"direccion,omitempty"`
	Phone   string `json:"telefono,omitempty"`
	Email   string `json:"email,omitempty"`
}

// PortalProductResponse producto visible en el portal (sin costos ni stock exacto).
type PortalProductResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"codigo"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion,omitempty"`
	CategoryID  string          `json:"id_categoria,omitempty"`
	Price       decimal.Decimal `json:"precio"`
	Available   bool            `json:"disponible"`
}

// PortalCatalogResponse catálogo público de una empresa.
type PortalCatalogResponse struct {
	Company  PortalCompanyResponse   `json:"empresa"`
	Products []PortalProductResponse `json:"productos"`
}

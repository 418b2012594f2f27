// Package documents arma los PDF de ventas y compras y la exportación XML de ventas.
package documents

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/policy"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// DocumentUseCase resuelve empresa, cliente o proveedor y delega la generación.
type DocumentUseCase struct {
	sales        SaleLoader
	purchases    PurchaseLoader
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	pdf          PDFGenerator
	xml          XMLExporter
}

// NewDocumentUseCase construye el caso de uso inyectando todas sus dependencias.
func NewDocumentUseCase(
	sales SaleLoader,
	purchases PurchaseLoader,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	pdf PDFGenerator,
	xml XMLExporter,
) *DocumentUseCase {
	return &DocumentUseCase{
		sales:        sales,
		purchases:    purchases,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		pdf:          pdf,
		xml:          xml,
	}
}

// SalePDF devuelve el PDF de la venta y el nombre de archivo sugerido.
// Las ventas anuladas también se imprimen; el PDF lleva la marca ANULADA.
func (uc *DocumentUseCase) SalePDF(ctx context.Context, actor policy.Actor, id string) ([]byte, string, error) {
	doc, err := uc.saleDocument(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.SalePDF(ctx, *doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf venta: %w", err)
	}
	return b, fmt.Sprintf("venta_%s.pdf", doc.Sale.Number), nil
}

// SaleXML devuelve el XML de la venta. Una venta anulada no se exporta.
func (uc *DocumentUseCase) SaleXML(ctx context.Context, actor policy.Actor, id string) ([]byte, string, error) {
	doc, err := uc.saleDocument(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	if doc.Sale.Status == entity.SaleStatusVoided {
		return nil, "", fmt.Errorf("%w: la venta %s está anulada", domain.ErrConflict, doc.Sale.Number)
	}
	b, err := uc.xml.SaleXML(ctx, *doc)
	if err != nil {
		return nil, "", fmt.Errorf("xml venta: %w", err)
	}
	return b, fmt.Sprintf("venta_%s.xml", doc.Sale.Number), nil
}

// PurchasePDF devuelve la orden de compra en PDF.
func (uc *DocumentUseCase) PurchasePDF(ctx context.Context, actor policy.Actor, id string) ([]byte, string, error) {
	purchase, details, err := uc.purchases.Load(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	company, err := uc.company(ctx, purchase.CompanyID)
	if err != nil {
		return nil, "", err
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, purchase.SupplierID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf compra: proveedor: %w", err)
	}
	if supplier == nil {
		supplier = &entity.Supplier{ID: purchase.SupplierID, Name: "Proveedor " + purchase.SupplierID}
	}
	lines := make([]Line, 0, len(details))
	for _, d := range details {
		lines = append(lines, Line{ProductID: d.ProductID, Name: d.ProductName, Quantity: d.Quantity, UnitPrice: d.UnitPrice, Subtotal: d.Subtotal})
	}
	b, err := uc.pdf.PurchasePDF(ctx, PurchaseDocument{Purchase: purchase, Company: company, Supplier: supplier, Lines: lines})
	if err != nil {
		return nil, "", fmt.Errorf("pdf compra: %w", err)
	}
	return b, fmt.Sprintf("compra_%s.pdf", purchase.Number), nil
}

func (uc *DocumentUseCase) saleDocument(ctx context.Context, actor policy.Actor, id string) (*SaleDocument, error) {
	sale, details, err := uc.sales.Load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	company, err := uc.company(ctx, sale.CompanyID)
	if err != nil {
		return nil, err
	}
	var customer *entity.Customer
	if sale.CustomerID != "" {
		customer, err = uc.customerRepo.GetByID(ctx, sale.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("documento venta: cliente: %w", err)
		}
	}
	lines := make([]Line, 0, len(details))
	for _, d := range details {
		lines = append(lines, Line{ProductID: d.ProductID, Name: d.ProductName, Quantity: d.Quantity, UnitPrice: d.UnitPrice, Subtotal: d.Subtotal})
	}
	return &SaleDocument{Sale: sale, Company: company, Customer: customer, Lines: lines}, nil
}

func (uc *DocumentUseCase) company(ctx context.Context, id string) (*entity.Company, error) {
	c, err := uc.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("documento: empresa: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

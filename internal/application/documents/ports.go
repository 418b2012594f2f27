package documents

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/policy"
)

// Line línea de documento lista para imprimir.
type Line struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// SaleDocument datos completos de una venta para PDF y XML. Customer es nil en ventas sin cliente.
type SaleDocument struct {
	Sale     *entity.Sale
	Company  *entity.Company
	Customer *entity.Customer
	Lines    []Line
}

// PurchaseDocument datos completos de una orden de compra.
type PurchaseDocument struct {
	Purchase *entity.Purchase
	Company  *entity.Company
	Supplier *entity.Supplier
	Lines    []Line
}

// PDFGenerator genera la representación impresa de ventas y compras.
type PDFGenerator interface {
	SalePDF(ctx context.Context, doc SaleDocument) ([]byte, error)
	PurchasePDF(ctx context.Context, doc PurchaseDocument) ([]byte, error)
}

// XMLExporter serializa una venta como Invoice XML con digest de integridad.
type XMLExporter interface {
	SaleXML(ctx context.Context, doc SaleDocument) ([]byte, error)
}

// SaleLoader y PurchaseLoader cargan el documento respetando el tenant del actor.
type SaleLoader interface {
	Load(ctx context.Context, actor policy.Actor, id string) (*entity.Sale, []*entity.SaleDetail, error)
}

type PurchaseLoader interface {
	Load(ctx context.Context, actor policy.Actor, id string) (*entity.Purchase, []*entity.PurchaseDetail, error)
}

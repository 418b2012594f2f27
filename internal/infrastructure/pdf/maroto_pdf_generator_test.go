package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/documents"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

func company() *entity.Company {
	return &entity.Company{ID: "c1", Name: "Bodega Ñandú", RUC: "20123456789", Address: "Av. Lima 123"}
}

func lines() []documents.Line {
	return []documents.Line{
		{ProductID: "p1", Name: "Arroz extra 5kg", Quantity: 2, UnitPrice: decimal.RequireFromString("22.90"), Subtotal: decimal.RequireFromString("45.80")},
		{ProductID: "p2", Name: "Aceite 1L", Quantity: 1, UnitPrice: decimal.RequireFromString("9.50"), Subtotal: decimal.RequireFromString("9.50")},
	}
}

func TestSalePDF(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		sale entity.Sale
		cust *entity.Customer
	}{
		{"sin cliente", entity.Sale{Number: "V-000001", Status: entity.SaleStatusCompleted, PaymentMethod: entity.PaymentCash}, nil},
		{"con cliente y anulada", entity.Sale{Number: "V-000002", Status: entity.SaleStatusVoided, VoidReason: "error", PaymentMethod: entity.PaymentCard},
			&entity.Customer{Name: "Ana Torres", Document: "12345678", Email: "ana@x.pe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.sale
			s.CreatedAt = now
			s.Subtotal = decimal.RequireFromString("55.30")
			s.Discount = decimal.RequireFromString("0.30")
			s.Total = decimal.RequireFromString("55.00")

			b, err := NewMarotoPDFGenerator().SalePDF(context.Background(), documents.SaleDocument{
				Sale: &s, Company: company(), Customer: tt.cust, Lines: lines(),
			})
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
		})
	}
}

func TestPurchasePDF(t *testing.T) {
	received := time.Now()
	b, err := NewMarotoPDFGenerator().PurchasePDF(context.Background(), documents.PurchaseDocument{
		Purchase: &entity.Purchase{Number: "C-000001", Status: entity.PurchaseStatusReceived, Total: decimal.RequireFromString("55.30"), CreatedAt: received, ReceivedAt: &received},
		Company:  company(),
		Supplier: &entity.Supplier{Name: "Distribuidora Norte", RUC: "20999999999"},
		Lines:    lines(),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestMoney(t *testing.T) {
	tests := map[string]string{
		"0":        "S/ 0.00",
		"9.5":      "S/ 9.50",
		"1234.5":   "S/ 1,234.50",
		"1000000":  "S/ 1,000,000.00",
		"-1500.25": "-S/ 1,500.25",
	}
	for in, want := range tests {
		assert.Equal(t, want, money(decimal.RequireFromString(in)), in)
	}
}

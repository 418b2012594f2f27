package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Ventas-api/internal/domain/inventory"
)

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	// 10 u a 5.00 + 10 u a 7.00 = 6.00
	got := inventory.CostCalculator(10, decimal.NewFromInt(5), 10, decimal.NewFromInt(7))
	assert.True(t, got.Equal(decimal.NewFromInt(6)), "got %s", got)
}

func TestCostCalculator_SinStockPrevio(t *testing.T) {
	got := inventory.CostCalculator(0, decimal.Zero, 4, decimal.RequireFromString("2.50"))
	assert.True(t, got.Equal(decimal.RequireFromString("2.5")), "got %s", got)
}

func TestCostCalculator_SinUnidades(t *testing.T) {
	got := inventory.CostCalculator(0, decimal.NewFromInt(3), 0, decimal.NewFromInt(9))
	assert.True(t, got.IsZero())
}

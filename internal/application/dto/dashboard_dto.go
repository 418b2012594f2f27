package dto

import "github.com/shopspring/decimal"

// TopProductDTO producto más vendido del mes.
type TopProductDTO struct {
	ProductID string          `json:"id_producto"`
	Code      string          `json:"codigo"`
	Name      string          `json:"nombre"`
	Units     int             `json:"unidades"`
	Revenue   decimal.Decimal `json:"ingresos"`
}

// DashboardSummaryDTO resumen del día y del mes en curso para GET /api/dashboard/resumen.
type DashboardSummaryDTO struct {
	TodaySales          decimal.Decimal `json:"ventas_hoy"`
	TodaySalesCount     int             `json:"cantidad_ventas_hoy"`
	MonthlySales        decimal.Decimal `json:"ventas_mes"`
	MonthlyPurchases    decimal.Decimal `json:"compras_mes"`
	LowStockProducts    int             `json:"productos_stock_bajo"`
	UnreadNotifications int             `json:"notificaciones_no_leidas"`
	TopProducts         []TopProductDTO `json:"top_productos"`
	DateLabel           string          `json:"periodo"`
}

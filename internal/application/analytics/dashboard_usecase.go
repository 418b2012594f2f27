// Package analytics contiene el resumen del dashboard de la empresa.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/policy"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

const dashboardTopProducts = 5

// DashboardUseCase genera el resumen del día y del mes en curso.
// Solo lee: ventas ANULADAS y compras no RECIBIDAS no cuentan (lo resuelve el repositorio).
type DashboardUseCase struct {
	analyticsRepo    repository.AnalyticsRepository
	notificationRepo repository.NotificationRepository
	now              func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, notificationRepo repository.NotificationRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, notificationRepo: notificationRepo, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO de la empresa del actor.
//
// Seis consultas en paralelo:
//  1. SalesTotals(hoy)         → TodaySales, TodaySalesCount
//  2. SalesTotals(mes)         → MonthlySales
//  3. PurchaseTotals(mes)      → MonthlyPurchases
//  4. CountLowStock            → LowStockProducts
//  5. TopProducts(mes, top 5)  → TopProducts
//  6. CountUnread              → UnreadNotifications
func (uc *DashboardUseCase) GetSummary(ctx context.Context, actor policy.Actor) (*dto.DashboardSummaryDTO, error) {
	companyID, err := policy.Tenant(actor)
	if err != nil {
		return nil, err
	}
	now := uc.now()

	// Hoy: 00:00:00.000 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type salesResult struct {
		total decimal.Decimal
		count int
		err   error
	}
	type amountResult struct {
		total decimal.Decimal
		err   error
	}
	type countResult struct {
		n   int
		err error
	}
	type topResult struct {
		list []entity.TopProduct
		err  error
	}

	todayCh := make(chan salesResult, 1)
	monthCh := make(chan salesResult, 1)
	purchasesCh := make(chan amountResult, 1)
	lowCh := make(chan countResult, 1)
	topCh := make(chan topResult, 1)
	unreadCh := make(chan countResult, 1)

	go func() {
		total, count, err := uc.analyticsRepo.SalesTotals(ctx, companyID, todayStart, todayEnd)
		todayCh <- salesResult{total, count, err}
	}()
	go func() {
		total, count, err := uc.analyticsRepo.SalesTotals(ctx, companyID, monthStart, todayEnd)
		monthCh <- salesResult{total, count, err}
	}()
	go func() {
		total, err := uc.analyticsRepo.PurchaseTotals(ctx, companyID, monthStart, todayEnd)
		purchasesCh <- amountResult{total, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountLowStock(ctx, companyID)
		lowCh <- countResult{n, err}
	}()
	go func() {
		list, err := uc.analyticsRepo.TopProducts(ctx, companyID, monthStart, todayEnd, dashboardTopProducts)
		topCh <- topResult{list, err}
	}()
	go func() {
		n, err := uc.notificationRepo.CountUnread(ctx, companyID)
		unreadCh <- countResult{n, err}
	}()

	today := <-todayCh
	month := <-monthCh
	purchases := <-purchasesCh
	low := <-lowCh
	top := <-topCh
	unread := <-unreadCh

	switch {
	case today.err != nil:
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", today.err)
	case month.err != nil:
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", month.err)
	case purchases.err != nil:
		return nil, fmt.Errorf("dashboard: compras del mes: %w", purchases.err)
	case low.err != nil:
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	case top.err != nil:
		return nil, fmt.Errorf("dashboard: top productos: %w", top.err)
	case unread.err != nil:
		return nil, fmt.Errorf("dashboard: notificaciones: %w", unread.err)
	}

	topDTO := make([]dto.TopProductDTO, 0, len(top.list))
	for _, p := range top.list {
		topDTO = append(topDTO, dto.TopProductDTO{
			ProductID: p.ProductID,
			Code:      p.Code,
			Name:      p.Name,
			Units:     p.Units,
			Revenue:   p.Revenue.Round(2),
		})
	}

	return &dto.DashboardSummaryDTO{
		TodaySales:          today.total.Round(2),
		TodaySalesCount:     today.count,
		MonthlySales:        month.total.Round(2),
		MonthlyPurchases:    purchases.total.Round(2),
		LowStockProducts:    low.n,
		UnreadNotifications: unread.n,
		TopProducts:         topDTO,
		DateLabel:           monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

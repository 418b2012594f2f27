package sales

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/notification"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/policy"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/internal/domain/sequence"
	"github.com/jhoicas/Ventas-api/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// SaleUseCase registra, consulta y anula ventas.
type SaleUseCase struct {
	txRunner     TxRunner
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	notifier     *notification.Notifier
	metrics      Metrics
	now          func() time.Time
}

// NewSaleUseCase construye el caso de uso. metrics puede ser nil.
func NewSaleUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	notifier *notification.Notifier,
	metrics Metrics,
) *SaleUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &SaleUseCase{
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		notifier:     notifier,
		metrics:      metrics,
		now:          time.Now,
	}
}

// Create registra la venta en una sola transacción: bloquea los productos, valida stock,
// descuenta, emite avisos de stock, toma el siguiente V- y guarda cabecera y líneas.
// Cualquier error deja la base como estaba.
func (uc *SaleUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	companyID, err := policy.Tenant(actor)
	if err != nil {
		return nil, err
	}
	if len(in.Lines) == 0 {
		return nil, domain.ErrEmptyLines
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: método de pago %q", domain.ErrInvalidInput, in.PaymentMethod)
	}
	if in.Discount.IsNegative() {
		return nil, fmt.Errorf("%w: descuento negativo", domain.ErrInvalidInput)
	}

	// Cantidad pedida por producto (varias líneas pueden repetir producto).
	requested := make(map[string]int, len(in.Lines))
	for _, l := range in.Lines {
		if l.ProductID == "" || l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cantidad debe ser mayor a 0", domain.ErrInvalidInput)
		}
		requested[l.ProductID] += l.Quantity
	}
	ids := make([]string, 0, len(requested))
	for id := range requested {
		ids = append(ids, id)
	}
	sort.Strings(ids) // orden fijo de locks entre transacciones concurrentes

	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil || customer.CompanyID != companyID {
			return nil, fmt.Errorf("%w: cliente", domain.ErrNotFound)
		}
	}

	now := uc.now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		UserID:        actor.UserID,
		CustomerID:    in.CustomerID,
		PaymentMethod: in.PaymentMethod,
		Discount:      in.Discount,
		Status:        entity.SaleStatusCompleted,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	var details []*entity.SaleDetail
	var alerts []string

	err = uc.txRunner.RunSales(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		notificationRepo repository.NotificationRepository,
		seqRepo repository.SequenceRepository,
	) error {
		details, alerts = nil, nil

		products := make(map[string]*entity.Product, len(ids))
		for _, id := range ids {
			p, err := productRepo.GetForUpdate(ctx, companyID, id)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
			}
			if !p.Active {
				return fmt.Errorf("%w: %s", domain.ErrInactiveProduct, p.Code)
			}
			if !stock.CanDecrease(p.Stock, requested[id]) {
				return fmt.Errorf("%w: %s tiene %d, se pidieron %d", domain.ErrInsufficientStock, p.Code, p.Stock, requested[id])
			}
			products[id] = p
		}

		subtotal := decimal.Zero
		for _, l := range in.Lines {
			p := products[l.ProductID]
			lineTotal := p.SalePrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
			subtotal = subtotal.Add(lineTotal)
			details = append(details, &entity.SaleDetail{
				ID:          uuid.New().String(),
				SaleID:      sale.ID,
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    l.Quantity,
				UnitPrice:   p.SalePrice,
				Subtotal:    lineTotal,
			})
		}
		if in.Discount.GreaterThan(subtotal) {
			return fmt.Errorf("%w: el descuento supera el subtotal", domain.ErrInvalidInput)
		}
		sale.Subtotal = subtotal
		sale.Total = subtotal.Sub(in.Discount)

		for _, id := range ids {
			newStock, err := productRepo.AdjustStock(ctx, id, -requested[id])
			if err != nil {
				return err
			}
			notif, err := uc.notifier.AfterStockDecrease(ctx, notificationRepo, products[id], newStock)
			if err != nil {
				return err
			}
			if notif != nil {
				alerts = append(alerts, notif.Type)
			}
		}

		n, err := seqRepo.Next(ctx, companyID, sequence.DocSale)
		if err != nil {
			return err
		}
		sale.Number = sequence.Format(sequence.DocSale, n)

		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		for _, d := range details {
			if err := saleRepo.CreateDetail(ctx, d); err != nil {
				return err
			}
		}
		msg := fmt.Sprintf("Venta %s registrada por %s", sale.Number, sale.Total.StringFixed(2))
		return uc.notifier.DocumentCreated(ctx, notificationRepo, companyID, entity.NotificationSale, msg)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.SaleCreated(sale.Total)
	for _, kind := range alerts {
		uc.metrics.StockAlert(kind)
	}
	return toSaleResponse(sale, details), nil
}

// Void anula una venta COMPLETADA y devuelve al stock cada línea. Anular dos veces es error.
func (uc *SaleUseCase) Void(ctx context.Context, actor policy.Actor, id, reason string) (*dto.SaleResponse, error) {
	var sale *entity.Sale
	var details []*entity.SaleDetail

	err := uc.txRunner.RunSales(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		_ repository.NotificationRepository,
		_ repository.SequenceRepository,
	) error {
		var err error
		sale, err = saleRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil || !policy.CanAccess(actor, sale.CompanyID) {
			return domain.ErrNotFound
		}
		if !sale.CanVoid() {
			return domain.ErrAlreadyVoided
		}
		details, err = saleRepo.GetDetails(ctx, sale.ID)
		if err != nil {
			return err
		}
		for _, d := range stock.InLockOrder(details, detailProduct) {
			if _, err := productRepo.AdjustStock(ctx, d.ProductID, d.Quantity); err != nil {
				return err
			}
		}
		now := uc.now()
		sale.Status = entity.SaleStatusVoided
		sale.VoidReason = reason
		sale.VoidedBy = actor.UserID
		sale.VoidedAt = &now
		sale.UpdatedAt = now
		return saleRepo.MarkVoided(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.SaleVoided()
	return toSaleResponse(sale, details), nil
}

func detailProduct(d *entity.SaleDetail) string { return d.ProductID }

// Get devuelve una venta con su detalle. Una venta de otra empresa se reporta como inexistente.
func (uc *SaleUseCase) Get(ctx context.Context, actor policy.Actor, id string) (*dto.SaleResponse, error) {
	sale, details, err := uc.Load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, details), nil
}

// Load devuelve la entidad y sus líneas (usado por PDF y XML).
func (uc *SaleUseCase) Load(ctx context.Context, actor policy.Actor, id string) (*entity.Sale, []*entity.SaleDetail, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if sale == nil || !policy.CanAccess(actor, sale.CompanyID) {
		return nil, nil, domain.ErrNotFound
	}
	details, err := uc.saleRepo.GetDetails(ctx, sale.ID)
	if err != nil {
		return nil, nil, err
	}
	return sale, details, nil
}

// List lista ventas de la empresa con filtros de estado y fechas (YYYY-MM-DD, hasta inclusive).
func (uc *SaleUseCase) List(ctx context.Context, actor policy.Actor, q dto.DocumentListQuery) (*dto.SaleListResponse, error) {
	filter, err := DocumentFilter(actor, q)
	if err != nil {
		return nil, err
	}
	list, err := uc.saleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s, nil))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// DocumentFilter traduce la query HTTP a filtro de repositorio (compartido con compras).
func DocumentFilter(actor policy.Actor, q dto.DocumentListQuery) (repository.DocumentFilter, error) {
	companyID, err := policy.Tenant(actor)
	if err != nil {
		return repository.DocumentFilter{}, err
	}
	q.DefaultPage()
	f := repository.DocumentFilter{
		CompanyID: companyID,
		Status:    q.Status,
		Limit:     q.Limit,
		Offset:    q.Offset,
	}
	if q.From != "" {
		t, err := time.ParseInLocation(time.DateOnly, q.From, time.Local)
		if err != nil {
			return f, fmt.Errorf("%w: desde debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
		f.From = &t
	}
	if q.To != "" {
		t, err := time.ParseInLocation(time.DateOnly, q.To, time.Local)
		if err != nil {
			return f, fmt.Errorf("%w: hasta debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
		t = t.AddDate(0, 0, 1)
		f.To = &t
	}
	return f, nil
}

func toSaleResponse(s *entity.Sale, details []*entity.SaleDetail) *dto.SaleResponse {
	out := &dto.SaleResponse{
		ID:            s.ID,
		CompanyID:     s.CompanyID,
		UserID:        s.UserID,
		CustomerID:    s.CustomerID,
		Number:        s.Number,
		PaymentMethod: s.PaymentMethod,
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		Total:         s.Total,
		Status:        s.Status,
		Notes:         s.Notes,
		VoidReason:    s.VoidReason,
		VoidedAt:      s.VoidedAt,
		CreatedAt:     s.CreatedAt,
		Details:       make([]dto.SaleDetailResponse, 0, len(details)),
	}
	for _, d := range details {
		out.Details = append(out.Details, dto.SaleDetailResponse{
			ID:          d.ID,
			ProductID:   d.ProductID,
			ProductName: d.ProductName,
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice,
			Subtotal:    d.Subtotal,
		})
	}
	return out
}

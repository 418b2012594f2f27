package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/notification"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/inventory"
	"github.com/jhoicas/Ventas-api/internal/domain/policy"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/internal/domain/sequence"
	"github.com/jhoicas/Ventas-api/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// PurchaseUseCase órdenes de compra: PENDIENTE → RECIBIDA | ANULADA.
// El stock solo se mueve al recibir.
type PurchaseUseCase struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRepository
	supplierRepo repository.SupplierRepository
	notifier     *notification.Notifier
	metrics      Metrics
	now          func() time.Time
}

// NewPurchaseUseCase construye el caso de uso. metrics puede ser nil.
func NewPurchaseUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
	notifier *notification.Notifier,
	metrics Metrics,
) *PurchaseUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &PurchaseUseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		notifier:     notifier,
		metrics:      metrics,
		now:          time.Now,
	}
}

// Create registra la orden en PENDIENTE con su número C-. No toca stock.
func (uc *PurchaseUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	companyID, err := policy.Tenant(actor)
	if err != nil {
		return nil, err
	}
	if len(in.Lines) == 0 {
		return nil, domain.ErrEmptyLines
	}
	for _, l := range in.Lines {
		if l.ProductID == "" || l.Quantity <= 0 || l.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: cantidad y precio deben ser positivos", domain.ErrInvalidInput)
		}
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.CompanyID != companyID {
		return nil, fmt.Errorf("%w: proveedor", domain.ErrNotFound)
	}

	now := uc.now()
	purchase := &entity.Purchase{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		UserID:     actor.UserID,
		SupplierID: supplier.ID,
		Status:     entity.PurchaseStatusPending,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	var details []*entity.PurchaseDetail

	err = uc.txRunner.RunPurchasing(ctx, func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		notificationRepo repository.NotificationRepository,
		seqRepo repository.SequenceRepository,
	) error {
		details = nil
		total := decimal.Zero
		for _, l := range in.Lines {
			p, err := productRepo.GetByID(ctx, l.ProductID)
			if err != nil {
				return err
			}
			if p == nil || p.CompanyID != companyID {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, l.ProductID)
			}
			if !p.Active {
				return fmt.Errorf("%w: %s", domain.ErrInactiveProduct, p.Code)
			}
			price := l.UnitPrice
			if price.IsZero() {
				price = p.PurchasePrice
			}
			// el subtotal se guarda con 2 decimales; el total es la suma de lo guardado
			lineTotal := price.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2)
			total = total.Add(lineTotal)
			details = append(details, &entity.PurchaseDetail{
				ID:          uuid.New().String(),
				PurchaseID:  purchase.ID,
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    l.Quantity,
				UnitPrice:   price,
				Subtotal:    lineTotal,
			})
		}
		purchase.Total = total

		n, err := seqRepo.Next(ctx, companyID, sequence.DocPurchase)
		if err != nil {
			return err
		}
		purchase.Number = sequence.Format(sequence.DocPurchase, n)

		if err := purchaseRepo.Create(ctx, purchase); err != nil {
			return err
		}
		for _, d := range details {
			if err := purchaseRepo.CreateDetail(ctx, d); err != nil {
				return err
			}
		}
		msg := fmt.Sprintf("Compra %s a %s registrada por %s", purchase.Number, supplier.Name, total.StringFixed(2))
		return uc.notifier.DocumentCreated(ctx, notificationRepo, companyID, entity.NotificationPurchase, msg)
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase, details), nil
}

// Receive pasa la compra a RECIBIDA: suma stock por línea y recalcula el costo promedio ponderado.
func (uc *PurchaseUseCase) Receive(ctx context.Context, actor policy.Actor, id string) (*dto.PurchaseResponse, error) {
	var purchase *entity.Purchase
	var details []*entity.PurchaseDetail

	err := uc.txRunner.RunPurchasing(ctx, func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.NotificationRepository,
		_ repository.SequenceRepository,
	) error {
		var err error
		purchase, details, err = uc.lockForTransition(ctx, purchaseRepo, actor, id, entity.PurchaseStatusReceived)
		if err != nil {
			return err
		}
		for _, d := range stock.InLockOrder(details, detailProduct) {
			p, err := productRepo.GetForUpdate(ctx, purchase.CompanyID, d.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, d.ProductID)
			}
			cost := inventory.CostCalculator(p.Stock, p.PurchasePrice, d.Quantity, d.UnitPrice)
			if err := productRepo.UpdatePurchasePrice(ctx, p.ID, cost); err != nil {
				return err
			}
			if _, err := productRepo.AdjustStock(ctx, p.ID, d.Quantity); err != nil {
				return err
			}
		}
		now := uc.now()
		purchase.Status = entity.PurchaseStatusReceived
		purchase.ReceivedAt = &now
		purchase.UpdatedAt = now
		return purchaseRepo.UpdateStatus(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.PurchaseReceived()
	return toPurchaseResponse(purchase, details), nil
}

func detailProduct(d *entity.PurchaseDetail) string { return d.ProductID }

// Void anula una compra PENDIENTE. Como nunca sumó stock, no lo toca.
// Una compra RECIBIDA no se anula.
func (uc *PurchaseUseCase) Void(ctx context.Context, actor policy.Actor, id string) (*dto.PurchaseResponse, error) {
	var purchase *entity.Purchase
	var details []*entity.PurchaseDetail

	err := uc.txRunner.RunPurchasing(ctx, func(
		_ repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.NotificationRepository,
		_ repository.SequenceRepository,
	) error {
		var err error
		purchase, details, err = uc.lockForTransition(ctx, purchaseRepo, actor, id, entity.PurchaseStatusVoided)
		if err != nil {
			return err
		}
		now := uc.now()
		purchase.Status = entity.PurchaseStatusVoided
		purchase.VoidedAt = &now
		purchase.UpdatedAt = now
		return purchaseRepo.UpdateStatus(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase, details), nil
}

func (uc *PurchaseUseCase) lockForTransition(
	ctx context.Context,
	repo repository.PurchaseRepository,
	actor policy.Actor,
	id, to string,
) (*entity.Purchase, []*entity.PurchaseDetail, error) {
	purchase, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if purchase == nil || !policy.CanAccess(actor, purchase.CompanyID) {
		return nil, nil, domain.ErrNotFound
	}
	if !entity.PurchaseCanTransition(purchase.Status, to) {
		return nil, nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, purchase.Status, to)
	}
	details, err := repo.GetDetails(ctx, purchase.ID)
	if err != nil {
		return nil, nil, err
	}
	return purchase, details, nil
}

// Get devuelve una compra con su detalle.
func (uc *PurchaseUseCase) Get(ctx context.Context, actor policy.Actor, id string) (*dto.PurchaseResponse, error) {
	p, details, err := uc.Load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(p, details), nil
}

// Load devuelve la entidad y sus líneas (usado por el PDF de orden de compra).
func (uc *PurchaseUseCase) Load(ctx context.Context, actor policy.Actor, id string) (*entity.Purchase, []*entity.PurchaseDetail, error) {
	p, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if p == nil || !policy.CanAccess(actor, p.CompanyID) {
		return nil, nil, domain.ErrNotFound
	}
	details, err := uc.purchaseRepo.GetDetails(ctx, p.ID)
	if err != nil {
		return nil, nil, err
	}
	return p, details, nil
}

// List lista compras de la empresa.
func (uc *PurchaseUseCase) List(ctx context.Context, actor policy.Actor, q dto.DocumentListQuery) (*dto.PurchaseListResponse, error) {
	filter, err := sales.DocumentFilter(actor, q)
	if err != nil {
		return nil, err
	}
	list, err := uc.purchaseRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPurchaseResponse(p, nil))
	}
	return &dto.PurchaseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

func toPurchaseResponse(p *entity.Purchase, details []*entity.PurchaseDetail) *dto.PurchaseResponse {
	out := &dto.PurchaseResponse{
		ID:         p.ID,
		CompanyID:  p.CompanyID,
		UserID:     p.UserID,
		SupplierID: p.SupplierID,
		Number:     p.Number,
		Total:      p.Total,
		Status:     p.Status,
		Notes:      p.Notes,
		ReceivedAt: p.ReceivedAt,
		VoidedAt:   p.VoidedAt,
		CreatedAt:  p.CreatedAt,
		Details:    make([]dto.PurchaseDetailResponse, 0, len(details)),
	}
	for _, d := range details {
		out.Details = append(out.Details, dto.PurchaseDetailResponse{
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

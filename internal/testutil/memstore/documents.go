package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.SaleRepository         = (*SaleRepo)(nil)
	_ repository.PurchaseRepository     = (*PurchaseRepo)(nil)
	_ repository.NotificationRepository = (*NotificationRepo)(nil)
	_ repository.SequenceRepository     = (*SequenceRepo)(nil)
	_ repository.AnalyticsRepository    = (*AnalyticsRepo)(nil)
)

func inRange(t time.Time, f repository.DocumentFilter) bool {
	if f.From != nil && t.Before(*f.From) {
		return false
	}
	if f.To != nil && !t.Before(*f.To) {
		return false
	}
	return true
}

type SaleRepo struct{ s *Store }

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.sales {
		if o.CompanyID == sale.CompanyID && o.Number == sale.Number {
			return domain.ErrDuplicate
		}
	}
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *SaleRepo) CreateDetail(_ context.Context, d *entity.SaleDetail) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.saleDetails = append(r.s.saleDetails, *d)
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return &sale, nil
}

func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *SaleRepo) GetDetails(_ context.Context, saleID string) ([]*entity.SaleDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.SaleDetail
	for _, d := range r.s.saleDetails {
		if d.SaleID == saleID {
			d.ProductName = r.s.products[d.ProductID].Name
			list = append(list, &d)
		}
	}
	return list, nil
}

func (r *SaleRepo) MarkVoided(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[sale.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *SaleRepo) List(_ context.Context, f repository.DocumentFilter) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Sale
	for _, sale := range r.s.sales {
		if sale.CompanyID != f.CompanyID || (f.Status != "" && sale.Status != f.Status) || !inRange(sale.CreatedAt, f) {
			continue
		}
		list = append(list, &sale)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Number > list[j].Number })
	return page(list, f.Limit, f.Offset), nil
}

type PurchaseRepo struct{ s *Store }

func (r *PurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.purchases {
		if o.CompanyID == p.CompanyID && o.Number == p.Number {
			return domain.ErrDuplicate
		}
	}
	r.s.purchases[p.ID] = *p
	return nil
}

func (r *PurchaseRepo) CreateDetail(_ context.Context, d *entity.PurchaseDetail) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.purchaseDetails = append(r.s.purchaseDetails, *d)
	return nil
}

func (r *PurchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.purchases[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *PurchaseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseRepo) GetDetails(_ context.Context, purchaseID string) ([]*entity.PurchaseDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.PurchaseDetail
	for _, d := range r.s.purchaseDetails {
		if d.PurchaseID == purchaseID {
			d.ProductName = r.s.products[d.ProductID].Name
			list = append(list, &d)
		}
	}
	return list, nil
}

func (r *PurchaseRepo) UpdateStatus(_ context.Context, p *entity.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.purchases[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.purchases[p.ID] = *p
	return nil
}

func (r *PurchaseRepo) List(_ context.Context, f repository.DocumentFilter) ([]*entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Purchase
	for _, p := range r.s.purchases {
		if p.CompanyID != f.CompanyID || (f.Status != "" && p.Status != f.Status) || !inRange(p.CreatedAt, f) {
			continue
		}
		list = append(list, &p)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Number > list[j].Number })
	return page(list, f.Limit, f.Offset), nil
}

type NotificationRepo struct{ s *Store }

func (r *NotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.FailNotificationCreate; err != nil {
		r.s.FailNotificationCreate = nil
		return err
	}
	r.s.notifications = append(r.s.notifications, *n)
	return nil
}

func (r *NotificationRepo) GetByID(_ context.Context, id string) (*entity.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range r.s.notifications {
		if n.ID == id {
			return &n, nil
		}
	}
	return nil, nil
}

func (r *NotificationRepo) ListByCompany(_ context.Context, companyID string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Notification
	for i := len(r.s.notifications) - 1; i >= 0; i-- {
		n := r.s.notifications[i]
		if n.CompanyID != companyID || (onlyUnread && n.Read) {
			continue
		}
		list = append(list, &n)
	}
	return page(list, limit, offset), nil
}

func (r *NotificationRepo) CountUnread(_ context.Context, companyID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, n := range r.s.notifications {
		if n.CompanyID == companyID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepo) MarkRead(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.notifications {
		if r.s.notifications[i].ID == id {
			r.s.notifications[i].Read = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *NotificationRepo) MarkAllRead(_ context.Context, companyID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var changed int64
	for i := range r.s.notifications {
		n := &r.s.notifications[i]
		if n.CompanyID == companyID && !n.Read {
			n.Read = true
			changed++
		}
	}
	return changed, nil
}

type SequenceRepo struct{ s *Store }

func (r *SequenceRepo) Next(_ context.Context, companyID, docType string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := seqKey(companyID, docType)
	r.s.sequences[k]++
	return r.s.sequences[k], nil
}

type AnalyticsRepo struct{ s *Store }

func (r *AnalyticsRepo) SalesTotals(_ context.Context, companyID string, from, to time.Time) (decimal.Decimal, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	count := 0
	for _, sale := range r.s.sales {
		if sale.CompanyID == companyID && sale.Status == entity.SaleStatusCompleted &&
			!sale.CreatedAt.Before(from) && sale.CreatedAt.Before(to) {
			total = total.Add(sale.Total)
			count++
		}
	}
	return total, count, nil
}

func (r *AnalyticsRepo) PurchaseTotals(_ context.Context, companyID string, from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, p := range r.s.purchases {
		if p.CompanyID == companyID && p.Status == entity.PurchaseStatusReceived && p.ReceivedAt != nil &&
			!p.ReceivedAt.Before(from) && p.ReceivedAt.Before(to) {
			total = total.Add(p.Total)
		}
	}
	return total, nil
}

func (r *AnalyticsRepo) CountLowStock(_ context.Context, companyID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, p := range r.s.products {
		if p.CompanyID == companyID && p.Active && p.Stock <= p.MinStock {
			count++
		}
	}
	return count, nil
}

func (r *AnalyticsRepo) TopProducts(_ context.Context, companyID string, from, to time.Time, limit int) ([]entity.TopProduct, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	agg := map[string]*entity.TopProduct{}
	for _, d := range r.s.saleDetails {
		sale := r.s.sales[d.SaleID]
		if sale.CompanyID != companyID || sale.Status != entity.SaleStatusCompleted ||
			sale.CreatedAt.Before(from) || !sale.CreatedAt.Before(to) {
			continue
		}
		t, ok := agg[d.ProductID]
		if !ok {
			p := r.s.products[d.ProductID]
			t = &entity.TopProduct{ProductID: p.ID, Code: p.Code, Name: p.Name}
			agg[d.ProductID] = t
		}
		t.Units += d.Quantity
		t.Revenue = t.Revenue.Add(d.Subtotal)
	}
	list := make([]entity.TopProduct, 0, len(agg))
	for _, t := range agg {
		list = append(list, *t)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Units != list[j].Units {
			return list[i].Units > list[j].Units
		}
		return list[i].Revenue.GreaterThan(list[j].Revenue)
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

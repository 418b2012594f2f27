// Package memstore implementa los repositorios en memoria para tests de casos de uso y handlers.
// Las transacciones se serializan y, si el callback falla, el estado vuelve a la foto tomada al inicio.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// Store estado compartido por todos los repos en memoria.
type Store struct {
	txMu sync.Mutex // serializa transacciones (equivalente a los locks de fila)
	mu   sync.Mutex

	companies       map[string]entity.Company
	users           map[string]entity.User
	categories      map[string]entity.Category
	suppliers       map[string]entity.Supplier
	customers       map[string]entity.Customer
	products        map[string]entity.Product
	sales           map[string]entity.Sale
	saleDetails     []entity.SaleDetail
	purchases       map[string]entity.Purchase
	purchaseDetails []entity.PurchaseDetail
	notifications   []entity.Notification
	sequences       map[string]int64

	stockLog []string // ids en el orden en que se ajustó su stock; no vuelve atrás con el rollback

	// FailNotificationCreate hace fallar la próxima escritura de notificación (prueba de rollback).
	FailNotificationCreate error
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		companies:  map[string]entity.Company{},
		users:      map[string]entity.User{},
		categories: map[string]entity.Category{},
		suppliers:  map[string]entity.Supplier{},
		customers:  map[string]entity.Customer{},
		products:   map[string]entity.Product{},
		sales:      map[string]entity.Sale{},
		purchases:  map[string]entity.Purchase{},
		sequences:  map[string]int64{},
	}
}

type snapshot struct {
	companies       map[string]entity.Company
	users           map[string]entity.User
	categories      map[string]entity.Category
	suppliers       map[string]entity.Supplier
	customers       map[string]entity.Customer
	products        map[string]entity.Product
	sales           map[string]entity.Sale
	saleDetails     []entity.SaleDetail
	purchases       map[string]entity.Purchase
	purchaseDetails []entity.PurchaseDetail
	notifications   []entity.Notification
	sequences       map[string]int64
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copySlice[T any](s []T) []T {
	return append([]T(nil), s...)
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		companies:       copyMap(s.companies),
		users:           copyMap(s.users),
		categories:      copyMap(s.categories),
		suppliers:       copyMap(s.suppliers),
		customers:       copyMap(s.customers),
		products:        copyMap(s.products),
		sales:           copyMap(s.sales),
		saleDetails:     copySlice(s.saleDetails),
		purchases:       copyMap(s.purchases),
		purchaseDetails: copySlice(s.purchaseDetails),
		notifications:   copySlice(s.notifications),
		sequences:       copyMap(s.sequences),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies = snap.companies
	s.users = snap.users
	s.categories = snap.categories
	s.suppliers = snap.suppliers
	s.customers = snap.customers
	s.products = snap.products
	s.sales = snap.sales
	s.saleDetails = snap.saleDetails
	s.purchases = snap.purchases
	s.purchaseDetails = snap.purchaseDetails
	s.notifications = snap.notifications
	s.sequences = snap.sequences
}

// inTx ejecuta fn serializado y deshace todos los cambios si devuelve error.
func (s *Store) inTx(fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	snap := s.snapshot()
	if err := fn(); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// Repos accesibles fuera de transacción.

func (s *Store) Companies() *CompanyRepo           { return &CompanyRepo{s} }
func (s *Store) Users() *UserRepo                  { return &UserRepo{s} }
func (s *Store) Categories() *CategoryRepo         { return &CategoryRepo{s} }
func (s *Store) Suppliers() *SupplierRepo          { return &SupplierRepo{s} }
func (s *Store) Customers() *CustomerRepo          { return &CustomerRepo{s} }
func (s *Store) Products() *ProductRepo            { return &ProductRepo{s} }
func (s *Store) Sales() *SaleRepo                  { return &SaleRepo{s} }
func (s *Store) Purchases() *PurchaseRepo          { return &PurchaseRepo{s} }
func (s *Store) Notifications() *NotificationRepo  { return &NotificationRepo{s} }
func (s *Store) Sequences() *SequenceRepo          { return &SequenceRepo{s} }
func (s *Store) Analytics() *AnalyticsRepo         { return &AnalyticsRepo{s} }
func (s *Store) TxRunner() *TxRunner               { return &TxRunner{s} }

// TxRunner implementa los TxRunner de ventas, compras e identidad.
type TxRunner struct {
	s *Store
}

func (t *TxRunner) RunSales(ctx context.Context, fn func(
	repository.ProductRepository, repository.SaleRepository, repository.NotificationRepository, repository.SequenceRepository,
) error) error {
	return t.s.inTx(func() error {
		return fn(t.s.Products(), t.s.Sales(), t.s.Notifications(), t.s.Sequences())
	})
}

func (t *TxRunner) RunPurchasing(ctx context.Context, fn func(
	repository.ProductRepository, repository.PurchaseRepository, repository.NotificationRepository, repository.SequenceRepository,
) error) error {
	return t.s.inTx(func() error {
		return fn(t.s.Products(), t.s.Purchases(), t.s.Notifications(), t.s.Sequences())
	})
}

func (t *TxRunner) RunIdentity(ctx context.Context, fn func(repository.CompanyRepository, repository.UserRepository) error) error {
	return t.s.inTx(func() error {
		return fn(t.s.Companies(), t.s.Users())
	})
}

// Helpers de inspección para aserciones.

// Product devuelve una copia del producto o nil.
func (s *Store) Product(id string) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil
	}
	return &p
}

// StockAdjustments devuelve los ids de producto en el orden en que AdjustStock los tocó.
func (s *Store) StockAdjustments() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySlice(s.stockLog)
}

// NotificationsOf devuelve los avisos de la empresa en orden de creación.
func (s *Store) NotificationsOf(companyID string) []entity.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Notification
	for _, n := range s.notifications {
		if n.CompanyID == companyID {
			out = append(out, n)
		}
	}
	return out
}

// SaleCount cantidad de ventas persistidas.
func (s *Store) SaleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sales)
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func sortByName[T any](list []*T, name func(*T) string) {
	sort.SliceStable(list, func(i, j int) bool { return name(list[i]) < name(list[j]) })
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func seqKey(companyID, docType string) string {
	return fmt.Sprintf("%s/%s", companyID, docType)
}

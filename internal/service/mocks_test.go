package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/cache"
	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/domain"
	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/payment"
	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/repository"
)

// mockCartRepo mirrors the store's atomic upsert semantics under a
// single mutex, so concurrency tests exercise the service contract.
type mockCartRepo struct {
	m     sync.Mutex
	items []domain.CartItem
	err   error
}

func (m *mockCartRepo) AddOrIncrement(_ context.Context, owner string, medicineID primitive.ObjectID) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i := range m.items {
		if m.items[i].Owner == owner && m.items[i].MedicineID == medicineID {
			m.items[i].Quantity++
			return nil
		}
	}
	m.items = append(m.items, domain.CartItem{
		ID:         primitive.NewObjectID(),
		Owner:      owner,
		MedicineID: medicineID,
		Quantity:   1,
		AddedAt:    time.Now(),
	})
	return nil
}

func (m *mockCartRepo) Items(_ context.Context, owner string) ([]domain.CartItem, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.CartItem
	for _, item := range m.items {
		if item.Owner == owner {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockCartRepo) SetQuantity(_ context.Context, owner string, cartItemID primitive.ObjectID, quantity int) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i := range m.items {
		if m.items[i].ID == cartItemID && m.items[i].Owner == owner {
			m.items[i].Quantity = quantity
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockCartRepo) Remove(_ context.Context, owner string, cartItemID primitive.ObjectID) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, item := range m.items {
		if item.ID == cartItemID && item.Owner == owner {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockCartRepo) Clear(_ context.Context, owner string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	kept := m.items[:0]
	for _, item := range m.items {
		if item.Owner != owner {
			kept = append(kept, item)
		}
	}
	m.items = kept
	return nil
}

func (m *mockCartRepo) count(owner string) int {
	m.m.Lock()
	defer m.m.Unlock()
	n := 0
	for _, item := range m.items {
		if item.Owner == owner {
			n++
		}
	}
	return n
}

type mockCatalogRepo struct {
	m    sync.RWMutex
	meds map[primitive.ObjectID]domain.Medicine
	err  error
}

func newMockCatalogRepo() *mockCatalogRepo {
	return &mockCatalogRepo{meds: make(map[primitive.ObjectID]domain.Medicine)}
}

func (m *mockCatalogRepo) put(med domain.Medicine) {
	m.m.Lock()
	defer m.m.Unlock()
	m.meds[med.ID] = med
}

func (m *mockCatalogRepo) delete(id primitive.ObjectID) {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.meds, id)
}

func (m *mockCatalogRepo) GetMedicine(_ context.Context, id primitive.ObjectID) (*domain.Medicine, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	med, ok := m.meds[id]
	if !ok {
		return nil, domain.ErrMedicineNotFound
	}
	return &med, nil
}

func (m *mockCatalogRepo) ListMedicines(context.Context, *primitive.ObjectID, string) ([]domain.Medicine, error) {
	return nil, nil
}

func (m *mockCatalogRepo) CreateMedicine(_ context.Context, med *domain.Medicine) error {
	m.put(*med)
	return nil
}

func (m *mockCatalogRepo) UpdateMedicine(_ context.Context, med *domain.Medicine) error {
	m.put(*med)
	return nil
}

func (m *mockCatalogRepo) DeleteMedicine(_ context.Context, id primitive.ObjectID) error {
	m.delete(id)
	return nil
}

func (m *mockCatalogRepo) SetBanner(context.Context, primitive.ObjectID, bool) error { return nil }

func (m *mockCatalogRepo) ListCategories(context.Context) ([]domain.Category, error) {
	return nil, nil
}

func (m *mockCatalogRepo) CreateCategory(context.Context, *domain.Category) error { return nil }

func (m *mockCatalogRepo) DeleteCategory(context.Context, primitive.ObjectID) error { return nil }

// mockOrderRepo keeps orders in memory and applies the same
// compare-and-set rule as the Mongo implementation.
type mockOrderRepo struct {
	m         sync.Mutex
	orders    map[primitive.ObjectID]*domain.Order
	insertErr error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[primitive.ObjectID]*domain.Order)}
}

func (m *mockOrderRepo) Insert(_ context.Context, order *domain.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	stored := *order
	stored.LineItems = append([]domain.LineItem(nil), order.LineItems...)
	m.orders[order.ID] = &stored
	return nil
}

func (m *mockOrderRepo) Get(_ context.Context, id primitive.ObjectID) (*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *mockOrderRepo) ListByBuyer(_ context.Context, buyer string) ([]domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	var out []domain.Order
	for _, order := range m.orders {
		if order.Buyer == buyer {
			out = append(out, *order)
		}
	}
	sortOrders(out)
	return out, nil
}

func (m *mockOrderRepo) Scan(_ context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	var out []domain.Order
	for _, order := range m.orders {
		if filter.From != nil && order.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && order.CreatedAt.After(*filter.To) {
			continue
		}
		out = append(out, *order)
	}
	sortOrders(out)
	return out, nil
}

func sortOrders(orders []domain.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID.Hex() < orders[j].ID.Hex()
	})
}

func (m *mockOrderRepo) Transition(_ context.Context, id primitive.ObjectID, from, to domain.PaymentStatus, paymentRef string, needsReconciliation bool) error {
	m.m.Lock()
	defer m.m.Unlock()
	order, ok := m.orders[id]
	if !ok || order.PaymentStatus != from || !domain.CanTransitionTo(from, to) {
		return domain.ErrInvalidTransition
	}
	order.PaymentStatus = to
	if paymentRef != "" {
		order.PaymentRef = paymentRef
	}
	if needsReconciliation {
		order.NeedsReconciliation = true
	}
	return nil
}

type mockViewCache struct {
	m     sync.RWMutex
	views map[string]*domain.CartView
	err   error
}

func newMockViewCache() *mockViewCache {
	return &mockViewCache{views: make(map[string]*domain.CartView)}
}

func (m *mockViewCache) Get(_ context.Context, owner string) (*domain.CartView, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	view, ok := m.views[owner]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return view, nil
}

func (m *mockViewCache) Set(_ context.Context, owner string, view *domain.CartView) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.views[owner] = view
	return m.err
}

func (m *mockViewCache) Delete(_ context.Context, owner string) error {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.views, owner)
	return m.err
}

type mockLimiter struct {
	m       sync.Mutex
	deny    bool
	err     error
	resets  int
	allowed int
}

func (m *mockLimiter) Allow(context.Context, string) (bool, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return false, m.err
	}
	m.allowed++
	return !m.deny, nil
}

func (m *mockLimiter) Reset(context.Context, string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.resets++
	return nil
}

type mockAdvertRepo struct {
	m       sync.Mutex
	adverts map[primitive.ObjectID]domain.Advertisement
}

func newMockAdvertRepo() *mockAdvertRepo {
	return &mockAdvertRepo{adverts: make(map[primitive.ObjectID]domain.Advertisement)}
}

func (m *mockAdvertRepo) Create(_ context.Context, a *domain.Advertisement) error {
	m.m.Lock()
	defer m.m.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.Status = domain.AdvertStatusPending
	a.InSlider = false
	m.adverts[a.ID] = *a
	return nil
}

func (m *mockAdvertRepo) List(_ context.Context, seller string) ([]domain.Advertisement, error) {
	m.m.Lock()
	defer m.m.Unlock()
	var out []domain.Advertisement
	for _, a := range m.adverts {
		if seller == "" || a.Seller == seller {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAdvertRepo) ListSlider(_ context.Context) ([]domain.Advertisement, error) {
	m.m.Lock()
	defer m.m.Unlock()
	var out []domain.Advertisement
	for _, a := range m.adverts {
		if a.Status == domain.AdvertStatusApproved && a.InSlider {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAdvertRepo) SetStatus(_ context.Context, id primitive.ObjectID, status domain.AdvertStatus) error {
	m.m.Lock()
	defer m.m.Unlock()
	a, ok := m.adverts[id]
	if !ok {
		return domain.ErrAdvertNotFound
	}
	a.Status = status
	m.adverts[id] = a
	return nil
}

func (m *mockAdvertRepo) SetSlider(_ context.Context, id primitive.ObjectID, inSlider bool) error {
	m.m.Lock()
	defer m.m.Unlock()
	a, ok := m.adverts[id]
	// Not approved behaves like not matched, same as the store filter.
	if !ok || a.Status != domain.AdvertStatusApproved {
		return domain.ErrAdvertNotFound
	}
	a.InSlider = inSlider
	m.adverts[id] = a
	return nil
}

type mockGateway struct {
	m       sync.Mutex
	result  payment.ChargeResult
	err     error
	charges int
	refunds int
}

func (m *mockGateway) Charge(_ context.Context, _ string, _ decimal.Decimal) (payment.ChargeResult, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.charges++
	return m.result, m.err
}

func (m *mockGateway) Refund(context.Context, string, string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.refunds++
	return nil
}

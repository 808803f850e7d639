package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/linemk/shop-dashboard/internal/domain/models"
)

// table — потокобезопасный in-memory массив записей. Наружу всегда отдаются копии.
type table[T any] struct {
	mu    sync.RWMutex
	rows  []*T
	key   func(*T) string
	clone func(*T) *T
}

func newTable[T any](key func(*T) string, clone func(*T) *T) *table[T] {
	return &table[T]{key: key, clone: clone}
}

func (t *table[T]) list(keep func(*T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*T, 0, len(t.rows))
	for _, row := range t.rows {
		if keep == nil || keep(row) {
			out = append(out, t.clone(row))
		}
	}
	return out
}

func (t *table[T]) indexOf(id string) int {
	for i, row := range t.rows {
		if t.key(row) == id {
			return i
		}
	}
	return -1
}

func (t *table[T]) get(id string) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	i := t.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	return t.clone(t.rows[i]), nil
}

func (t *table[T]) insert(row *T) *T {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows = append(t.rows, t.clone(row))
	return row
}

func (t *table[T]) replace(row *T) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(t.key(row))
	if i < 0 {
		return nil, ErrNotFound
	}
	t.rows[i] = t.clone(row)
	return row, nil
}

// modify применяет fn к хранимой записи под блокировкой записи
func (t *table[T]) modify(id string, fn func(*T) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	cp := t.clone(t.rows[i])
	if err := fn(cp); err != nil {
		return err
	}
	t.rows[i] = cp
	return nil
}

// each применяет fn ко всем хранимым записям под блокировкой записи
func (t *table[T]) each(fn func(*T)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, row := range t.rows {
		fn(row)
	}
}

func (t *table[T]) remove(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return nil
}

// MemoryCustomers — резервное хранилище покупателей
type MemoryCustomers struct {
	t *table[models.Customer]
}

func NewMemoryCustomers() *MemoryCustomers {
	return &MemoryCustomers{t: newTable(
		func(c *models.Customer) string { return c.ID },
		(*models.Customer).Clone,
	)}
}

func (m *MemoryCustomers) ListCustomers(_ context.Context) ([]*models.Customer, error) {
	out := m.t.list(nil)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryCustomers) GetCustomer(_ context.Context, id string) (*models.Customer, error) {
	return m.t.get(id)
}

func (m *MemoryCustomers) CreateCustomer(_ context.Context, c *models.Customer) (*models.Customer, error) {
	return m.t.insert(c), nil
}

func (m *MemoryCustomers) UpdateCustomer(_ context.Context, c *models.Customer) (*models.Customer, error) {
	return m.t.replace(c)
}

func (m *MemoryCustomers) DeleteCustomer(_ context.Context, id string) error {
	return m.t.remove(id)
}

// MemoryProducts — резервное хранилище товаров
type MemoryProducts struct {
	t *table[models.Product]
}

func NewMemoryProducts() *MemoryProducts {
	return &MemoryProducts{t: newTable(
		func(p *models.Product) string { return p.ID },
		(*models.Product).Clone,
	)}
}

func (m *MemoryProducts) ListProducts(_ context.Context, categoryID string) ([]*models.Product, error) {
	var keep func(*models.Product) bool
	if categoryID != "" {
		keep = func(p *models.Product) bool { return p.CategoryID != nil && *p.CategoryID == categoryID }
	}
	out := m.t.list(keep)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryProducts) GetProduct(_ context.Context, id string) (*models.Product, error) {
	return m.t.get(id)
}

func (m *MemoryProducts) CreateProduct(_ context.Context, p *models.Product) (*models.Product, error) {
	return m.t.insert(p), nil
}

func (m *MemoryProducts) UpdateProduct(_ context.Context, p *models.Product) (*models.Product, error) {
	return m.t.replace(p)
}

func (m *MemoryProducts) DeleteProduct(_ context.Context, id string) error {
	return m.t.remove(id)
}

func (m *MemoryProducts) DecrementStock(_ context.Context, productID, variantID string, quantity int) error {
	return m.t.modify(productID, func(p *models.Product) error {
		return p.DecrementStock(variantID, quantity)
	})
}

// clearCategory снимает удалённую категорию с товаров, как ON DELETE SET NULL в postgres
func (m *MemoryProducts) clearCategory(categoryID string) {
	m.t.each(func(p *models.Product) {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			p.CategoryID = nil
		}
	})
}

// MemoryOrders — резервное хранилище заказов
type MemoryOrders struct {
	t *table[models.Order]
}

func NewMemoryOrders() *MemoryOrders {
	return &MemoryOrders{t: newTable(
		func(o *models.Order) string { return o.ID },
		(*models.Order).Clone,
	)}
}

func (m *MemoryOrders) ListOrders(_ context.Context, filter OrderFilter) ([]*models.Order, error) {
	out := m.t.list(func(o *models.Order) bool {
		if filter.Status != "" && o.Status != filter.Status {
			return false
		}
		if filter.CustomerID != "" && o.CustomerID != filter.CustomerID {
			return false
		}
		return true
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryOrders) GetOrder(_ context.Context, id string) (*models.Order, error) {
	return m.t.get(id)
}

func (m *MemoryOrders) CreateOrder(_ context.Context, o *models.Order) (*models.Order, error) {
	return m.t.insert(o), nil
}

func (m *MemoryOrders) UpdateOrder(_ context.Context, o *models.Order) (*models.Order, error) {
	return m.t.replace(o)
}

func (m *MemoryOrders) DeleteOrder(_ context.Context, id string) error {
	return m.t.remove(id)
}

// MemoryCategories — резервное хранилище категорий
type MemoryCategories struct {
	t        *table[models.Category]
	products *MemoryProducts
}

func NewMemoryCategories() *MemoryCategories {
	return &MemoryCategories{t: newTable(
		func(c *models.Category) string { return c.ID },
		(*models.Category).Clone,
	)}
}

// WithProducts связывает категории с товарами: удаление категории обнуляет category_id у её товаров
func (m *MemoryCategories) WithProducts(products *MemoryProducts) *MemoryCategories {
	m.products = products
	return m
}

func (m *MemoryCategories) ListCategories(_ context.Context) ([]*models.Category, error) {
	out := m.t.list(nil)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryCategories) GetCategory(_ context.Context, id string) (*models.Category, error) {
	return m.t.get(id)
}

func (m *MemoryCategories) CreateCategory(_ context.Context, c *models.Category) (*models.Category, error) {
	return m.t.insert(c), nil
}

func (m *MemoryCategories) UpdateCategory(_ context.Context, c *models.Category) (*models.Category, error) {
	return m.t.replace(c)
}

func (m *MemoryCategories) DeleteCategory(_ context.Context, id string) error {
	if err := m.t.remove(id); err != nil {
		return err
	}
	if m.products != nil {
		m.products.clearCategory(id)
	}
	return nil
}

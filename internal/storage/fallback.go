package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/linemk/shop-dashboard/internal/domain/models"
)

// Слой резервного хранения: каждый вызов сначала идёт в postgres, а при любой
// ошибке хранилища повторяется на in-memory массиве. Клиент ошибку БД не видит.
// Nil primary означает, что БД не настроена или недоступна с момента старта.

// passThrough — ошибки, которые являются ответом, а не сбоем хранилища
func passThrough(err error) bool {
	return err == nil ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, models.ErrInsufficientStock) ||
		errors.Is(err, models.ErrVariantNotFound) ||
		errors.Is(err, models.ErrVariantRequired) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func withFallback[T any](log *slog.Logger, op string, hasPrimary bool, primary, memory func() (T, error)) (T, error) {
	if hasPrimary {
		res, err := primary()
		if passThrough(err) {
			return res, err
		}
		log.Warn("database call failed, using in-memory storage",
			slog.String("op", op), slog.Any("error", err))
	}
	return memory()
}

func withFallbackErr(log *slog.Logger, op string, hasPrimary bool, primary, memory func() error) error {
	_, err := withFallback(log, op, hasPrimary,
		func() (struct{}, error) { return struct{}{}, primary() },
		func() (struct{}, error) { return struct{}{}, memory() },
	)
	return err
}

type fallbackCustomers struct {
	log     *slog.Logger
	primary CustomerStorage
	memory  CustomerStorage
}

// NewFallbackCustomers оборачивает postgres-репозиторий (может быть nil) резервным in-memory хранилищем.
func NewFallbackCustomers(log *slog.Logger, primary CustomerStorage, memory CustomerStorage) CustomerStorage {
	return &fallbackCustomers{log: log, primary: primary, memory: memory}
}

func (f *fallbackCustomers) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return withFallback(f.log, "storage.ListCustomers", f.primary != nil,
		func() ([]*models.Customer, error) { return f.primary.ListCustomers(ctx) },
		func() ([]*models.Customer, error) { return f.memory.ListCustomers(ctx) },
	)
}

func (f *fallbackCustomers) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	return withFallback(f.log, "storage.GetCustomer", f.primary != nil,
		func() (*models.Customer, error) { return f.primary.GetCustomer(ctx, id) },
		func() (*models.Customer, error) { return f.memory.GetCustomer(ctx, id) },
	)
}

func (f *fallbackCustomers) CreateCustomer(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	return withFallback(f.log, "storage.CreateCustomer", f.primary != nil,
		func() (*models.Customer, error) { return f.primary.CreateCustomer(ctx, c) },
		func() (*models.Customer, error) { return f.memory.CreateCustomer(ctx, c) },
	)
}

func (f *fallbackCustomers) UpdateCustomer(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	return withFallback(f.log, "storage.UpdateCustomer", f.primary != nil,
		func() (*models.Customer, error) { return f.primary.UpdateCustomer(ctx, c) },
		func() (*models.Customer, error) { return f.memory.UpdateCustomer(ctx, c) },
	)
}

func (f *fallbackCustomers) DeleteCustomer(ctx context.Context, id string) error {
	return withFallbackErr(f.log, "storage.DeleteCustomer", f.primary != nil,
		func() error { return f.primary.DeleteCustomer(ctx, id) },
		func() error { return f.memory.DeleteCustomer(ctx, id) },
	)
}

type fallbackProducts struct {
	log     *slog.Logger
	primary ProductStorage
	memory  ProductStorage
}

func NewFallbackProducts(log *slog.Logger, primary ProductStorage, memory ProductStorage) ProductStorage {
	return &fallbackProducts{log: log, primary: primary, memory: memory}
}

func (f *fallbackProducts) ListProducts(ctx context.Context, categoryID string) ([]*models.Product, error) {
	return withFallback(f.log, "storage.ListProducts", f.primary != nil,
		func() ([]*models.Product, error) { return f.primary.ListProducts(ctx, categoryID) },
		func() ([]*models.Product, error) { return f.memory.ListProducts(ctx, categoryID) },
	)
}

func (f *fallbackProducts) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return withFallback(f.log, "storage.GetProduct", f.primary != nil,
		func() (*models.Product, error) { return f.primary.GetProduct(ctx, id) },
		func() (*models.Product, error) { return f.memory.GetProduct(ctx, id) },
	)
}

func (f *fallbackProducts) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	return withFallback(f.log, "storage.CreateProduct", f.primary != nil,
		func() (*models.Product, error) { return f.primary.CreateProduct(ctx, p) },
		func() (*models.Product, error) { return f.memory.CreateProduct(ctx, p) },
	)
}

func (f *fallbackProducts) UpdateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	return withFallback(f.log, "storage.UpdateProduct", f.primary != nil,
		func() (*models.Product, error) { return f.primary.UpdateProduct(ctx, p) },
		func() (*models.Product, error) { return f.memory.UpdateProduct(ctx, p) },
	)
}

func (f *fallbackProducts) DeleteProduct(ctx context.Context, id string) error {
	return withFallbackErr(f.log, "storage.DeleteProduct", f.primary != nil,
		func() error { return f.primary.DeleteProduct(ctx, id) },
		func() error { return f.memory.DeleteProduct(ctx, id) },
	)
}

func (f *fallbackProducts) DecrementStock(ctx context.Context, productID, variantID string, quantity int) error {
	return withFallbackErr(f.log, "storage.DecrementStock", f.primary != nil,
		func() error { return f.primary.DecrementStock(ctx, productID, variantID, quantity) },
		func() error { return f.memory.DecrementStock(ctx, productID, variantID, quantity) },
	)
}

type fallbackOrders struct {
	log     *slog.Logger
	primary OrderStorage
	memory  OrderStorage
}

func NewFallbackOrders(log *slog.Logger, primary OrderStorage, memory OrderStorage) OrderStorage {
	return &fallbackOrders{log: log, primary: primary, memory: memory}
}

func (f *fallbackOrders) ListOrders(ctx context.Context, filter OrderFilter) ([]*models.Order, error) {
	return withFallback(f.log, "storage.ListOrders", f.primary != nil,
		func() ([]*models.Order, error) { return f.primary.ListOrders(ctx, filter) },
		func() ([]*models.Order, error) { return f.memory.ListOrders(ctx, filter) },
	)
}

func (f *fallbackOrders) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return withFallback(f.log, "storage.GetOrder", f.primary != nil,
		func() (*models.Order, error) { return f.primary.GetOrder(ctx, id) },
		func() (*models.Order, error) { return f.memory.GetOrder(ctx, id) },
	)
}

func (f *fallbackOrders) CreateOrder(ctx context.Context, o *models.Order) (*models.Order, error) {
	return withFallback(f.log, "storage.CreateOrder", f.primary != nil,
		func() (*models.Order, error) { return f.primary.CreateOrder(ctx, o) },
		func() (*models.Order, error) { return f.memory.CreateOrder(ctx, o) },
	)
}

func (f *fallbackOrders) UpdateOrder(ctx context.Context, o *models.Order) (*models.Order, error) {
	return withFallback(f.log, "storage.UpdateOrder", f.primary != nil,
		func() (*models.Order, error) { return f.primary.UpdateOrder(ctx, o) },
		func() (*models.Order, error) { return f.memory.UpdateOrder(ctx, o) },
	)
}

func (f *fallbackOrders) DeleteOrder(ctx context.Context, id string) error {
	return withFallbackErr(f.log, "storage.DeleteOrder", f.primary != nil,
		func() error { return f.primary.DeleteOrder(ctx, id) },
		func() error { return f.memory.DeleteOrder(ctx, id) },
	)
}

type fallbackCategories struct {
	log     *slog.Logger
	primary CategoryStorage
	memory  CategoryStorage
}

func NewFallbackCategories(log *slog.Logger, primary CategoryStorage, memory CategoryStorage) CategoryStorage {
	return &fallbackCategories{log: log, primary: primary, memory: memory}
}

func (f *fallbackCategories) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return withFallback(f.log, "storage.ListCategories", f.primary != nil,
		func() ([]*models.Category, error) { return f.primary.ListCategories(ctx) },
		func() ([]*models.Category, error) { return f.memory.ListCategories(ctx) },
	)
}

func (f *fallbackCategories) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	return withFallback(f.log, "storage.GetCategory", f.primary != nil,
		func() (*models.Category, error) { return f.primary.GetCategory(ctx, id) },
		func() (*models.Category, error) { return f.memory.GetCategory(ctx, id) },
	)
}

func (f *fallbackCategories) CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	return withFallback(f.log, "storage.CreateCategory", f.primary != nil,
		func() (*models.Category, error) { return f.primary.CreateCategory(ctx, c) },
		func() (*models.Category, error) { return f.memory.CreateCategory(ctx, c) },
	)
}

func (f *fallbackCategories) UpdateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	return withFallback(f.log, "storage.UpdateCategory", f.primary != nil,
		func() (*models.Category, error) { return f.primary.UpdateCategory(ctx, c) },
		func() (*models.Category, error) { return f.memory.UpdateCategory(ctx, c) },
	)
}

func (f *fallbackCategories) DeleteCategory(ctx context.Context, id string) error {
	return withFallbackErr(f.log, "storage.DeleteCategory", f.primary != nil,
		func() error { return f.primary.DeleteCategory(ctx, id) },
		func() error { return f.memory.DeleteCategory(ctx, id) },
	)
}

// Stores — набор хранилищ приложения
type Stores struct {
	Customers  CustomerStorage
	Products   ProductStorage
	Orders     OrderStorage
	Categories CategoryStorage
}

// NewStores собирает postgres-репозитории с резервным in-memory слоем.
// При db == nil всё работает только в памяти.
func NewStores(log *slog.Logger, db *sql.DB) *Stores {
	var (
		customers  CustomerStorage
		products   ProductStorage
		orders     OrderStorage
		categories CategoryStorage
	)
	if db != nil {
		customers = NewCustomerRepository(db)
		products = NewProductRepository(db)
		orders = NewOrderRepository(db)
		categories = NewCategoryRepository(db)
	}
	memProducts := NewMemoryProducts()
	return &Stores{
		Customers:  NewFallbackCustomers(log, customers, NewMemoryCustomers()),
		Products:   NewFallbackProducts(log, products, memProducts),
		Orders:     NewFallbackOrders(log, orders, NewMemoryOrders()),
		Categories: NewFallbackCategories(log, categories, NewMemoryCategories().WithProducts(memProducts)),
	}
}

package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/linemk/shop-dashboard/internal/domain/models"
	"github.com/linemk/shop-dashboard/internal/events"
	"github.com/linemk/shop-dashboard/internal/objectstore"
	"github.com/linemk/shop-dashboard/internal/service"
	"github.com/linemk/shop-dashboard/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type publishedEvent struct {
	eventType string
	key       string
	payload   any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

var _ events.Publisher = (*fakePublisher)(nil)

func (f *fakePublisher) Publish(_ context.Context, eventType, key string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{eventType: eventType, key: key, payload: payload})
	return f.err
}

func (f *fakePublisher) Close() error { return nil }

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.eventType)
	}
	return out
}

type orderFixture struct {
	customers *storage.MemoryCustomers
	products  *storage.MemoryProducts
	orders    *storage.MemoryOrders
	pub       *fakePublisher
	svc       service.OrderService
	customer  *models.Customer
	mug       *models.Product
	shirt     *models.Product
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	ctx := context.Background()
	f := &orderFixture{
		customers: storage.NewMemoryCustomers(),
		products:  storage.NewMemoryProducts(),
		orders:    storage.NewMemoryOrders(),
		pub:       &fakePublisher{},
	}
	f.svc = service.NewOrderService(testLogger(), f.orders, f.products, f.customers, f.pub, decimal.NewFromInt(5))

	var err error
	f.customer, err = f.customers.CreateCustomer(ctx, &models.Customer{ID: "c1", Name: "Ann", CreatedAt: time.Now()})
	require.NoError(t, err)
	f.mug, err = f.products.CreateProduct(ctx, &models.Product{
		ID: "p-mug", Name: "Mug", Price: decimal.RequireFromString("10.50"), TotalStock: 3,
	})
	require.NoError(t, err)
	f.shirt, err = f.products.CreateProduct(ctx, &models.Product{
		ID: "p-shirt", Name: "Shirt", Price: decimal.NewFromInt(20), TotalStock: 5,
		Variants: models.Variants{{ID: "red", Name: "Red", Stock: 2}, {ID: "blue", Name: "Blue", Stock: 3}},
	})
	require.NoError(t, err)
	return f
}

func TestPlaceOrder_Success(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.svc.PlaceOrder(ctx, service.PlaceOrderInput{
		CustomerID: "c1",
		Items: []service.OrderItemInput{
			{ProductID: "p-mug", Quantity: 2},
			{ProductID: "p-shirt", VariantID: "red", Quantity: 1},
		},
		DeliveryType: models.DeliveryTypeDelivery,
		Notes:        " ring twice ",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.StatusProcessing, order.Status)
	assert.Equal(t, "ring twice", order.Notes)
	// 2*10.50 + 1*20 + 5 доставка
	assert.True(t, decimal.RequireFromString("46").Equal(order.Total), "total %s", order.Total)
	assert.True(t, decimal.RequireFromString("10.50").Equal(order.Items[0].Price))

	mug, err := f.products.GetProduct(ctx, "p-mug")
	require.NoError(t, err)
	assert.Equal(t, 1, mug.TotalStock)

	shirt, err := f.products.GetProduct(ctx, "p-shirt")
	require.NoError(t, err)
	assert.Equal(t, 1, shirt.Variants[0].Stock)
	assert.Equal(t, 4, shirt.TotalStock)

	assert.Equal(t, []string{events.OrderCreated}, f.pub.types())
}

func TestPlaceOrder_PickupHasNoDeliveryFee(t *testing.T) {
	f := newOrderFixture(t)

	order, err := f.svc.PlaceOrder(context.Background(), service.PlaceOrderInput{
		CustomerID:   "c1",
		Items:        []service.OrderItemInput{{ProductID: "p-mug", Quantity: 1}},
		DeliveryType: models.DeliveryTypePickup,
		Status:       models.StatusReady,
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("10.5").Equal(order.Total))
	assert.Equal(t, models.StatusReady, order.Status)
}

func TestPlaceOrder_InsufficientStockAggregatesItems(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	// по отдельности каждая позиция проходит, вместе — нет
	_, err := f.svc.PlaceOrder(ctx, service.PlaceOrderInput{
		CustomerID: "c1",
		Items: []service.OrderItemInput{
			{ProductID: "p-mug", Quantity: 2},
			{ProductID: "p-mug", Quantity: 2},
		},
		DeliveryType: models.DeliveryTypePickup,
	})
	assert.ErrorIs(t, err, models.ErrInsufficientStock)

	orders, err := f.orders.ListOrders(ctx, storage.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)

	mug, err := f.products.GetProduct(ctx, "p-mug")
	require.NoError(t, err)
	assert.Equal(t, 3, mug.TotalStock)
	assert.Empty(t, f.pub.types())
}

func TestPlaceOrder_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      service.PlaceOrderInput
		wantErr error
	}{
		{
			name: "unknown customer",
			in: service.PlaceOrderInput{CustomerID: "nobody", DeliveryType: "pickup",
				Items: []service.OrderItemInput{{ProductID: "p-mug", Quantity: 1}}},
			wantErr: service.ErrInvalidInput,
		},
		{
			name:    "no items",
			in:      service.PlaceOrderInput{CustomerID: "c1", DeliveryType: "pickup"},
			wantErr: service.ErrInvalidInput,
		},
		{
			name: "bad delivery type",
			in: service.PlaceOrderInput{CustomerID: "c1", DeliveryType: "drone",
				Items: []service.OrderItemInput{{ProductID: "p-mug", Quantity: 1}}},
			wantErr: service.ErrInvalidInput,
		},
		{
			name: "bad status",
			in: service.PlaceOrderInput{CustomerID: "c1", DeliveryType: "pickup", Status: "lost",
				Items: []service.OrderItemInput{{ProductID: "p-mug", Quantity: 1}}},
			wantErr: service.ErrInvalidInput,
		},
		{
			name: "zero quantity",
			in: service.PlaceOrderInput{CustomerID: "c1", DeliveryType: "pickup",
				Items: []service.OrderItemInput{{ProductID: "p-mug", Quantity: 0}}},
			wantErr: service.ErrInvalidInput,
		},
		{
			name: "unknown product",
			in: service.PlaceOrderInput{CustomerID: "c1", DeliveryType: "pickup",
				Items: []service.OrderItemInput{{ProductID: "p-none", Quantity: 1}}},
			wantErr: storage.ErrNotFound,
		},
		{
			name: "unknown variant",
			in: service.PlaceOrderInput{CustomerID: "c1", DeliveryType: "pickup",
				Items: []service.OrderItemInput{{ProductID: "p-shirt", VariantID: "green", Quantity: 1}}},
			wantErr: models.ErrVariantNotFound,
		},
		{
			name: "variant stock exceeded",
			in: service.PlaceOrderInput{CustomerID: "c1", DeliveryType: "pickup",
				Items: []service.OrderItemInput{{ProductID: "p-shirt", VariantID: "red", Quantity: 3}}},
			wantErr: models.ErrInsufficientStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture(t)
			_, err := f.svc.PlaceOrder(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPlaceOrder_VariantRequiredForProductWithVariants(t *testing.T) {
	tests := []struct {
		name  string
		items []service.OrderItemInput
	}{
		{
			name:  "variant line mixed with bare line",
			items: []service.OrderItemInput{{ProductID: "p-shirt", Quantity: 5}, {ProductID: "p-shirt", VariantID: "red", Quantity: 2}},
		},
		{
			name:  "bare line only",
			items: []service.OrderItemInput{{ProductID: "p-shirt", Quantity: 4}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture(t)
			ctx := context.Background()

			_, err := f.svc.PlaceOrder(ctx, service.PlaceOrderInput{
				CustomerID:   "c1",
				Items:        tt.items,
				DeliveryType: models.DeliveryTypePickup,
			})
			assert.ErrorIs(t, err, service.ErrInvalidInput)

			orders, err := f.orders.ListOrders(ctx, storage.OrderFilter{})
			require.NoError(t, err)
			assert.Empty(t, orders)

			shirt, err := f.products.GetProduct(ctx, "p-shirt")
			require.NoError(t, err)
			assert.Equal(t, 5, shirt.TotalStock)
			assert.Equal(t, 2, shirt.Variants[0].Stock)
		})
	}
}

func TestPlaceOrder_StockSurvivesLaterProductUpdate(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.svc.PlaceOrder(ctx, service.PlaceOrderInput{
		CustomerID:   "c1",
		Items:        []service.OrderItemInput{{ProductID: "p-shirt", VariantID: "blue", Quantity: 3}},
		DeliveryType: models.DeliveryTypePickup,
	})
	require.NoError(t, err)

	products := service.NewProductService(testLogger(), f.products, storage.NewMemoryCategories())
	name := "Shirt v2"
	updated, err := products.Update(ctx, "p-shirt", service.UpdateProductInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.TotalStock)
	assert.Equal(t, 0, updated.Variants[1].Stock)
}

func TestPlaceOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	f := newOrderFixture(t)
	f.pub.err = errors.New("broker down")

	order, err := f.svc.PlaceOrder(context.Background(), service.PlaceOrderInput{
		CustomerID:   "c1",
		Items:        []service.OrderItemInput{{ProductID: "p-mug", Quantity: 1}},
		DeliveryType: models.DeliveryTypePickup,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
}

func TestUpdateOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.svc.PlaceOrder(ctx, service.PlaceOrderInput{
		CustomerID:   "c1",
		Items:        []service.OrderItemInput{{ProductID: "p-mug", Quantity: 1}},
		DeliveryType: models.DeliveryTypeDelivery,
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("15.5").Equal(order.Total))

	status := models.StatusReady
	pickup := models.DeliveryTypePickup
	updated, err := f.svc.Update(ctx, order.ID, service.UpdateOrderInput{Status: &status, DeliveryType: &pickup})
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, updated.Status)
	assert.True(t, decimal.RequireFromString("10.5").Equal(updated.Total), "fee must stop applying")

	assert.Equal(t, []string{events.OrderCreated, events.OrderStatusChanged}, f.pub.types())
	payload, ok := f.pub.events[1].payload.(events.StatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, models.StatusProcessing, payload.From)
	assert.Equal(t, models.StatusReady, payload.To)

	bad := "lost"
	_, err = f.svc.Update(ctx, order.ID, service.UpdateOrderInput{Status: &bad})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	nobody := "nobody"
	_, err = f.svc.Update(ctx, order.ID, service.UpdateOrderInput{CustomerID: &nobody})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = f.svc.Update(ctx, "missing", service.UpdateOrderInput{Status: &status})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteOrder_DoesNotRestock(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.svc.PlaceOrder(ctx, service.PlaceOrderInput{
		CustomerID:   "c1",
		Items:        []service.OrderItemInput{{ProductID: "p-mug", Quantity: 2}},
		DeliveryType: models.DeliveryTypePickup,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, order.ID))
	_, err = f.svc.Get(ctx, order.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	mug, err := f.products.GetProduct(ctx, "p-mug")
	require.NoError(t, err)
	assert.Equal(t, 1, mug.TotalStock)

	assert.Contains(t, f.pub.types(), events.OrderDeleted)
	assert.ErrorIs(t, f.svc.Delete(ctx, order.ID), storage.ErrNotFound)
}

func TestProductService_CreateDerivesStock(t *testing.T) {
	ctx := context.Background()
	categories := storage.NewMemoryCategories()
	_, err := categories.CreateCategory(ctx, &models.Category{ID: "cat1", Name: "Cups"})
	require.NoError(t, err)
	svc := service.NewProductService(testLogger(), storage.NewMemoryProducts(), categories)

	catID := "cat1"
	p, err := svc.Create(ctx, service.CreateProductInput{
		Name:       "Cup",
		Price:      decimal.NewFromInt(7),
		Images:     []string{"a.png", " ", "b.png"},
		Variants:   []service.VariantInput{{Name: "White", Stock: 4}, {ID: "black", Name: "Black", Stock: 1}},
		CategoryID: &catID,
		TotalStock: 100,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, p.TotalStock)
	assert.Equal(t, []string{"a.png", "b.png"}, p.Images)
	assert.NotEmpty(t, p.Variants[0].ID)
	assert.Equal(t, "black", p.Variants[1].ID)
	require.NotNil(t, p.CategoryID)
	assert.Equal(t, "cat1", *p.CategoryID)

	plain, err := svc.Create(ctx, service.CreateProductInput{Name: "Plate", Price: decimal.NewFromInt(3), TotalStock: 9})
	require.NoError(t, err)
	assert.Equal(t, 9, plain.TotalStock)
	assert.Nil(t, plain.CategoryID)
}

func TestProductService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := service.NewProductService(testLogger(), storage.NewMemoryProducts(), storage.NewMemoryCategories())
	missing := "nope"

	cases := map[string]service.CreateProductInput{
		"empty name":       {Name: "  "},
		"negative price":   {Name: "x", Price: decimal.NewFromInt(-1)},
		"sub-cent price":   {Name: "x", Price: decimal.RequireFromString("10.555")},
		"negative stock":   {Name: "x", TotalStock: -1},
		"variant no name":  {Name: "x", Variants: []service.VariantInput{{Stock: 1}}},
		"variant negative": {Name: "x", Variants: []service.VariantInput{{Name: "a", Stock: -2}}},
		"duplicate ids":    {Name: "x", Variants: []service.VariantInput{{ID: "a", Name: "a"}, {ID: "a", Name: "b"}}},
		"unknown category": {Name: "x", CategoryID: &missing},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, in)
			assert.ErrorIs(t, err, service.ErrInvalidInput)
		})
	}
}

func TestProductService_PricePrecision(t *testing.T) {
	ctx := context.Background()
	svc := service.NewProductService(testLogger(), storage.NewMemoryProducts(), storage.NewMemoryCategories())

	// лишние нули после второго знака допустимы
	p, err := svc.Create(ctx, service.CreateProductInput{Name: "Pen", Price: decimal.RequireFromString("10.500")})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("10.5").Equal(p.Price))

	stored, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Price.String(), stored.Price.String())

	fine := decimal.RequireFromString("10.555")
	_, err = svc.Update(ctx, p.ID, service.UpdateProductInput{Price: &fine})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	stored, err = svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("10.5").Equal(stored.Price))
}

func TestProductService_UpdateMerges(t *testing.T) {
	ctx := context.Background()
	svc := service.NewProductService(testLogger(), storage.NewMemoryProducts(), storage.NewMemoryCategories())

	p, err := svc.Create(ctx, service.CreateProductInput{
		Name:        "Lamp",
		Description: "desk lamp",
		Price:       decimal.NewFromInt(30),
		Variants:    []service.VariantInput{{ID: "w", Name: "White", Stock: 2}},
	})
	require.NoError(t, err)

	price := decimal.NewFromInt(25)
	variants := []service.VariantInput{{ID: "w", Name: "White", Stock: 2}, {ID: "b", Name: "Black", Stock: 6}}
	updated, err := svc.Update(ctx, p.ID, service.UpdateProductInput{Price: &price, Variants: &variants})
	require.NoError(t, err)

	assert.Equal(t, "Lamp", updated.Name)
	assert.Equal(t, "desk lamp", updated.Description)
	assert.True(t, price.Equal(updated.Price))
	assert.Equal(t, 8, updated.TotalStock)

	empty := ""
	_, err = svc.Update(ctx, p.ID, service.UpdateProductInput{Name: &empty})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.Update(ctx, "missing", service.UpdateProductInput{Price: &price})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCustomerService(t *testing.T) {
	ctx := context.Background()
	svc := service.NewCustomerService(testLogger(), storage.NewMemoryCustomers())

	_, err := svc.Create(ctx, service.CreateCustomerInput{Name: " "})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	c, err := svc.Create(ctx, service.CreateCustomerInput{Name: "Bob", Phone: "+100"})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)

	addr := "Main st. 1"
	updated, err := svc.Update(ctx, c.ID, service.UpdateCustomerInput{Address: &addr})
	require.NoError(t, err)
	assert.Equal(t, "Bob", updated.Name)
	assert.Equal(t, "+100", updated.Phone)
	assert.Equal(t, addr, updated.Address)

	require.NoError(t, svc.Delete(ctx, c.ID))
	_, err = svc.Get(ctx, c.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCategoryService(t *testing.T) {
	ctx := context.Background()
	svc := service.NewCategoryService(testLogger(), storage.NewMemoryCategories())

	_, err := svc.Create(ctx, service.CategoryInput{})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	cat, err := svc.Create(ctx, service.CategoryInput{Name: "Books"})
	require.NoError(t, err)

	renamed, err := svc.Update(ctx, cat.ID, service.CategoryInput{Name: "E-books"})
	require.NoError(t, err)
	assert.Equal(t, "E-books", renamed.Name)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

type fakeObjectStore struct {
	put       []string
	deleted   []string
	urls      map[string]string
	putErr    error
	deleteErr error
}

func (f *fakeObjectStore) Put(_ context.Context, r io.ReadSeeker, filename, folder string) (*objectstore.Object, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f.put = append(f.put, folder+"/"+filename+"="+string(data))
	return &objectstore.Object{URL: "/uploads/" + filename, Key: "local:" + filename, Store: "local"}, nil
}

func (f *fakeObjectStore) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.deleteErr
}

func (f *fakeObjectStore) KeyFromURL(u string) (string, bool) {
	key, ok := f.urls[u]
	return key, ok
}

func TestUploadService_Upload(t *testing.T) {
	store := &fakeObjectStore{}
	svc := service.NewUploadService(testLogger(), store, 10, "products")
	ctx := context.Background()

	obj, err := svc.Upload(ctx, bytes.NewReader([]byte("img")), "cat.PNG", 3, "")
	require.NoError(t, err)
	assert.Equal(t, "local:cat.PNG", obj.Key)
	assert.Equal(t, []string{"products/cat.PNG=img"}, store.put)

	_, err = svc.Upload(ctx, bytes.NewReader(nil), "notes.txt", 1, "")
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.Upload(ctx, bytes.NewReader(nil), "big.jpg", 11, "")
	assert.ErrorIs(t, err, service.ErrFileTooLarge)

	store.putErr = errors.New("disk full")
	_, err = svc.Upload(ctx, bytes.NewReader([]byte("x")), "a.gif", 1, "banners")
	assert.Error(t, err)
}

func TestUploadService_Delete(t *testing.T) {
	store := &fakeObjectStore{urls: map[string]string{"/uploads/1_a.png": "local:1_a.png"}}
	svc := service.NewUploadService(testLogger(), store, 0, "")
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "cloudinary:shop/x", ""))
	require.NoError(t, svc.Delete(ctx, "", "/uploads/1_a.png"))
	assert.Equal(t, []string{"cloudinary:shop/x", "local:1_a.png"}, store.deleted)

	assert.ErrorIs(t, svc.Delete(ctx, "", ""), service.ErrInvalidInput)
	assert.ErrorIs(t, svc.Delete(ctx, "", "https://elsewhere/x.png"), service.ErrInvalidInput)

	for _, storeErr := range []error{objectstore.ErrInvalidKey, objectstore.ErrUnknownStore} {
		store.deleteErr = storeErr
		err := svc.Delete(ctx, "some:key", "")
		assert.ErrorIs(t, err, service.ErrInvalidInput)
		assert.ErrorIs(t, err, storeErr)
	}

	store.deleteErr = errors.New("cloud down")
	err := svc.Delete(ctx, "cloudinary:x", "")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrInvalidInput)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	svc := service.NewAuthService(testLogger(), "admin", string(hash), "jwt-secret", time.Hour)
	ctx := context.Background()
	require.True(t, svc.Enabled())

	token, err := svc.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) { return []byte("jwt-secret"), nil })
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "admin", claims["sub"])
	assert.Equal(t, models.RoleAdmin, claims["role"])

	_, err = svc.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "root", "s3cret")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_Disabled(t *testing.T) {
	svc := service.NewAuthService(testLogger(), "admin", "", "", time.Hour)
	assert.False(t, svc.Enabled())

	_, err := svc.Login(context.Background(), "admin", "x")
	assert.ErrorIs(t, err, service.ErrAuthDisabled)
}

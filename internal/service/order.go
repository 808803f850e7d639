package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/linemk/shop-dashboard/internal/domain/models"
	"github.com/linemk/shop-dashboard/internal/events"
	"github.com/linemk/shop-dashboard/internal/storage"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	List(ctx context.Context, filter storage.OrderFilter) ([]*models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error)
	Update(ctx context.Context, id string, in UpdateOrderInput) (*models.Order, error)
	Delete(ctx context.Context, id string) error
}

type OrderItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

type PlaceOrderInput struct {
	CustomerID   string           `json:"customerId" validate:"required"`
	Items        []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	DeliveryType string           `json:"deliveryType" validate:"required,oneof=delivery pickup"`
	Notes        string           `json:"notes"`
	Status       string           `json:"status" validate:"omitempty,oneof=processing ready delivered picked-up"`
}

type UpdateOrderInput struct {
	Status       *string `json:"status"`
	Notes        *string `json:"notes"`
	DeliveryType *string `json:"deliveryType"`
	CustomerID   *string `json:"customerId"`
}

type orderService struct {
	log         *slog.Logger
	orders      storage.OrderStorage
	products    storage.ProductStorage
	customers   storage.CustomerStorage
	publisher   events.Publisher
	deliveryFee decimal.Decimal
}

func NewOrderService(
	log *slog.Logger,
	orders storage.OrderStorage,
	products storage.ProductStorage,
	customers storage.CustomerStorage,
	publisher events.Publisher,
	deliveryFee decimal.Decimal,
) OrderService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &orderService{
		log:         log,
		orders:      orders,
		products:    products,
		customers:   customers,
		publisher:   publisher,
		deliveryFee: deliveryFee,
	}
}

func (s *orderService) List(ctx context.Context, filter storage.OrderFilter) ([]*models.Order, error) {
	return s.orders.ListOrders(ctx, filter)
}

func (s *orderService) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.orders.GetOrder(ctx, id)
}

type stockKey struct {
	productID string
	variantID string
}

// PlaceOrder проверяет покупателя и остатки, фиксирует цены и сохраняет заказ,
// после чего списывает товар со склада.
func (s *orderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	const op = "service.OrderService.PlaceOrder"
	log := s.log.With(slog.String("op", op), slog.String("customer_id", in.CustomerID))

	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%s: %w: order must contain at least one item", op, ErrInvalidInput)
	}
	if in.DeliveryType != models.DeliveryTypeDelivery && in.DeliveryType != models.DeliveryTypePickup {
		return nil, fmt.Errorf("%s: %w: unknown delivery type %q", op, ErrInvalidInput, in.DeliveryType)
	}
	status := in.Status
	if status == "" {
		status = models.StatusProcessing
	}
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%s: %w: unknown status %q", op, ErrInvalidInput, status)
	}

	if _, err := s.customers.GetCustomer(ctx, in.CustomerID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w: customer %s not found", op, ErrInvalidInput, in.CustomerID)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	products := make(map[string]*models.Product)
	requested := make(map[stockKey]int)
	items := make(models.OrderItems, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%s: %w: quantity must be positive", op, ErrInvalidInput)
		}
		p, ok := products[it.ProductID]
		if !ok {
			var err error
			p, err = s.products.GetProduct(ctx, it.ProductID)
			if err != nil {
				return nil, fmt.Errorf("%s: product %s: %w", op, it.ProductID, err)
			}
			products[it.ProductID] = p
		}

		// строка без варианта списывала бы total_stock мимо остатков вариантов
		if it.VariantID == "" && len(p.Variants) > 0 {
			return nil, fmt.Errorf("%s: %w: product %s requires variantId", op, ErrInvalidInput, p.ID)
		}

		key := stockKey{productID: it.ProductID, variantID: it.VariantID}
		requested[key] += it.Quantity
		available, err := p.AvailableStock(it.VariantID)
		if err != nil {
			return nil, fmt.Errorf("%s: product %s variant %s: %w", op, p.ID, it.VariantID, err)
		}
		if requested[key] > available {
			return nil, fmt.Errorf("%s: product %s: %w", op, p.ID, models.ErrInsufficientStock)
		}

		items = append(items, models.OrderItem{
			ProductID: p.ID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
			Price:     p.Price,
		})
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:           uuid.NewString(),
		CustomerID:   in.CustomerID,
		Items:        items,
		Status:       status,
		DeliveryType: in.DeliveryType,
		Notes:        strings.TrimSpace(in.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	order.CalculateTotal(s.deliveryFee)

	created, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		log.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// заказ уже сохранён: ошибки списания только логируем
	for key, qty := range requested {
		if err := s.products.DecrementStock(ctx, key.productID, key.variantID, qty); err != nil {
			log.Warn("failed to decrement stock",
				slog.String("order_id", created.ID),
				slog.String("product_id", key.productID),
				slog.String("variant_id", key.variantID),
				slog.Any("error", err),
			)
		}
	}

	s.publish(ctx, events.OrderCreated, created.ID, created)
	log.Info("order placed", slog.String("order_id", created.ID), slog.String("total", created.Total.String()))
	return created, nil
}

func (s *orderService) Update(ctx context.Context, id string, in UpdateOrderInput) (*models.Order, error) {
	const op = "service.OrderService.Update"

	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	prevStatus := order.Status

	if in.Status != nil {
		if !models.ValidStatus(*in.Status) {
			return nil, fmt.Errorf("%s: %w: unknown status %q", op, ErrInvalidInput, *in.Status)
		}
		order.Status = *in.Status
	}
	if in.Notes != nil {
		order.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.DeliveryType != nil {
		dt := *in.DeliveryType
		if dt != models.DeliveryTypeDelivery && dt != models.DeliveryTypePickup {
			return nil, fmt.Errorf("%s: %w: unknown delivery type %q", op, ErrInvalidInput, dt)
		}
		order.DeliveryType = dt
	}
	if in.CustomerID != nil && *in.CustomerID != order.CustomerID {
		if _, err := s.customers.GetCustomer(ctx, *in.CustomerID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("%s: %w: customer %s not found", op, ErrInvalidInput, *in.CustomerID)
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		order.CustomerID = *in.CustomerID
	}
	order.CalculateTotal(s.deliveryFee)
	order.UpdatedAt = time.Now().UTC()

	updated, err := s.orders.UpdateOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if updated.Status != prevStatus {
		s.publish(ctx, events.OrderStatusChanged, updated.ID, events.StatusChangedPayload{
			OrderID: updated.ID,
			From:    prevStatus,
			To:      updated.Status,
		})
	}
	return updated, nil
}

// Delete удаляет заказ. Остатки на склад не возвращаются.
func (s *orderService) Delete(ctx context.Context, id string) error {
	const op = "service.OrderService.Delete"

	if err := s.orders.DeleteOrder(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.publish(ctx, events.OrderDeleted, id, map[string]string{"id": id})
	return nil
}

func (s *orderService) publish(ctx context.Context, eventType, key string, payload any) {
	if err := s.publisher.Publish(ctx, eventType, key, payload); err != nil {
		s.log.Warn("failed to publish event",
			slog.String("event", eventType),
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}

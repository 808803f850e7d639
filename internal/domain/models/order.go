package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Статусы заказа
const (
	StatusProcessing = "processing"
	StatusReady      = "ready"
	StatusDelivered  = "delivered"
	StatusPickedUp   = "picked-up"
)

// Способы получения заказа
const (
	DeliveryTypeDelivery = "delivery"
	DeliveryTypePickup   = "pickup"
)

// OrderItem — позиция заказа. Цена фиксируется на момент оформления.
type OrderItem struct {
	ProductID string          `json:"productId"`
	VariantID string          `json:"variantId,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderItems хранится в колонке JSONB
type OrderItems []OrderItem

func (it OrderItems) Value() (driver.Value, error) {
	if it == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(it)
}

func (it *OrderItems) Scan(src any) error {
	switch data := src.(type) {
	case nil:
		*it = OrderItems{}
		return nil
	case []byte:
		return json.Unmarshal(data, it)
	case string:
		return json.Unmarshal([]byte(data), it)
	default:
		return fmt.Errorf("unsupported order items type %T", src)
	}
}

// Order представляет заказ покупателя
type Order struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customerId"`
	Items        OrderItems      `json:"items"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	DeliveryType string          `json:"deliveryType"`
	Notes        string          `json:"notes"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Subtotal — сумма позиций без стоимости доставки
func (o *Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range o.Items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// CalculateTotal пересчитывает итог: позиции плюс фиксированная доставка, если она нужна
func (o *Order) CalculateTotal(deliveryFee decimal.Decimal) {
	total := o.Subtotal()
	if o.DeliveryType == DeliveryTypeDelivery {
		total = total.Add(deliveryFee)
	}
	o.Total = total
}

func (o *Order) Clone() *Order {
	cp := *o
	if o.Items != nil {
		cp.Items = append(OrderItems(nil), o.Items...)
	}
	return &cp
}

// ValidStatus сообщает, входит ли статус в допустимый набор
func ValidStatus(status string) bool {
	switch status {
	case StatusProcessing, StatusReady, StatusDelivered, StatusPickedUp:
		return true
	}
	return false
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrVariantNotFound   = errors.New("variant not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrVariantRequired — у товара есть варианты, а вариант не указан
	ErrVariantRequired = errors.New("variant is required for product with variants")
)

func init() {
	// цены отдаём клиенту числами, а не строками
	decimal.MarshalJSONWithoutQuotes = true
}

// Variant — складская опция товара (например, цвет) со своим остатком
type Variant struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// Variants хранится в колонке JSONB
type Variants []Variant

func (v Variants) Value() (driver.Value, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v)
}

func (v *Variants) Scan(src any) error {
	switch data := src.(type) {
	case nil:
		*v = Variants{}
		return nil
	case []byte:
		return json.Unmarshal(data, v)
	case string:
		return json.Unmarshal([]byte(data), v)
	default:
		return fmt.Errorf("unsupported variants type %T", src)
	}
}

// Product представляет товар магазина
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
	Variants    Variants        `json:"variants"`
	CategoryID  *string         `json:"category_id"`
	TotalStock  int             `json:"total_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// RecalculateStock пересчитывает total_stock как сумму остатков вариантов.
// Если вариантов нет, остаётся значение, заданное вручную.
func (p *Product) RecalculateStock() {
	if len(p.Variants) == 0 {
		return
	}
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	p.TotalStock = total
}

// AvailableStock возвращает остаток варианта. Пустой variantID допустим
// только для товара без вариантов: тогда возвращается total_stock.
func (p *Product) AvailableStock(variantID string) (int, error) {
	if variantID == "" {
		if len(p.Variants) > 0 {
			return 0, ErrVariantRequired
		}
		return p.TotalStock, nil
	}
	for _, v := range p.Variants {
		if v.ID == variantID {
			return v.Stock, nil
		}
	}
	return 0, ErrVariantNotFound
}

// DecrementStock списывает quantity со склада. Остаток никогда не уходит в минус.
func (p *Product) DecrementStock(variantID string, quantity int) error {
	if variantID == "" {
		if len(p.Variants) > 0 {
			return ErrVariantRequired
		}
		if p.TotalStock < quantity {
			return ErrInsufficientStock
		}
		p.TotalStock -= quantity
		return nil
	}
	for i := range p.Variants {
		if p.Variants[i].ID != variantID {
			continue
		}
		if p.Variants[i].Stock < quantity {
			return ErrInsufficientStock
		}
		p.Variants[i].Stock -= quantity
		p.RecalculateStock()
		return nil
	}
	return ErrVariantNotFound
}

// Clone возвращает глубокую копию товара
func (p *Product) Clone() *Product {
	cp := *p
	if p.Images != nil {
		cp.Images = append([]string(nil), p.Images...)
	}
	if p.Variants != nil {
		cp.Variants = append(Variants(nil), p.Variants...)
	}
	if p.CategoryID != nil {
		id := *p.CategoryID
		cp.CategoryID = &id
	}
	return &cp
}

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
	"github.com/linemk/shop-dashboard/internal/storage"
	"github.com/shopspring/decimal"
)

type ProductService interface {
	List(ctx context.Context, categoryID string) ([]*models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, in CreateProductInput) (*models.Product, error)
	Update(ctx context.Context, id string, in UpdateProductInput) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type VariantInput struct {
	ID    string `json:"id"`
	Name  string `json:"name" validate:"required"`
	Stock int    `json:"stock" validate:"gte=0"`
}

type CreateProductInput struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
	Variants    []VariantInput  `json:"variants" validate:"dive"`
	CategoryID  *string         `json:"category_id"`
	// TotalStock учитывается только для товаров без вариантов
	TotalStock int `json:"total_stock" validate:"gte=0"`
}

// UpdateProductInput — частичное обновление: nil-поля не меняются.
// Пустая строка в CategoryID снимает категорию.
type UpdateProductInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Images      *[]string        `json:"images"`
	Variants    *[]VariantInput  `json:"variants"`
	CategoryID  *string          `json:"category_id"`
	TotalStock  *int             `json:"total_stock"`
}

type productService struct {
	log        *slog.Logger
	products   storage.ProductStorage
	categories storage.CategoryStorage
}

func NewProductService(log *slog.Logger, products storage.ProductStorage, categories storage.CategoryStorage) ProductService {
	return &productService{log: log, products: products, categories: categories}
}

func (s *productService) List(ctx context.Context, categoryID string) ([]*models.Product, error) {
	return s.products.ListProducts(ctx, categoryID)
}

func (s *productService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.products.GetProduct(ctx, id)
}

func (s *productService) Create(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	const op = "service.ProductService.Create"

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%s: %w: name is required", op, ErrInvalidInput)
	}
	price, err := normalizePrice(in.Price)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if in.TotalStock < 0 {
		return nil, fmt.Errorf("%s: %w: total_stock must not be negative", op, ErrInvalidInput)
	}

	variants, err := buildVariants(in.Variants)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	categoryID, err := s.resolveCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	p := &models.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: in.Description,
		Price:       price,
		Images:      cleanImages(in.Images),
		Variants:    variants,
		CategoryID:  categoryID,
		TotalStock:  in.TotalStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	p.RecalculateStock()

	created, err := s.products.CreateProduct(ctx, p)
	if err != nil {
		s.log.Error("failed to create product", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

func (s *productService) Update(ctx context.Context, id string, in UpdateProductInput) (*models.Product, error) {
	const op = "service.ProductService.Update"

	p, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%s: %w: name must not be empty", op, ErrInvalidInput)
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		price, err := normalizePrice(*in.Price)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		p.Price = price
	}
	if in.Images != nil {
		p.Images = cleanImages(*in.Images)
	}
	if in.Variants != nil {
		variants, err := buildVariants(*in.Variants)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		p.Variants = variants
	}
	if in.CategoryID != nil {
		categoryID, err := s.resolveCategory(ctx, in.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		p.CategoryID = categoryID
	}
	if in.TotalStock != nil {
		if *in.TotalStock < 0 {
			return nil, fmt.Errorf("%s: %w: total_stock must not be negative", op, ErrInvalidInput)
		}
		p.TotalStock = *in.TotalStock
	}
	p.RecalculateStock()
	p.UpdatedAt = time.Now().UTC()

	updated, err := s.products.UpdateProduct(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("service.ProductService.Delete: %w", err)
	}
	return nil
}

// resolveCategory проверяет ссылку на категорию. Пустое значение означает "без категории".
func (s *productService) resolveCategory(ctx context.Context, id *string) (*string, error) {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil, nil
	}
	catID := strings.TrimSpace(*id)
	if _, err := s.categories.GetCategory(ctx, catID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s not found", ErrInvalidInput, catID)
		}
		return nil, err
	}
	return &catID, nil
}

// priceScale совпадает с NUMERIC(12, 2) в таблице products
const priceScale = 2

// normalizePrice отклоняет отрицательные цены и цены точнее копейки,
// чтобы postgres и in-memory хранилище возвращали одно и то же значение
func normalizePrice(price decimal.Decimal) (decimal.Decimal, error) {
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	rounded := price.Round(priceScale)
	if !rounded.Equal(price) {
		return decimal.Zero, fmt.Errorf("%w: price %s has more than %d decimal places", ErrInvalidInput, price, priceScale)
	}
	return rounded, nil
}

func buildVariants(in []VariantInput) (models.Variants, error) {
	variants := make(models.Variants, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		name := strings.TrimSpace(v.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: variant name is required", ErrInvalidInput)
		}
		if v.Stock < 0 {
			return nil, fmt.Errorf("%w: variant %q stock must not be negative", ErrInvalidInput, name)
		}
		id := strings.TrimSpace(v.ID)
		if id == "" {
			id = uuid.NewString()
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate variant id %s", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
		variants = append(variants, models.Variant{ID: id, Name: name, Stock: v.Stock})
	}
	return variants, nil
}

func cleanImages(in []string) []string {
	out := make([]string, 0, len(in))
	for _, img := range in {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	return out
}

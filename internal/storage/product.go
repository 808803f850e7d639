package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/linemk/shop-dashboard/internal/domain/models"
)

// ProductStorage описывает методы для работы с товарами.
type ProductStorage interface {
	// ListProducts возвращает товары; пустой categoryID означает "все категории".
	ListProducts(ctx context.Context, categoryID string) ([]*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	// DecrementStock списывает остаток варианта (или общий остаток, если variantID пустой).
	DecrementStock(ctx context.Context, productID, variantID string, quantity int) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт postgres-репозиторий товаров.
func NewProductRepository(db *sql.DB) ProductStorage {
	return &productRepository{db: db}
}

const productColumns = "id, name, description, price, images, variants, category_id, total_stock, created_at, updated_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, pq.Array(&p.Images), &p.Variants,
		&p.CategoryID, &p.TotalStock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return p, nil
}

func (r *productRepository) ListProducts(ctx context.Context, categoryID string) ([]*models.Product, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if categoryID == "" {
		rows, err = r.db.QueryContext(ctx, "SELECT "+productColumns+" FROM products ORDER BY created_at DESC")
	} else {
		rows, err = r.db.QueryContext(ctx,
			"SELECT "+productColumns+" FROM products WHERE category_id = $1 ORDER BY created_at DESC", categoryID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	query := `INSERT INTO products (id, name, description, price, images, variants, category_id, total_stock, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.Price, pq.Array(p.Images), p.Variants,
		p.CategoryID, p.TotalStock, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	query := `UPDATE products SET name = $1, description = $2, price = $3, images = $4, variants = $5,
	          category_id = $6, total_stock = $7, updated_at = $8 WHERE id = $9`
	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.Price, pq.Array(p.Images), p.Variants,
		p.CategoryID, p.TotalStock, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if err := expectAffected(res); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return expectAffected(res)
}

// DecrementStock блокирует строку товара на время списания, чтобы параллельные
// заказы не увели остаток в минус.
func (r *productRepository) DecrementStock(ctx context.Context, productID, variantID string, quantity int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	p := &models.Product{ID: productID}
	row := tx.QueryRowContext(ctx, "SELECT variants, total_stock FROM products WHERE id = $1 FOR UPDATE", productID)
	if err := row.Scan(&p.Variants, &p.TotalStock); err != nil {
		_ = tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if err := p.DecrementStock(variantID, quantity); err != nil {
		_ = tx.Rollback()
		return err
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE products SET variants = $1, total_stock = $2, updated_at = NOW() WHERE id = $3",
		p.Variants, p.TotalStock, productID,
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to update stock: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit stock update: %w", err)
	}
	return nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/linemk/shop-dashboard/internal/domain/models"
)

// OrderFilter — необязательные условия выборки заказов
type OrderFilter struct {
	Status     string
	CustomerID string
}

// OrderStorage описывает методы для работы с заказами.
type OrderStorage interface {
	ListOrders(ctx context.Context, filter OrderFilter) ([]*models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	UpdateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

// orderRepository — конкретная реализация OrderStorage.
type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт новый репозиторий заказов.
func NewOrderRepository(db *sql.DB) OrderStorage {
	return &orderRepository{db: db}
}

const orderColumns = "id, customer_id, items, total, status, delivery_type, notes, created_at, updated_at"

func scanOrder(row scanner) (*models.Order, error) {
	o := &models.Order{}
	err := row.Scan(&o.ID, &o.CustomerID, &o.Items, &o.Total, &o.Status, &o.DeliveryType, &o.Notes,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) ListOrders(ctx context.Context, filter OrderFilter) ([]*models.Order, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		conds = append(conds, fmt.Sprintf("customer_id = $%d", len(args)))
	}

	query := "SELECT " + orderColumns + " FROM orders"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

// CreateOrder вставляет новый заказ в таблицу orders.
func (r *orderRepository) CreateOrder(ctx context.Context, o *models.Order) (*models.Order, error) {
	query := `INSERT INTO orders (id, customer_id, items, total, status, delivery_type, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		o.ID, o.CustomerID, o.Items, o.Total, o.Status, o.DeliveryType, o.Notes, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return o, nil
}

func (r *orderRepository) UpdateOrder(ctx context.Context, o *models.Order) (*models.Order, error) {
	query := `UPDATE orders SET customer_id = $1, items = $2, total = $3, status = $4, delivery_type = $5,
	          notes = $6, updated_at = $7 WHERE id = $8`
	res, err := r.db.ExecContext(ctx, query,
		o.CustomerID, o.Items, o.Total, o.Status, o.DeliveryType, o.Notes, o.UpdatedAt, o.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if err := expectAffected(res); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) DeleteOrder(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return expectAffected(res)
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/linemk/shop-dashboard/internal/domain/models"
)

// CustomerStorage описывает методы для работы с покупателями.
type CustomerStorage interface {
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
}

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository создаёт postgres-репозиторий покупателей.
func NewCustomerRepository(db *sql.DB) CustomerStorage {
	return &customerRepository{db: db}
}

const customerColumns = "id, name, phone, address, created_at, updated_at"

func (r *customerRepository) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+customerColumns+" FROM customers ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := []*models.Customer{}
	for rows.Next() {
		c := &models.Customer{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *customerRepository) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	c := &models.Customer{}
	row := r.db.QueryRowContext(ctx, "SELECT "+customerColumns+" FROM customers WHERE id = $1", id)
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) CreateCustomer(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	query := `INSERT INTO customers (id, name, phone, address, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Phone, c.Address, c.CreatedAt, c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return c, nil
}

func (r *customerRepository) UpdateCustomer(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	query := `UPDATE customers SET name = $1, phone = $2, address = $3, updated_at = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Phone, c.Address, c.UpdatedAt, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	if err := expectAffected(res); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) DeleteCustomer(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return expectAffected(res)
}

// expectAffected превращает "0 затронутых строк" в ErrNotFound
func expectAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/linemk/shop-dashboard/internal/domain/models"
	"github.com/linemk/shop-dashboard/internal/storage"
)

// CustomerService определяет операции над покупателями.
type CustomerService interface {
	List(ctx context.Context) ([]*models.Customer, error)
	Get(ctx context.Context, id string) (*models.Customer, error)
	Create(ctx context.Context, in CreateCustomerInput) (*models.Customer, error)
	Update(ctx context.Context, id string, in UpdateCustomerInput) (*models.Customer, error)
	Delete(ctx context.Context, id string) error
}

type CreateCustomerInput struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateCustomerInput — частичное обновление: nil-поля не меняются
type UpdateCustomerInput struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type customerService struct {
	log       *slog.Logger
	customers storage.CustomerStorage
}

func NewCustomerService(log *slog.Logger, customers storage.CustomerStorage) CustomerService {
	return &customerService{log: log, customers: customers}
}

func (s *customerService) List(ctx context.Context) ([]*models.Customer, error) {
	return s.customers.ListCustomers(ctx)
}

func (s *customerService) Get(ctx context.Context, id string) (*models.Customer, error) {
	return s.customers.GetCustomer(ctx, id)
}

func (s *customerService) Create(ctx context.Context, in CreateCustomerInput) (*models.Customer, error) {
	const op = "service.CustomerService.Create"

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%s: %w: name is required", op, ErrInvalidInput)
	}

	now := time.Now().UTC()
	c := &models.Customer{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.customers.CreateCustomer(ctx, c)
	if err != nil {
		s.log.Error("failed to create customer", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

func (s *customerService) Update(ctx context.Context, id string, in UpdateCustomerInput) (*models.Customer, error) {
	const op = "service.CustomerService.Update"

	c, err := s.customers.GetCustomer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%s: %w: name must not be empty", op, ErrInvalidInput)
		}
		c.Name = name
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		c.Address = strings.TrimSpace(*in.Address)
	}
	c.UpdatedAt = time.Now().UTC()

	updated, err := s.customers.UpdateCustomer(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

func (s *customerService) Delete(ctx context.Context, id string) error {
	if err := s.customers.DeleteCustomer(ctx, id); err != nil {
		return fmt.Errorf("service.CustomerService.Delete: %w", err)
	}
	return nil
}

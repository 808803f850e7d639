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

type CategoryService interface {
	List(ctx context.Context) ([]*models.Category, error)
	Get(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, in CategoryInput) (*models.Category, error)
	Update(ctx context.Context, id string, in CategoryInput) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}

type CategoryInput struct {
	Name string `json:"name" validate:"required"`
}

type categoryService struct {
	log        *slog.Logger
	categories storage.CategoryStorage
}

func NewCategoryService(log *slog.Logger, categories storage.CategoryStorage) CategoryService {
	return &categoryService{log: log, categories: categories}
}

func (s *categoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.categories.ListCategories(ctx)
}

func (s *categoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	return s.categories.GetCategory(ctx, id)
}

func (s *categoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	const op = "service.CategoryService.Create"

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%s: %w: name is required", op, ErrInvalidInput)
	}

	c := &models.Category{ID: uuid.NewString(), Name: name, CreatedAt: time.Now().UTC()}
	created, err := s.categories.CreateCategory(ctx, c)
	if err != nil {
		s.log.Error("failed to create category", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

func (s *categoryService) Update(ctx context.Context, id string, in CategoryInput) (*models.Category, error) {
	const op = "service.CategoryService.Update"

	c, err := s.categories.GetCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%s: %w: name is required", op, ErrInvalidInput)
	}
	c.Name = name

	updated, err := s.categories.UpdateCategory(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	if err := s.categories.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("service.CategoryService.Delete: %w", err)
	}
	return nil
}

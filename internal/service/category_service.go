package service

import (
	"context"
	"errors"
	"strings"

	"event_management/internal/domain"
	"event_management/internal/store"

	"github.com/sirupsen/logrus"
)

// CategoryService manages event categories.
type CategoryService struct {
	store store.Gateway
}

func NewCategoryService(gw store.Gateway) *CategoryService {
	return &CategoryService{store: gw}
}

// CategoryInput is the input of CreateCategory and UpdateCategory.
type CategoryInput struct {
	Name        string
	Description string
}

func (in CategoryInput) validate() error {
	vErr := &ValidationError{}
	if blank(in.Name) {
		vErr.Add("name", "Name is required")
	}
	return vErr.errOrNil()
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*domain.Category, error) {
	category, err := s.store.FindCategory(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Category", id)
	}
	return category, err
}

// nameTaken reports whether another category already uses name, ignoring case.
func (s *CategoryService) nameTaken(ctx context.Context, name string, self uint) error {
	existing, err := s.store.FindCategoryByName(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != self {
		return kindError(ErrAlreadyExists, "Category already exists with name: "+name)
	}
	return nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if err := s.nameTaken(ctx, name, 0); err != nil {
		return nil, err
	}
	category := &domain.Category{Name: name, Description: in.Description}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, kindError(ErrAlreadyExists, "Category already exists with name: "+name)
		}
		return nil, err
	}
	logrus.WithField("category_id", category.ID).Info("Category created")
	return category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id uint, in CategoryInput) (*domain.Category, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if err := s.nameTaken(ctx, name, id); err != nil {
		return nil, err
	}
	category.Name = name
	category.Description = in.Description
	if err := s.store.SaveCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory refuses to delete a category any event still uses.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	return s.store.Transaction(ctx, func(tx store.Gateway) error {
		if _, err := tx.FindCategory(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return notFound("Category", id)
			}
			return err
		}
		inUse, err := tx.CountCategoryEvents(ctx, id)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return ErrCategoryInUse
		}
		return tx.DeleteCategory(ctx, id)
	})
}

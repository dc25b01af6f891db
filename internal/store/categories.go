package store

import (
	"context"
	"strings"

	"event_management/internal/domain"

	"gorm.io/gorm/clause"
)

func (s *GormStore) CreateCategory(ctx context.Context, category *domain.Category) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Create(category).Error)
}

func (s *GormStore) SaveCategory(ctx context.Context, category *domain.Category) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Save(category).Error)
}

func (s *GormStore) DeleteCategory(ctx context.Context, id uint) error {
	res := s.conn(ctx).Delete(&domain.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) FindCategory(ctx context.Context, id uint) (*domain.Category, error) {
	var category domain.Category
	if err := s.conn(ctx).First(&category, id).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

// FindCategoryByName matches names case-insensitively.
func (s *GormStore) FindCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	var category domain.Category
	if err := s.conn(ctx).Where("LOWER(name) = ?", strings.ToLower(name)).First(&category).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

// FindCategories returns the categories among ids that exist.
func (s *GormStore) FindCategories(ctx context.Context, ids []uint) ([]domain.Category, error) {
	categories := []domain.Category{}
	if len(ids) == 0 {
		return categories, nil
	}
	err := s.conn(ctx).Where("id IN ?", ids).Order("id").Find(&categories).Error
	return categories, err
}

func (s *GormStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := s.conn(ctx).Order("name").Find(&categories).Error
	return categories, err
}

// CountCategoryEvents reports how many events are linked to the category.
func (s *GormStore) CountCategoryEvents(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := s.conn(ctx).Table("event_categories").Where("category_id = ?", id).Count(&n).Error
	return n, err
}

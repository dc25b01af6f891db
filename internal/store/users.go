package store

import (
	"context"

	"event_management/internal/domain"
)

func (s *GormStore) CreateUser(ctx context.Context, user *domain.User) error {
	return translate(s.conn(ctx).Create(user).Error)
}

func (s *GormStore) SaveUser(ctx context.Context, user *domain.User) error {
	return translate(s.conn(ctx).Save(user).Error)
}

func (s *GormStore) FindUser(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := s.conn(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := s.conn(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int64
	if err := s.conn(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListUsers returns one page of users ordered by id together with the total count.
func (s *GormStore) ListUsers(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	var total int64
	if err := s.conn(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []domain.User
	if err := s.conn(ctx).Order("id").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
